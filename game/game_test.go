package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render-demo/config"
	"render-demo/gfx/gfxtest"
	"render-demo/input"
	"render-demo/math"
	"render-demo/scene"
)

type fixture struct {
	game *Game
	dev  *gfxtest.Device
	vs   *gfxtest.Stage
	ps   *gfxtest.Stage
}

func newFixture(t *testing.T, cfg config.Config) fixture {
	t.Helper()
	dev := gfxtest.NewDevice(nil)
	vs := gfxtest.NewStage("vs", dev.Recorder)
	ps := gfxtest.NewStage("ps", dev.Recorder)
	g := New(dev, vs, ps, cfg)
	require.NoError(t, g.Init())
	dev.Reset()
	return fixture{game: g, dev: dev, vs: vs, ps: ps}
}

func drawCalls(dev *gfxtest.Device) []gfxtest.DrawArgs {
	var draws []gfxtest.DrawArgs
	for _, c := range dev.Calls {
		if c.Target == "device" && c.Op == "DrawIndexed" {
			draws = append(draws, c.Value.(gfxtest.DrawArgs))
		}
	}
	return draws
}

func TestInitBuildsDefaultScene(t *testing.T) {
	f := newFixture(t, config.Default())

	entities := f.game.Scene().Entities()
	require.Len(t, entities, 3)
	assert.Equal(t, "helix", entities[0].Name())
	assert.Equal(t, math.Vec3{X: -1, Y: -1, Z: 0}, entities[2].Position())
	assert.Equal(t, uint32(3), entities[2].Mesh().IndexCount())

	for _, e := range entities {
		require.NotNil(t, e.Material())
		_, ok := e.Material().DiffuseTexture()
		assert.True(t, ok)
	}
	assert.NotEqual(t, math.Mat4Identity(), f.game.Camera().ProjectionMatrix())
}

func TestInitFailsOnDeviceError(t *testing.T) {
	dev := gfxtest.NewDevice(nil)
	dev.FailCreate = true
	g := New(dev, gfxtest.NewStage("vs", nil), gfxtest.NewStage("ps", nil), config.Default())
	assert.ErrorIs(t, g.Init(), gfxtest.ErrCreateFailed)
}

func TestInitFailsOnMissingTexture(t *testing.T) {
	cfg := config.Default()
	cfg.Materials[0].DiffuseTexture = "does/not/exist.png"
	g := New(gfxtest.NewDevice(nil), gfxtest.NewStage("vs", nil), gfxtest.NewStage("ps", nil), cfg)
	assert.Error(t, g.Init())
}

func TestDrawPresentsOnce(t *testing.T) {
	f := newFixture(t, config.Default())

	require.NoError(t, f.game.Draw())

	assert.Equal(t, 1, f.dev.Count("device", "Clear"))
	assert.Equal(t, 1, f.dev.Count("device", "Present"))
	assert.Equal(t, 3, f.dev.Count("device", "DrawIndexed"))

	ops := f.dev.Ops()
	assert.Equal(t, "device.Clear", ops[0])
	assert.Equal(t, "device.Present", ops[len(ops)-1])

	for _, d := range drawCalls(f.dev) {
		assert.Zero(t, d.StartIndex)
		assert.Zero(t, d.BaseVertex)
	}
	assert.Equal(t, uint32(3), drawCalls(f.dev)[2].IndexCount)

	stats := f.game.Stats()
	assert.Equal(t, 3, stats.Entities)
	assert.Zero(t, stats.Skipped)
	assert.Positive(t, stats.Triangles)
}

func TestDrawUploadsLightsAndMatrices(t *testing.T) {
	f := newFixture(t, config.Default())
	require.NoError(t, f.game.Draw())

	assert.Equal(t, [4]float32{0, 0, 1, 1}, f.ps.Flushed["light.DiffuseColor"])
	assert.Equal(t, [4]float32{1, 0.1, 0.1, 1}, f.ps.Flushed["green_light.DiffuseColor"])
	assert.Equal(t, math.Vec3{X: 1, Y: -1, Z: 0.5}, f.ps.Flushed["green_light.Direction"])

	cam := f.game.Camera()
	assert.Equal(t, cam.ViewMatrix(), f.vs.Flushed["view"])
	assert.Equal(t, cam.ProjectionMatrix(), f.vs.Flushed["projection"])
	last := f.game.Scene().Entities()[2]
	assert.Equal(t, last.WorldMatrix(), f.vs.Flushed["world"])
	assert.True(t, f.vs.Active)
	assert.True(t, f.ps.Active)
}

func TestDrawTracksLightsTheStageRejects(t *testing.T) {
	f := newFixture(t, config.Default())
	f.ps.Known = map[string]bool{
		"light.AmbientColor":     true,
		"light.DiffuseColor":     true,
		"light.Direction":        true,
		scene.DiffuseTextureName: true,
		scene.SamplerName:        true,
	}

	require.NoError(t, f.game.Draw())
	require.NoError(t, f.game.Draw())

	assert.Equal(t, map[string]bool{"green_light": true}, f.game.rejectedLights)
	assert.Equal(t, 6, f.dev.Count("device", "DrawIndexed"))
	assert.NotContains(t, f.ps.Flushed, "green_light.DiffuseColor")
}

func TestDrawBindsBeforeEachDraw(t *testing.T) {
	f := newFixture(t, config.Default())
	require.NoError(t, f.game.Draw())

	ops := f.dev.Ops()
	for i, op := range ops {
		if op != "device.DrawIndexed" {
			continue
		}
		require.GreaterOrEqual(t, i, 3)
		assert.Equal(t, "device.SetBuffers", ops[i-1])
		assert.Equal(t, "ps.CopyAllBufferData", ops[i-2])
		assert.Equal(t, "vs.CopyAllBufferData", ops[i-3])
	}
}

func TestDrawSkipsEntitiesWithoutMaterial(t *testing.T) {
	cfg := config.Default()
	cfg.Entities[1].Material = ""
	f := newFixture(t, cfg)

	require.NoError(t, f.game.Draw())

	assert.Equal(t, 2, f.dev.Count("device", "DrawIndexed"))
	assert.Equal(t, 1, f.dev.Count("device", "Present"))
	assert.Equal(t, Stats{Entities: 2, Skipped: 1, Triangles: f.game.Stats().Triangles}, f.game.Stats())
}

func TestDrawEmptyScenePresents(t *testing.T) {
	cfg := config.Default()
	cfg.Entities = nil
	cfg.Animation.Enabled = false
	f := newFixture(t, cfg)

	require.NoError(t, f.game.Draw())
	assert.Equal(t, []string{"device.Clear", "device.Present"}, f.dev.Ops())
}

func TestUpdateQuit(t *testing.T) {
	f := newFixture(t, config.Default())

	f.game.Update(0.016, 0, input.State{})
	assert.False(t, f.game.Done())

	f.game.Update(0.016, 0.016, input.State{}.With(input.Quit))
	assert.True(t, f.game.Done())
}

func TestUpdateAnimatesFirstEntity(t *testing.T) {
	f := newFixture(t, config.Default())
	first := f.game.Scene().Entities()[0]

	f.game.Update(0.5, 0, input.State{})

	assert.InDelta(t, 0.8, first.Scale().X, 1e-6)
	assert.InDelta(t, 0.8, first.Scale().Z, 1e-6)
	p := first.Position()
	assert.InDelta(t, 0.6, p.X, 1e-6)
	assert.InDelta(t, 0.6, p.Y, 1e-6)
	assert.InDelta(t, 0.6, p.Z, 1e-6)

	assert.Equal(t, math.Vec3Zero, f.game.Scene().Entities()[1].Position())
}

func TestUpdateMovesCamera(t *testing.T) {
	f := newFixture(t, config.Default())
	f.game.Update(1, 0, input.State{}.With(input.Forward))
	assert.InDelta(t, 0, f.game.Camera().Position().Z, 1e-6)
}

func TestMouseLook(t *testing.T) {
	f := newFixture(t, config.Default())
	cam := f.game.Camera()

	f.game.OnMouseMove(50, 50)
	assert.Zero(t, cam.Yaw())

	f.game.OnMouseDown(100, 100)
	assert.True(t, cam.DoRotation())
	f.game.OnMouseMove(90, 80)
	assert.InDelta(t, 10*0.005, cam.Yaw(), 1e-6)
	assert.InDelta(t, 20*0.005, cam.Pitch(), 1e-6)

	f.game.OnMouseMove(90, 80)
	assert.InDelta(t, 10*0.005, cam.Yaw(), 1e-6)

	f.game.OnMouseUp()
	assert.False(t, cam.DoRotation())
	f.game.OnMouseMove(0, 0)
	assert.InDelta(t, 10*0.005, cam.Yaw(), 1e-6)
}

func TestOnResize(t *testing.T) {
	f := newFixture(t, config.Default())

	f.game.OnResize(400, 400)
	ref := scene.NewCamera(scene.DefaultCameraConfig())
	ref.UpdateProjectionMatrix(1, 1)
	assert.True(t, ref.ProjectionMatrix().ApproxEqual(f.game.Camera().ProjectionMatrix(), 1e-6))

	before := f.game.Camera().ProjectionMatrix()
	f.game.OnResize(0, 0)
	assert.Equal(t, before, f.game.Camera().ProjectionMatrix())
}

func TestDestroyReleasesResources(t *testing.T) {
	f := newFixture(t, config.Default())
	mesh := f.game.Scene().Entities()[0].Mesh()
	vb := mesh.VertexBuffer().(*gfxtest.Buffer)
	tex, _ := f.game.Scene().Entities()[0].Material().DiffuseTexture()

	f.game.Destroy()
	assert.True(t, vb.Released)
	assert.True(t, tex.(*gfxtest.Texture).Released)
	assert.Empty(t, f.game.Scene().Entities())
}

func TestSnapshotCapturesCurrentState(t *testing.T) {
	cfg := config.Default()
	cfg.Entities[1].Material = ""
	f := newFixture(t, cfg)

	f.game.Scene().Entities()[2].SetPosition(4, 5, 6)
	f.game.Update(1, 0, input.State{}.With(input.Forward))

	snap := f.game.Snapshot()
	require.Len(t, snap.Entities, 3)
	assert.Equal(t, "triangle", snap.Entities[2].Mesh)
	assert.Equal(t, "basic", snap.Entities[2].Material)
	assert.Equal(t, &[3]float32{4, 5, 6}, snap.Entities[2].Position)
	assert.Empty(t, snap.Entities[1].Material)
	assert.True(t, snap.Animation.Enabled)
	assert.Equal(t, 0, snap.Animation.Entity)

	pos := f.game.Camera().Position()
	assert.Equal(t, [3]float32{pos.X, pos.Y, pos.Z}, snap.Camera.Position)
	require.NoError(t, snap.Validate())
}
