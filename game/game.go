// Package game drives one frame at a time: input and animation in Update,
// a single cleared, presented pass over every entity in Draw.
package game

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/chewxy/math32"

	"render-demo/config"
	"render-demo/gfx"
	"render-demo/input"
	"render-demo/scene"
)

// Stats describes the last Draw.
type Stats struct {
	Entities  int // drawn
	Skipped   int // no material
	Triangles int
}

type namedLight struct {
	name  string
	light scene.DirectionalLight
}

// Game owns the camera and scene of one session. It is not safe for
// concurrent use; every method runs on the frame loop goroutine.
type Game struct {
	device       gfx.Device
	vertexShader gfx.VertexShader
	pixelShader  gfx.PixelShader
	cfg          config.Config

	camera   *scene.Camera
	scene    *scene.Scene
	lights   []namedLight
	textures []gfx.Texture
	samplers []gfx.SamplerState
	animated *scene.Entity

	prevMouseX, prevMouseY float64
	done                   bool
	stats                  Stats

	// Lights a pixel stage did not accept, logged once each.
	rejectedLights map[string]bool
}

func New(device gfx.Device, vs gfx.VertexShader, ps gfx.PixelShader, cfg config.Config) *Game {
	return &Game{
		device:       device,
		vertexShader: vs,
		pixelShader:  ps,
		cfg:          cfg,
		camera:       scene.NewCamera(cfg.Camera.Scene()),
		scene:        scene.NewScene(device),
	}
}

// Init builds lights, materials, meshes and entities from the config and
// sets the initial projection. Any resource failure aborts initialisation.
func (g *Game) Init() error {
	g.camera.UpdateProjectionMatrix(uint32(g.cfg.Window.Width), uint32(g.cfg.Window.Height))

	for _, l := range g.cfg.Lights {
		g.lights = append(g.lights, namedLight{name: l.Name, light: l.Light()})
	}

	for _, mc := range g.cfg.Materials {
		m, err := g.createMaterial(mc)
		if err != nil {
			return fmt.Errorf("material %q: %w", mc.Name, err)
		}
		if err := g.scene.AddMaterial(m); err != nil {
			return err
		}
	}

	for _, mc := range g.cfg.Meshes {
		data, err := mc.MeshData()
		if err != nil {
			return err
		}
		if _, err := g.scene.AddMesh(mc.Name, data); err != nil {
			return err
		}
	}

	for _, ec := range g.cfg.Entities {
		e, err := g.scene.AddEntity(ec.Name, ec.Mesh, ec.Material)
		if err != nil {
			return err
		}
		position, scale, rotation := ec.Transform()
		e.SetPositionVec(position)
		e.SetScale(scale.X, scale.Y, scale.Z)
		e.SetRotation(rotation)
	}

	if a := g.cfg.Animation; a.Enabled {
		entities := g.scene.Entities()
		if a.Entity < 0 || a.Entity >= len(entities) {
			return fmt.Errorf("animation entity %d out of range (%d entities)", a.Entity, len(entities))
		}
		g.animated = entities[a.Entity]
	}

	slog.Info("scene initialised",
		"entities", len(g.scene.Entities()),
		"meshes", len(g.cfg.Meshes),
		"materials", len(g.cfg.Materials),
		"lights", len(g.lights))
	return nil
}

// createMaterial binds the shared shader pair with the configured textures.
// A material without a diffuse texture samples a 1x1 white image.
func (g *Game) createMaterial(mc config.MaterialConfig) (*scene.Material, error) {
	opts := make([]scene.MaterialOption, 0, 3)

	diffuse, err := g.loadTexture(mc.DiffuseTexture)
	if err != nil {
		return nil, err
	}
	opts = append(opts, scene.WithDiffuseTexture(diffuse))

	if mc.NormalTexture != "" {
		normal, err := g.loadTexture(mc.NormalTexture)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scene.WithNormalTexture(normal))
	}

	sampler, err := g.device.CreateSampler(samplerDesc(mc))
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	g.samplers = append(g.samplers, sampler)
	opts = append(opts, scene.WithSampler(sampler))

	return scene.NewMaterial(mc.Name, g.vertexShader, g.pixelShader, opts...), nil
}

func (g *Game) loadTexture(path string) (gfx.Texture, error) {
	name := path
	img := scene.SolidImage(255, 255, 255, 255)
	if path == "" {
		name = "white"
	} else {
		var err error
		if img, err = scene.LoadImage(path); err != nil {
			slog.Error("texture load failed", "path", path, "error", err)
			return nil, err
		}
	}
	tex, err := g.device.CreateTexture(name, img)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	g.textures = append(g.textures, tex)
	return tex, nil
}

func samplerDesc(mc config.MaterialConfig) gfx.SamplerDesc {
	var desc gfx.SamplerDesc
	if strings.EqualFold(mc.Filter, "nearest") {
		desc.Filter = gfx.FilterNearest
	}
	switch strings.ToLower(mc.Wrap) {
	case "clamp":
		desc.Wrap = gfx.WrapClamp
	case "mirror":
		desc.Wrap = gfx.WrapMirror
	}
	return desc
}

// Update advances the camera and the scripted animation by one frame.
func (g *Game) Update(deltaTime, totalTime float32, in input.State) {
	if in.Down(input.Quit) && !g.done {
		slog.Info("quit requested")
		g.done = true
	}

	g.camera.Update(deltaTime, in)

	if e := g.animated; e != nil {
		speed := g.cfg.Animation.Speed
		s := 0.5*math32.Sin(0.5*totalTime) + 0.8
		e.SetScale(s, s, s)
		e.MoveAbsolute(speed*deltaTime, speed*deltaTime, speed*deltaTime)
	}
}

// Draw clears once, draws every entity that has a material, and presents once.
func (g *Game) Draw() error {
	g.device.Clear(g.cfg.ClearColorValue())

	view := g.camera.ViewMatrix()
	projection := g.camera.ProjectionMatrix()

	var stats Stats
	for _, e := range g.scene.Entities() {
		m := e.Material()
		if m == nil {
			stats.Skipped++
			continue
		}
		ps := m.PixelShader()
		for _, l := range g.lights {
			if !l.light.Upload(ps, l.name) {
				g.rejectLight(l.name, m.Name())
			}
		}
		if err := e.PrepareMaterial(view, projection); err != nil {
			return fmt.Errorf("entity %q: %w", e.Name(), err)
		}

		mesh := e.Mesh()
		g.device.SetBuffers(mesh.VertexBuffer(), mesh.IndexBuffer())
		g.device.DrawIndexed(mesh.IndexCount(), 0, 0)

		stats.Entities++
		stats.Triangles += int(mesh.IndexCount() / 3)
	}
	g.stats = stats

	if err := g.device.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// OnResize rebuilds the projection for the new framebuffer size. Minimised
// windows report zero and are ignored.
func (g *Game) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.camera.UpdateProjectionMatrix(uint32(width), uint32(height))
}

// OnMouseDown starts mouse-look from the cursor position.
func (g *Game) OnMouseDown(x, y float64) {
	g.prevMouseX, g.prevMouseY = x, y
	g.camera.SetDoRotation(true)
}

func (g *Game) OnMouseUp() {
	g.camera.SetDoRotation(false)
}

// OnMouseMove feeds the cursor delta since the previous event to the camera
// while mouse-look is active.
func (g *Game) OnMouseMove(x, y float64) {
	if g.camera.DoRotation() {
		g.camera.UpdateMouseInput(float32(g.prevMouseX-x), float32(g.prevMouseY-y))
	}
	g.prevMouseX, g.prevMouseY = x, y
}

// Done reports whether quit was requested.
func (g *Game) Done() bool {
	return g.done
}

func (g *Game) Camera() *scene.Camera {
	return g.camera
}

func (g *Game) Scene() *scene.Scene {
	return g.scene
}

func (g *Game) Stats() Stats {
	return g.stats
}

func (g *Game) rejectLight(light, material string) {
	if g.rejectedLights[light] {
		return
	}
	if g.rejectedLights == nil {
		g.rejectedLights = make(map[string]bool)
	}
	g.rejectedLights[light] = true
	slog.Debug("pixel stage has no uniforms for light", "light", light, "material", material)
}

// Snapshot returns the session config with entities and the camera position
// replaced by their current state, so a saved snapshot reloads the scene as it
// is now.
func (g *Game) Snapshot() config.Config {
	cfg := g.cfg
	pos := g.camera.Position()
	cfg.Camera.Position = [3]float32{pos.X, pos.Y, pos.Z}

	entities := g.scene.Entities()
	cfg.Entities = make([]config.EntityConfig, 0, len(entities))
	cfg.Animation.Enabled = false
	for i, e := range entities {
		p, sc, r := e.Position(), e.Scale(), e.Rotation()
		ec := config.EntityConfig{
			Name:     e.Name(),
			Mesh:     e.Mesh().Name(),
			Position: &[3]float32{p.X, p.Y, p.Z},
			Scale:    &[3]float32{sc.X, sc.Y, sc.Z},
			Rotation: &[3]float32{r.X, r.Y, r.Z},
		}
		if m := e.Material(); m != nil {
			ec.Material = m.Name()
		}
		cfg.Entities = append(cfg.Entities, ec)
		if e == g.animated {
			cfg.Animation.Enabled = true
			cfg.Animation.Entity = i
		}
	}
	return cfg
}

// Destroy releases entities, then meshes, then textures and samplers.
func (g *Game) Destroy() {
	g.scene.Destroy()
	for _, t := range g.textures {
		t.Release()
	}
	for _, s := range g.samplers {
		s.Release()
	}
	g.textures, g.samplers = nil, nil
	slog.Info("scene destroyed")
}
