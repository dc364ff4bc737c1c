package scene

import (
	"errors"

	"render-demo/math"
)

var (
	ErrNilMesh    = errors.New("scene: entity requires a mesh")
	ErrNoMaterial = errors.New("scene: entity has no material")
)

// Entity is a transformed instance of a shared mesh, optionally drawn with a
// shared material. It never owns either; the Scene does.
type Entity struct {
	name     string
	position math.Vec3
	scale    math.Vec3
	rotation math.Euler
	mesh     *Mesh
	material *Material
}

// NewEntity places mesh at the origin with unit scale and no rotation.
// material may be nil.
func NewEntity(name string, mesh *Mesh, material *Material) (*Entity, error) {
	if mesh == nil {
		return nil, ErrNilMesh
	}
	return &Entity{
		name:     name,
		scale:    math.Vec3One,
		mesh:     mesh,
		material: material,
	}, nil
}

func (e *Entity) Name() string {
	return e.name
}

// MoveRelative moves along the entity's own axes.
func (e *Entity) MoveRelative(dx, dy, dz float32) {
	delta := e.rotation.ToQuaternion().RotateVector(math.Vec3{X: dx, Y: dy, Z: dz})
	e.position = e.position.Add(delta)
}

// MoveAbsolute moves along the world axes.
func (e *Entity) MoveAbsolute(dx, dy, dz float32) {
	e.position = e.position.Add(math.Vec3{X: dx, Y: dy, Z: dz})
}

func (e *Entity) Position() math.Vec3 {
	return e.position
}

func (e *Entity) SetPosition(x, y, z float32) {
	e.position = math.Vec3{X: x, Y: y, Z: z}
}

func (e *Entity) SetPositionVec(p math.Vec3) {
	e.position = p
}

func (e *Entity) Scale() math.Vec3 {
	return e.scale
}

func (e *Entity) SetScale(x, y, z float32) {
	e.scale = math.Vec3{X: x, Y: y, Z: z}
}

func (e *Entity) Rotation() math.Euler {
	return e.rotation
}

func (e *Entity) SetRotation(r math.Euler) {
	e.rotation = r
}

func (e *Entity) Mesh() *Mesh {
	return e.mesh
}

// Material returns nil when the entity has none.
func (e *Entity) Material() *Material {
	return e.material
}

// WorldMatrix composes scale, rotation and translation, transposed for upload.
func (e *Entity) WorldMatrix() math.Mat4 {
	return math.Mat4ScaleRotationTranslation(e.scale, e.rotation, e.position).Transpose()
}

// PrepareMaterial binds everything the material's stages need for one draw of
// this entity and flushes both stages. Lights or other per-frame pixel values
// set beforehand are flushed along with the textures.
func (e *Entity) PrepareMaterial(view, projection math.Mat4) error {
	m := e.material
	if m == nil {
		return ErrNoMaterial
	}
	vs, ps := m.VertexShader(), m.PixelShader()

	vs.SetMatrix4x4("world", e.WorldMatrix())
	vs.SetMatrix4x4("view", view)
	vs.SetMatrix4x4("projection", projection)
	m.bindTextures()

	vs.SetShader()
	ps.SetShader()
	vs.CopyAllBufferData()
	ps.CopyAllBufferData()
	return nil
}
