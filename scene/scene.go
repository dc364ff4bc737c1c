package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"render-demo/gfx"
)

var (
	ErrResourceInUse   = errors.New("scene: resource still referenced by an entity")
	ErrUnknownMesh     = errors.New("scene: unknown mesh")
	ErrUnknownMaterial = errors.New("scene: unknown material")
	ErrDuplicateName   = errors.New("scene: name already registered")
)

// Scene owns the meshes, materials and flat entity list of one session.
// Meshes are released only once no entity references them.
type Scene struct {
	device gfx.Device

	meshes    map[string]*Mesh
	meshRefs  map[*Mesh]int
	materials map[string]*Material
	entities  []*Entity
}

func NewScene(device gfx.Device) *Scene {
	return &Scene{
		device:    device,
		meshes:    make(map[string]*Mesh),
		meshRefs:  make(map[*Mesh]int),
		materials: make(map[string]*Material),
	}
}

// AddMesh uploads data and registers the result under name.
func (s *Scene) AddMesh(name string, data MeshData) (*Mesh, error) {
	if _, ok := s.meshes[name]; ok {
		return nil, fmt.Errorf("mesh %q: %w", name, ErrDuplicateName)
	}
	m, err := newMesh(s.device, name, data)
	if err != nil {
		return nil, err
	}
	s.meshes[name] = m
	slog.Debug("mesh added", "name", name, "vertices", m.VertexCount(), "indices", m.IndexCount())
	return m, nil
}

// LoadMesh reads a mesh file and registers it under name.
func (s *Scene) LoadMesh(name, path string) (*Mesh, error) {
	data, err := LoadMeshFile(path)
	if err != nil {
		return nil, err
	}
	return s.AddMesh(name, data)
}

func (s *Scene) Mesh(name string) (*Mesh, bool) {
	m, ok := s.meshes[name]
	return m, ok
}

func (s *Scene) AddMaterial(m *Material) error {
	if _, ok := s.materials[m.Name()]; ok {
		return fmt.Errorf("material %q: %w", m.Name(), ErrDuplicateName)
	}
	s.materials[m.Name()] = m
	return nil
}

func (s *Scene) Material(name string) (*Material, bool) {
	m, ok := s.materials[name]
	return m, ok
}

// AddEntity creates an entity for a registered mesh. An empty material name
// leaves the entity without a material.
func (s *Scene) AddEntity(name, meshName, materialName string) (*Entity, error) {
	mesh, ok := s.meshes[meshName]
	if !ok {
		return nil, fmt.Errorf("entity %q: mesh %q: %w", name, meshName, ErrUnknownMesh)
	}
	var material *Material
	if materialName != "" {
		if material, ok = s.materials[materialName]; !ok {
			return nil, fmt.Errorf("entity %q: material %q: %w", name, materialName, ErrUnknownMaterial)
		}
	}
	e, err := NewEntity(name, mesh, material)
	if err != nil {
		return nil, err
	}
	s.entities = append(s.entities, e)
	s.meshRefs[mesh]++
	return e, nil
}

// RemoveEntity drops e from the draw list and releases its mesh reference.
func (s *Scene) RemoveEntity(e *Entity) bool {
	i := slices.Index(s.entities, e)
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	s.meshRefs[e.mesh]--
	return true
}

// Entities returns the draw list in insertion order. The slice must not be modified.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// MeshRefs reports how many entities reference the named mesh.
func (s *Scene) MeshRefs(name string) int {
	m, ok := s.meshes[name]
	if !ok {
		return 0
	}
	return s.meshRefs[m]
}

// ReleaseMesh frees the named mesh's buffers. It fails while any entity still
// references the mesh.
func (s *Scene) ReleaseMesh(name string) error {
	m, ok := s.meshes[name]
	if !ok {
		return fmt.Errorf("release %q: %w", name, ErrUnknownMesh)
	}
	if n := s.meshRefs[m]; n > 0 {
		return fmt.Errorf("release %q (%d entities): %w", name, n, ErrResourceInUse)
	}
	m.release()
	delete(s.meshes, name)
	delete(s.meshRefs, m)
	return nil
}

// Destroy drops every entity, then releases every mesh.
func (s *Scene) Destroy() {
	for _, e := range s.entities {
		s.meshRefs[e.mesh]--
	}
	s.entities = nil
	for name, m := range s.meshes {
		m.release()
		delete(s.meshes, name)
	}
	clear(s.meshRefs)
	clear(s.materials)
}
