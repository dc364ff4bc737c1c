// Package config loads the demo's YAML configuration over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"render-demo/core"
	"render-demo/input"
	"render-demo/math"
	"render-demo/scene"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window     WindowConfig        `yaml:"window"`
	Camera     CameraConfig        `yaml:"camera"`
	Shaders    ShaderConfig        `yaml:"shaders"`
	ClearColor [4]float32          `yaml:"clear_color"`
	Lights     []LightConfig       `yaml:"lights"`
	Materials  []MaterialConfig    `yaml:"materials"`
	Meshes     []MeshConfig        `yaml:"meshes"`
	Entities   []EntityConfig      `yaml:"entities"`
	Animation  AnimationConfig     `yaml:"animation"`
	Bindings   map[string][]string `yaml:"bindings"`
	Log        LogConfig           `yaml:"log"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

// CameraConfig mirrors scene.CameraConfig. Angles are radians.
type CameraConfig struct {
	Position                [3]float32  `yaml:"position"`
	HorizontalRotationSpeed float32     `yaml:"horizontal_rotation_speed"`
	VerticalRotationSpeed   float32     `yaml:"vertical_rotation_speed"`
	YawRange                scene.Range `yaml:"yaw_range"`
	PitchRange              scene.Range `yaml:"pitch_range"`
	InvertAxis              bool        `yaml:"invert_axis"`
	FieldOfView             float32     `yaml:"fov"`
	NearPlane               float32     `yaml:"near"`
	FarPlane                float32     `yaml:"far"`
}

func (c CameraConfig) Scene() scene.CameraConfig {
	return scene.CameraConfig{
		Position:                vec3(c.Position),
		HorizontalRotationSpeed: c.HorizontalRotationSpeed,
		VerticalRotationSpeed:   c.VerticalRotationSpeed,
		YawRange:                c.YawRange,
		PitchRange:              c.PitchRange,
		InvertAxis:              c.InvertAxis,
		FieldOfView:             c.FieldOfView,
		NearPlane:               c.NearPlane,
		FarPlane:                c.FarPlane,
	}
}

// ShaderConfig names the GLSL sources of the single vertex/pixel pair.
type ShaderConfig struct {
	Vertex string `yaml:"vertex"`
	Pixel  string `yaml:"pixel"`
}

type LightConfig struct {
	Name      string     `yaml:"name"`
	Ambient   [4]float32 `yaml:"ambient"`
	Diffuse   [4]float32 `yaml:"diffuse"`
	Direction [3]float32 `yaml:"direction"`
}

func (l LightConfig) Light() scene.DirectionalLight {
	return scene.DirectionalLight{
		AmbientColor: color(l.Ambient),
		DiffuseColor: color(l.Diffuse),
		Direction:    vec3(l.Direction),
	}
}

// MaterialConfig describes one material. Texture paths are optional.
type MaterialConfig struct {
	Name           string `yaml:"name"`
	DiffuseTexture string `yaml:"diffuse_texture"`
	NormalTexture  string `yaml:"normal_texture"`
	Filter         string `yaml:"filter"`
	Wrap           string `yaml:"wrap"`
}

// MeshConfig loads a mesh from Path or generates the named Primitive.
type MeshConfig struct {
	Name      string  `yaml:"name"`
	Path      string  `yaml:"path"`
	Primitive string  `yaml:"primitive"`
	Size      float32 `yaml:"size"`
}

type EntityConfig struct {
	Name     string      `yaml:"name"`
	Mesh     string      `yaml:"mesh"`
	Material string      `yaml:"material"`
	Position *[3]float32 `yaml:"position"`
	Scale    *[3]float32 `yaml:"scale"`
	Rotation *[3]float32 `yaml:"rotation"`
}

// AnimationConfig drives the scripted motion of one entity.
type AnimationConfig struct {
	Enabled bool    `yaml:"enabled"`
	Entity  int     `yaml:"entity"`
	Speed   float32 `yaml:"speed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Default reproduces the demo scene: a helix, a torus and a triangle sharing
// one material, lit by two directional lights.
func Default() Config {
	pitchLimit := 85 * math32.Pi / 180
	lights := scene.DefaultLights()
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "DirectX Game",
			Resizable: true,
			VSync:     true,
		},
		Camera: CameraConfig{
			Position:                [3]float32{0, 0, -1},
			HorizontalRotationSpeed: 0.005,
			VerticalRotationSpeed:   0.005,
			YawRange:                scene.Range{Min: -math32.Pi, Max: math32.Pi},
			PitchRange:              scene.Range{Min: -pitchLimit, Max: pitchLimit},
			FieldOfView:             0.25 * math32.Pi,
			NearPlane:               0.1,
			FarPlane:                100,
		},
		Shaders: ShaderConfig{
			Vertex: "assets/shaders/vertex.glsl",
			Pixel:  "assets/shaders/pixel.glsl",
		},
		ClearColor: core.ColorCornflower.Array(),
		Lights: []LightConfig{
			lightConfig("light", lights["light"]),
			lightConfig("green_light", lights["green_light"]),
		},
		Materials: []MaterialConfig{
			{Name: "basic", Filter: "linear", Wrap: "repeat"},
		},
		Meshes: []MeshConfig{
			{Name: "helix", Primitive: "helix", Size: 1},
			{Name: "torus", Primitive: "torus", Size: 1},
			{Name: "triangle", Primitive: "triangle", Size: 1},
		},
		Entities: []EntityConfig{
			{Name: "helix", Mesh: "helix", Material: "basic"},
			{Name: "torus", Mesh: "torus", Material: "basic"},
			{Name: "triangle", Mesh: "triangle", Material: "basic", Position: &[3]float32{-1, -1, 0}},
		},
		Animation: AnimationConfig{Enabled: true, Entity: 0, Speed: 1.2},
		Bindings:  bindingNames(input.DefaultBindings()),
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over Default and validates the result. Lists in the
// file replace the default lists; bindings are merged per action.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config as YAML that Load reads back unchanged.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}

// InputBindings resolves key names to key codes.
func (c Config) InputBindings() (input.Bindings, error) {
	bindings := make(input.Bindings, len(c.Bindings))
	for name, keys := range c.Bindings {
		action, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			code, ok := input.KeyByName(key)
			if !ok {
				return nil, fmt.Errorf("action %s: unknown key %q", action, key)
			}
			bindings[action] = append(bindings[action], code)
		}
	}
	return bindings, nil
}

func (c Config) ClearColorValue() core.Color {
	return color(c.ClearColor)
}

// Transform returns the configured position, scale and rotation,
// falling back to the entity defaults for fields left unset.
func (e EntityConfig) Transform() (position, scale math.Vec3, rotation math.Euler) {
	scale = math.Vec3One
	if e.Position != nil {
		position = vec3(*e.Position)
	}
	if e.Scale != nil {
		scale = vec3(*e.Scale)
	}
	if e.Rotation != nil {
		r := *e.Rotation
		rotation = math.NewEuler(r[0], r[1], r[2])
	}
	return position, scale, rotation
}

// MeshData builds the geometry a mesh entry describes.
func (m MeshConfig) MeshData() (scene.MeshData, error) {
	if m.Path != "" {
		return scene.LoadMeshFile(m.Path)
	}
	size := m.Size
	if size == 0 {
		size = 1
	}
	switch strings.ToLower(m.Primitive) {
	case "triangle":
		return scene.Triangle(), nil
	case "cube":
		return scene.Cube(size), nil
	case "sphere":
		return scene.Sphere(size, 32, 16), nil
	case "torus":
		return scene.Torus(size, size*0.3, 48, 24), nil
	case "helix":
		return scene.Helix(3, size*0.6, size, size*0.15, 32, 12), nil
	case "grid":
		return scene.Grid(size, max(1, int(size))), nil
	default:
		return scene.MeshData{}, fmt.Errorf("mesh %q: unknown primitive %q", m.Name, m.Primitive)
	}
}

func lightConfig(name string, l scene.DirectionalLight) LightConfig {
	d := l.Direction
	return LightConfig{
		Name:      name,
		Ambient:   l.AmbientColor.Array(),
		Diffuse:   l.DiffuseColor.Array(),
		Direction: [3]float32{d.X, d.Y, d.Z},
	}
}

func bindingNames(b input.Bindings) map[string][]string {
	names := make(map[string][]string, len(b))
	for action, codes := range b {
		for _, code := range codes {
			if name, ok := input.KeyName(code); ok {
				names[action.String()] = append(names[action.String()], name)
			}
		}
	}
	return names
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func color(c [4]float32) core.Color {
	return core.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
