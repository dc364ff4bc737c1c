package config

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"render-demo/input"
)

var (
	primitives = map[string]bool{"triangle": true, "cube": true, "sphere": true, "torus": true, "helix": true, "grid": true}
	filters    = map[string]bool{"": true, "linear": true, "nearest": true}
	wraps      = map[string]bool{"": true, "repeat": true, "clamp": true, "mirror": true}
)

// Validate reports every problem at once, wrapped in ErrInvalid.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if cam.YawRange.Min > cam.YawRange.Max {
		add("camera.yaw_range min %v > max %v", cam.YawRange.Min, cam.YawRange.Max)
	}
	if cam.PitchRange.Min > cam.PitchRange.Max {
		add("camera.pitch_range min %v > max %v", cam.PitchRange.Min, cam.PitchRange.Max)
	}
	if cam.FieldOfView <= 0 || cam.FieldOfView >= math32.Pi {
		add("camera.fov %v must be in (0, pi)", cam.FieldOfView)
	}
	if cam.NearPlane <= 0 || cam.FarPlane <= cam.NearPlane {
		add("camera near %v / far %v must satisfy 0 < near < far", cam.NearPlane, cam.FarPlane)
	}

	if c.Shaders.Vertex == "" || c.Shaders.Pixel == "" {
		add("shaders.vertex and shaders.pixel are required")
	}

	lights := map[string]bool{}
	for i, l := range c.Lights {
		if l.Name == "" {
			add("lights[%d] has no name", i)
		} else if lights[l.Name] {
			add("duplicate light %q", l.Name)
		}
		lights[l.Name] = true
	}

	materials := map[string]bool{}
	for i, m := range c.Materials {
		switch {
		case m.Name == "":
			add("materials[%d] has no name", i)
		case materials[m.Name]:
			add("duplicate material %q", m.Name)
		}
		materials[m.Name] = true
		if !filters[strings.ToLower(m.Filter)] {
			add("material %q: unknown filter %q", m.Name, m.Filter)
		}
		if !wraps[strings.ToLower(m.Wrap)] {
			add("material %q: unknown wrap %q", m.Name, m.Wrap)
		}
	}

	meshes := map[string]bool{}
	for i, m := range c.Meshes {
		switch {
		case m.Name == "":
			add("meshes[%d] has no name", i)
		case meshes[m.Name]:
			add("duplicate mesh %q", m.Name)
		}
		meshes[m.Name] = true
		if (m.Path == "") == (m.Primitive == "") {
			add("mesh %q needs exactly one of path or primitive", m.Name)
		} else if m.Primitive != "" && !primitives[strings.ToLower(m.Primitive)] {
			add("mesh %q: unknown primitive %q", m.Name, m.Primitive)
		}
	}

	for i, e := range c.Entities {
		if !meshes[e.Mesh] {
			add("entities[%d] %q references unknown mesh %q", i, e.Name, e.Mesh)
		}
		if e.Material != "" && !materials[e.Material] {
			add("entities[%d] %q references unknown material %q", i, e.Name, e.Material)
		}
	}

	if a := c.Animation; a.Enabled && (a.Entity < 0 || a.Entity >= len(c.Entities)) {
		add("animation.entity %d out of range (%d entities)", a.Entity, len(c.Entities))
	}

	for name, keys := range c.Bindings {
		if _, err := input.ParseAction(name); err != nil {
			add("bindings: %v", err)
			continue
		}
		for _, key := range keys {
			if _, ok := input.KeyByName(key); !ok {
				add("bindings.%s: unknown key %q", name, key)
			}
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		add("%v", err)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
