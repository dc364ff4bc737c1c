package opengl

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-demo/gfx"
	"render-demo/math"
)

type uniform struct {
	location int32
	kind     uint32
	unit     int32 // texture unit, samplers only
}

// pendingValue is a constant waiting for CopyAllBufferData.
type pendingValue struct {
	uniform
	data [16]float32
}

// Stage is one separable shader program attached to the device pipeline.
// Constant values are buffered until CopyAllBufferData; textures and samplers
// bind immediately.
type Stage struct {
	name     string
	device   *Device
	program  uint32
	stageBit uint32

	uniforms map[string]uniform
	units    []int32
	pending  map[string]pendingValue
}

var (
	_ gfx.VertexShader = (*Stage)(nil)
	_ gfx.PixelShader  = (*Stage)(nil)
)

// LoadVertexShader compiles a GLSL vertex shader file as a separable program.
func (d *Device) LoadVertexShader(path string) (*Stage, error) {
	return d.loadStage(path, gl.VERTEX_SHADER, gl.VERTEX_SHADER_BIT)
}

// LoadPixelShader compiles a GLSL fragment shader file as a separable program.
func (d *Device) LoadPixelShader(path string) (*Stage, error) {
	return d.loadStage(path, gl.FRAGMENT_SHADER, gl.FRAGMENT_SHADER_BIT)
}

func (d *Device) loadStage(path string, shaderType, stageBit uint32) (*Stage, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader %q: %w", path, err)
	}
	prog, err := newSeparableProgram(string(src)+"\x00", shaderType)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", path, err)
	}

	s := &Stage{
		name:     path,
		device:   d,
		program:  prog,
		stageBit: stageBit,
		pending:  make(map[string]pendingValue),
	}
	s.introspect()
	slog.Debug("shader loaded", "path", path, "uniforms", len(s.uniforms), "textures", len(s.units))
	return s, nil
}

// introspect records every active uniform and gives each sampler its own
// texture unit, in name order.
func (s *Stage) introspect() {
	s.uniforms = make(map[string]uniform)

	var count, maxLen int32
	gl.GetProgramiv(s.program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(s.program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	buf := make([]uint8, maxLen+1)

	var samplers []string
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var kind uint32
		gl.GetActiveUniform(s.program, i, int32(len(buf)), &length, &size, &kind, &buf[0])
		name := strings.TrimSuffix(string(buf[:length]), "[0]")

		loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		s.uniforms[name] = uniform{location: loc, kind: kind}
		if kind == gl.SAMPLER_2D {
			samplers = append(samplers, name)
		}
	}

	sort.Strings(samplers)
	for unit, name := range samplers {
		u := s.uniforms[name]
		u.unit = int32(unit)
		s.uniforms[name] = u
		s.units = append(s.units, u.unit)
		gl.ProgramUniform1i(s.program, u.location, u.unit)
	}
}

func (s *Stage) buffer(name string, kind uint32, values []float32) bool {
	u, ok := s.uniforms[name]
	if !ok || u.kind != kind {
		return false
	}
	p := pendingValue{uniform: u}
	copy(p.data[:], values)
	s.pending[name] = p
	return true
}

func (s *Stage) SetMatrix4x4(name string, m math.Mat4) bool {
	return s.buffer(name, gl.FLOAT_MAT4, []float32{
		m[0][0], m[0][1], m[0][2], m[0][3],
		m[1][0], m[1][1], m[1][2], m[1][3],
		m[2][0], m[2][1], m[2][2], m[2][3],
		m[3][0], m[3][1], m[3][2], m[3][3],
	})
}

func (s *Stage) SetFloat4(name string, v [4]float32) bool {
	return s.buffer(name, gl.FLOAT_VEC4, v[:])
}

func (s *Stage) SetFloat3(name string, v math.Vec3) bool {
	return s.buffer(name, gl.FLOAT_VEC3, []float32{v.X, v.Y, v.Z})
}

func (s *Stage) SetShaderResourceView(name string, tex gfx.Texture) bool {
	u, ok := s.uniforms[name]
	t, isGL := tex.(*texture)
	if !ok || u.kind != gl.SAMPLER_2D || !isGL {
		return false
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(u.unit))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	return true
}

// SetSamplerState binds the sampler to every texture unit this stage reads.
// GLSL combines textures and samplers, so name is not looked up.
func (s *Stage) SetSamplerState(name string, state gfx.SamplerState) bool {
	smp, ok := state.(*sampler)
	if !ok || len(s.units) == 0 {
		return false
	}
	for _, unit := range s.units {
		gl.BindSampler(uint32(unit), smp.id)
	}
	return true
}

func (s *Stage) SetShader() {
	gl.UseProgramStages(s.device.pipeline, s.stageBit, s.program)
}

func (s *Stage) CopyAllBufferData() {
	for name, p := range s.pending {
		switch p.kind {
		case gl.FLOAT_MAT4:
			gl.ProgramUniformMatrix4fv(s.program, p.location, 1, false, &p.data[0])
		case gl.FLOAT_VEC4:
			gl.ProgramUniform4fv(s.program, p.location, 1, &p.data[0])
		case gl.FLOAT_VEC3:
			gl.ProgramUniform3fv(s.program, p.location, 1, &p.data[0])
		}
		delete(s.pending, name)
	}
}

func (s *Stage) Release() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newSeparableProgram(src string, shaderType uint32) (uint32, error) {
	shader, err := compileShader(src, shaderType)
	if err != nil {
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.ProgramParameteri(prog, gl.PROGRAM_SEPARABLE, gl.TRUE)
	gl.AttachShader(prog, shader)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, shader)
	gl.DeleteShader(shader)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
