// Package gfxtest provides an in-memory gfx.Device that records every call.
package gfxtest

import (
	"errors"
	"fmt"
	"image"

	"render-demo/core"
	"render-demo/gfx"
	"render-demo/math"
)

// Call is one recorded operation. Target is "device" or a stage label.
type Call struct {
	Target string
	Op     string
	Name   string
	Value  any
}

func (c Call) String() string {
	if c.Name == "" {
		return c.Target + "." + c.Op
	}
	return fmt.Sprintf("%s.%s(%s)", c.Target, c.Op, c.Name)
}

// Recorder collects calls in submission order; stages and devices may share one.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) record(c Call) {
	r.Calls = append(r.Calls, c)
}

// Ops returns the String form of every recorded call.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.String()
	}
	return ops
}

// Count returns how many calls match target and op.
func (r *Recorder) Count(target, op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Target == target && c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Buffer is a recorded vertex or index buffer.
type Buffer struct {
	ID       int
	Kind     string
	Len      int
	Released bool
}

func (b *Buffer) Release() { b.Released = true }

// Texture and Sampler are named handles.
type Texture struct {
	Name     string
	Released bool
}

func (t *Texture) Release() { t.Released = true }

type Sampler struct {
	Desc     gfx.SamplerDesc
	Released bool
}

func (s *Sampler) Release() { s.Released = true }

// ErrCreateFailed is returned by every Create method when FailCreate is set.
var ErrCreateFailed = errors.New("gfxtest: resource creation failed")

// Device records draws. The zero value is not usable; call NewDevice.
type Device struct {
	*Recorder
	FailCreate bool

	nextID int
}

func NewDevice(rec *Recorder) *Device {
	if rec == nil {
		rec = &Recorder{}
	}
	return &Device{Recorder: rec}
}

var _ gfx.Device = (*Device)(nil)

func (d *Device) CreateBuffers(vertices []core.Vertex, indices []uint32) (gfx.Buffer, gfx.Buffer, error) {
	if d.FailCreate {
		return nil, nil, ErrCreateFailed
	}
	d.nextID++
	vb := &Buffer{ID: d.nextID, Kind: "vertex", Len: len(vertices)}
	d.nextID++
	ib := &Buffer{ID: d.nextID, Kind: "index", Len: len(indices)}
	d.record(Call{Target: "device", Op: "CreateBuffers", Value: [2]int{len(vertices), len(indices)}})
	return vb, ib, nil
}

func (d *Device) CreateTexture(name string, img *image.RGBA) (gfx.Texture, error) {
	if d.FailCreate {
		return nil, ErrCreateFailed
	}
	d.record(Call{Target: "device", Op: "CreateTexture", Name: name, Value: img.Bounds().Size()})
	return &Texture{Name: name}, nil
}

func (d *Device) CreateSampler(desc gfx.SamplerDesc) (gfx.SamplerState, error) {
	if d.FailCreate {
		return nil, ErrCreateFailed
	}
	d.record(Call{Target: "device", Op: "CreateSampler", Value: desc})
	return &Sampler{Desc: desc}, nil
}

func (d *Device) Clear(color core.Color) {
	d.record(Call{Target: "device", Op: "Clear", Value: color})
}

func (d *Device) SetBuffers(vb, ib gfx.Buffer) {
	d.record(Call{Target: "device", Op: "SetBuffers", Value: [2]gfx.Buffer{vb, ib}})
}

// DrawArgs is the Value recorded for DrawIndexed.
type DrawArgs struct {
	IndexCount uint32
	StartIndex uint32
	BaseVertex int32
}

func (d *Device) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	d.record(Call{Target: "device", Op: "DrawIndexed", Value: DrawArgs{indexCount, startIndex, baseVertex}})
}

func (d *Device) Present() error {
	d.record(Call{Target: "device", Op: "Present"})
	return nil
}

// Stage is a recording shader stage. Values set since the last flush are
// Pending; CopyAllBufferData moves them to Flushed.
type Stage struct {
	Label   string
	Pending map[string]any
	Flushed map[string]any
	Active  bool

	// Known restricts accepted variable names when non-nil.
	Known map[string]bool

	rec *Recorder
}

func NewStage(label string, rec *Recorder) *Stage {
	if rec == nil {
		rec = &Recorder{}
	}
	return &Stage{
		Label:   label,
		Pending: make(map[string]any),
		Flushed: make(map[string]any),
		rec:     rec,
	}
}

var (
	_ gfx.VertexShader = (*Stage)(nil)
	_ gfx.PixelShader  = (*Stage)(nil)
)

func (s *Stage) set(op, name string, v any) bool {
	s.rec.record(Call{Target: s.Label, Op: op, Name: name, Value: v})
	if s.Known != nil && !s.Known[name] {
		return false
	}
	s.Pending[name] = v
	return true
}

func (s *Stage) SetMatrix4x4(name string, m math.Mat4) bool {
	return s.set("SetMatrix4x4", name, m)
}

func (s *Stage) SetFloat4(name string, v [4]float32) bool {
	return s.set("SetFloat4", name, v)
}

func (s *Stage) SetFloat3(name string, v math.Vec3) bool {
	return s.set("SetFloat3", name, v)
}

func (s *Stage) SetShaderResourceView(name string, tex gfx.Texture) bool {
	return s.set("SetShaderResourceView", name, tex)
}

func (s *Stage) SetSamplerState(name string, sampler gfx.SamplerState) bool {
	return s.set("SetSamplerState", name, sampler)
}

func (s *Stage) SetShader() {
	s.Active = true
	s.rec.record(Call{Target: s.Label, Op: "SetShader"})
}

func (s *Stage) CopyAllBufferData() {
	for k, v := range s.Pending {
		s.Flushed[k] = v
	}
	clear(s.Pending)
	s.rec.record(Call{Target: s.Label, Op: "CopyAllBufferData"})
}
