package opengl

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-demo/gfx"
)

type texture struct {
	name string
	id   uint32
}

func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// newTexture uploads img with a full mip chain. Sampling state comes from
// the sampler object bound alongside it.
func newTexture(name string, img *image.RGBA) (*texture, error) {
	if img == nil || len(img.Pix) == 0 {
		return nil, fmt.Errorf("texture %q has no pixel data", name)
	}
	size := img.Bounds().Size()
	if img.Stride != size.X*4 {
		return nil, fmt.Errorf("texture %q: unsupported stride %d", name, img.Stride)
	}

	t := &texture{name: name}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("upload texture " + name); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

type sampler struct {
	id uint32
}

func (s *sampler) Release() {
	if s.id != 0 {
		gl.DeleteSamplers(1, &s.id)
		s.id = 0
	}
}

func newSampler(desc gfx.SamplerDesc) (*sampler, error) {
	minFilter, magFilter := int32(gl.LINEAR_MIPMAP_LINEAR), int32(gl.LINEAR)
	if desc.Filter == gfx.FilterNearest {
		minFilter, magFilter = gl.NEAREST_MIPMAP_NEAREST, gl.NEAREST
	}
	wrap := int32(gl.REPEAT)
	switch desc.Wrap {
	case gfx.WrapClamp:
		wrap = gl.CLAMP_TO_EDGE
	case gfx.WrapMirror:
		wrap = gl.MIRRORED_REPEAT
	}

	s := &sampler{}
	gl.GenSamplers(1, &s.id)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, wrap)

	if err := glError("create sampler"); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}
