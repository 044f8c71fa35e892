package main

import (
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	rasterVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec2 a_texcoord;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_texcoord;
    };` + "\x00"
	rasterFragmentShader = `
    precision highp float;
    uniform sampler2D u_tex;
    varying vec2 v_texcoord;
    void main(void) {
      gl_FragColor = texture2D(u_tex, v_texcoord);
    };` + "\x00"
)

type RasterVertex struct {
	position [2]float32
	texcoord [2]float32
}

// RasterQuad blits an RGBA raster to a framebuffer rectangle as a
// single textured quad.
type RasterQuad struct {
	tex         Texture
	program     Program
	a_position  int32
	a_texcoord  int32
	u_transform int32
	u_tex       int32
	vertices    [6]RasterVertex
}

func CreateRasterQuad() (*RasterQuad, error) {
	program, err := CreateProgram(rasterVertexShader, rasterFragmentShader)
	if err != nil {
		return nil, err
	}
	tex, err := CreateTexture()
	if err != nil {
		program.Close()
		return nil, err
	}
	rq := &RasterQuad{
		tex:         tex,
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_texcoord:  program.GetAttribLocation("a_texcoord\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_tex:       program.GetUniformLocation("u_tex\x00"),
	}
	// Unit quad in pixel space, y growing downwards like the raster.
	quad := [6][4]float32{
		{0, 0, 0, 0},
		{0, -1, 0, 1},
		{1, -1, 1, 1},
		{1, -1, 1, 1},
		{1, 0, 1, 0},
		{0, 0, 0, 0},
	}
	for i, v := range quad {
		rq.vertices[i] = RasterVertex{
			position: [2]float32{v[0], v[1]},
			texcoord: [2]float32{v[2], v[3]},
		}
	}
	return rq, nil
}

// Upload replaces the texture contents with img.
func (rq *RasterQuad) Upload(img *image.RGBA) {
	rq.tex.Bind()
	size := img.Bounds().Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(size.X), int32(size.Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix))
}

// Draw renders the texture over rect, given in framebuffer pixels.
func (rq *RasterQuad) Draw(rect Rect) {
	rq.program.Use()
	rq.tex.Bind()
	var activeTexture int32
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &activeTexture)
	gl.Uniform1i(rq.u_tex, activeTexture-gl.TEXTURE0)
	gl.EnableVertexAttribArray(uint32(rq.a_position))
	gl.VertexAttribPointer(
		uint32(rq.a_position), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(RasterVertex{})),
		gl.Ptr(&rq.vertices[0].position[0]))
	gl.EnableVertexAttribArray(uint32(rq.a_texcoord))
	gl.VertexAttribPointer(
		uint32(rq.a_texcoord), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(RasterVertex{})),
		gl.Ptr(&rq.vertices[0].texcoord[0]))
	ux := 2.0 / float32(fbSize.X)
	uy := 2.0 / float32(fbSize.Y)
	mScale := mgl.Scale3D(ux*float32(rect.Dx()), uy*float32(rect.Dy()), 1)
	tx := -1.0 + ux*float32(rect.Min.X)
	ty := 1.0 - uy*float32(rect.Min.Y)
	mTranslate := mgl.Translate3D(tx, ty, 0)
	mTransform := mTranslate.Mul4(mScale)
	gl.UniformMatrix4fv(rq.u_transform, 1, false, &mTransform[0])
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(rq.vertices)))
	gl.DisableVertexAttribArray(uint32(rq.a_position))
	gl.DisableVertexAttribArray(uint32(rq.a_texcoord))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (rq *RasterQuad) Close() error {
	rq.tex.Close()
	return rq.program.Close()
}
