package glbackend

import (
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Triangle is a small spinning-triangle client used to exercise the
// off-screen pipeline. It draws into whatever framebuffer is bound.
type Triangle struct {
	legacy  bool
	program uint32
	vao     uint32
	vbo     uint32
	uAngle  int32
	angle   float32
}

// NewTriangle compiles the demo program. Contexts older than 3.2 get GLSL
// 1.20 shaders and no vertex array object.
func NewTriangle(major, minor int) (*Triangle, error) {
	t := &Triangle{legacy: major < 3 || major == 3 && minor < 2}

	vs, fs := vertexSource, fragmentSource
	if t.legacy {
		vs, fs = legacyVertexSource, legacyFragmentSource
	}
	var err error
	t.program, err = makeProgram(vs, fs)
	if err != nil {
		return nil, err
	}
	t.uAngle = gl.GetUniformLocation(t.program, gl.Str("uAngle\x00"))

	// X, Y, R, G, B
	verts := []float32{
		0.0, 0.6, 1.0, 0.2, 0.2,
		-0.6, -0.6, 0.2, 1.0, 0.2,
		0.6, -0.6, 0.2, 0.2, 1.0,
	}

	if !t.legacy {
		gl.GenVertexArrays(1, &t.vao)
		gl.BindVertexArray(t.vao)
	}
	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	if !t.legacy {
		t.attribs()
		gl.BindVertexArray(0)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return t, nil
}

func (t *Triangle) attribs() {
	const stride = 5 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(2*4)))
}

// Draw clears the bound framebuffer and draws the triangle rotated by the
// time elapsed since the previous frame.
func (t *Triangle) Draw(elapsed time.Duration, clear [4]float32) {
	t.angle += float32(elapsed.Seconds())

	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(t.program)
	gl.Uniform1f(t.uAngle, t.angle)
	if t.legacy {
		gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
		t.attribs()
	} else {
		gl.BindVertexArray(t.vao)
	}
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	if t.legacy {
		gl.DisableVertexAttribArray(0)
		gl.DisableVertexAttribArray(1)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	} else {
		gl.BindVertexArray(0)
	}
	gl.UseProgram(0)
}

// Release deletes the GL objects. The owning context must be current.
func (t *Triangle) Release() {
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
		t.vbo = 0
	}
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.program != 0 {
		gl.DeleteProgram(t.program)
		t.program = 0
	}
}

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec3 aColor;
uniform float uAngle;
out vec3 vColor;
void main() {
    float c = cos(uAngle);
    float s = sin(uAngle);
    vColor = aColor;
    gl_Position = vec4(c*aPos.x - s*aPos.y, s*aPos.x + c*aPos.y, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec3 vColor;
out vec4 FragColor;
void main() {
    FragColor = vec4(vColor, 1.0);
}
` + "\x00"

const legacyVertexSource = `
#version 120
attribute vec2 aPos;
attribute vec3 aColor;
uniform float uAngle;
varying vec3 vColor;
void main() {
    float c = cos(uAngle);
    float s = sin(uAngle);
    vColor = aColor;
    gl_Position = vec4(c*aPos.x - s*aPos.y, s*aPos.x + c*aPos.y, 0.0, 1.0);
}
` + "\x00"

const legacyFragmentSource = `
#version 120
varying vec3 vColor;
void main() {
    gl_FragColor = vec4(vColor, 1.0);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	// legacy shaders have no layout qualifiers
	gl.BindAttribLocation(prog, 0, gl.Str("aPos\x00"))
	gl.BindAttribLocation(prog, 1, gl.Str("aColor\x00"))
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
