// Package glbackend implements shader.Backend on top of OpenGL 4.1 core.
package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/learngl/internal/engine/shader"
)

// Backend forwards to the GL context current on the calling thread.
// gl.Init must have succeeded before any method is called.
type Backend struct{}

// New returns a GL backend.
func New() *Backend {
	return &Backend{}
}

// Version reports the GL version and renderer strings of the current context.
func Version() (version, renderer string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER))
}

func (Backend) CreateShader(stage shader.Stage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

func shaderType(stage shader.Stage) uint32 {
	switch stage {
	case shader.Vertex:
		return gl.VERTEX_SHADER
	case shader.Fragment:
		return gl.FRAGMENT_SHADER
	default:
		panic(fmt.Sprintf("glbackend: unsupported shader stage %v", stage))
	}
}

func (Backend) CompileShader(id uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)
}

func (Backend) ShaderCompiled(id uint32) bool {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (Backend) ShaderInfoLog(id uint32) string {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Backend) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (Backend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Backend) AttachShader(program, id uint32) {
	gl.AttachShader(program, id)
}

func (Backend) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (Backend) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (Backend) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (Backend) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Backend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (Backend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (Backend) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (Backend) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (Backend) GetUniformfv(program uint32, location int32, out []float32) {
	if len(out) == 0 || location < 0 {
		return
	}
	gl.GetUniformfv(program, location, &out[0])
}

var _ shader.Backend = Backend{}
