package shader

// Backend is the subset of the GL API the program lifecycle needs.
// All methods must be called on the thread that owns the GL context.
type Backend interface {
	CreateShader(stage Stage) uint32
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// GetUniformLocation returns -1 for names the program does not use.
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4fv(location int32, m [16]float32)
	GetUniformfv(program uint32, location int32, out []float32)
}
