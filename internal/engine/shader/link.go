package shader

import "github.com/Faultbox/learngl/internal/metrics"

// link combines a vertex and a fragment unit into a program. Both units are
// released before returning whatever the outcome. The program handle is
// returned even when linking fails; the caller owns it.
func link(b Backend, vert, frag *Unit, d *diagnostics) (program uint32, infoLog string, ok bool) {
	defer vert.Release()
	defer frag.Release()

	program = b.CreateProgram()
	metrics.ProgramsLive.Inc()

	b.AttachShader(program, vert.id)
	b.AttachShader(program, frag.id)
	b.LinkProgram(program)

	ok = b.ProgramLinked(program)
	metrics.ProgramLinks.WithLabelValues(metrics.Result(ok)).Inc()
	if !ok {
		infoLog = b.ProgramInfoLog(program)
		if infoLog == "" {
			infoLog = "linking failed without a log"
		}
		d.linkFailed(program, infoLog)
	}
	return program, infoLog, ok
}
