package shader

import (
	"strings"

	"github.com/Faultbox/learngl/internal/metrics"
)

// Unit is a compiled shader stage living on the GPU. It is released exactly
// once, by the link step that consumes it.
type Unit struct {
	backend  Backend
	id       uint32
	stage    Stage
	ok       bool
	log      string
	released bool
}

// ID returns the backend shader handle, or 0 once released.
func (u *Unit) ID() uint32 {
	if u.released {
		return 0
	}
	return u.id
}

// Stage returns the pipeline stage the unit was compiled for.
func (u *Unit) Stage() Stage { return u.stage }

// Compiled reports whether the backend accepted the source.
func (u *Unit) Compiled() bool { return u.ok }

// Log returns the compiler log of a failed unit.
func (u *Unit) Log() string { return u.log }

// Release deletes the backend shader. Further calls do nothing.
func (u *Unit) Release() {
	if u.released {
		return
	}
	u.released = true
	u.backend.DeleteShader(u.id)
}

// compile turns one source into a unit. A failed compile still yields a unit
// so that the remaining stages and the link step report their own errors.
func compile(b Backend, src Source, d *diagnostics) *Unit {
	u := &Unit{
		backend: b,
		id:      b.CreateShader(src.Stage),
		stage:   src.Stage,
	}

	if strings.TrimSpace(src.Text) == "" {
		u.log = "shader source is empty"
	} else {
		b.CompileShader(u.id, src.Text)
		u.ok = b.ShaderCompiled(u.id)
		if !u.ok {
			u.log = b.ShaderInfoLog(u.id)
			if u.log == "" {
				u.log = "compilation failed without a log"
			}
		}
	}

	metrics.ShaderCompiles.WithLabelValues(src.Stage.label(), metrics.Result(u.ok)).Inc()
	if !u.ok {
		d.compileFailed(src, u.log)
	}
	return u
}
