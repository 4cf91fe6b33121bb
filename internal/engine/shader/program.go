// Package shader manages the lifecycle of GL shader programs: reading stage
// sources, compiling them, linking the program, activating it and uploading
// uniforms.
//
// A Program is always safe to use. When a build fails the failure is written
// to the diagnostics stream and returned as an error, and the Program is left
// Broken: Use binds no program and uniform setters do nothing.
package shader

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/logger"
	"github.com/Faultbox/learngl/internal/metrics"
)

// Option configures a Program at construction.
type Option func(*Program)

// WithDiagnostics sets where ERROR::SHADER diagnostics are written.
// The default is os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Program) { p.diag.w = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Program) { p.diag.log = l }
}

// WithLogLimit sets the info log buffer size in bytes. Zero disables truncation.
func WithLogLimit(n int) Option {
	return func(p *Program) { p.diag.limit = n }
}

// Program is a linked vertex+fragment shader program.
// It must only be used on the thread owning the GL context.
type Program struct {
	backend  Backend
	id       uint32
	state    State
	err      error
	uniforms map[string]int32
	diag     diagnostics
}

// New builds a program from a vertex and a fragment shader file on disk.
//
// The returned Program is never nil. The error joins an *IoError for each file
// that could not be read with the *CompileError and *LinkError values of the
// build, or is nil when the program is ready. An unreadable file is compiled
// as empty text, so every call allocates two units.
func New(b Backend, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	p := newProgram(b, opts)
	return p, p.load(osRead, vertexPath, fragmentPath)
}

// NewFS is like New but reads the sources from fsys.
func NewFS(b Backend, fsys fs.FS, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	p := newProgram(b, opts)
	return p, p.load(fsRead(fsys), vertexPath, fragmentPath)
}

// NewFromSource builds a program from in-memory sources.
func NewFromSource(b Backend, vertexSrc, fragmentSrc string, opts ...Option) (*Program, error) {
	p := newProgram(b, opts)
	return p, p.build(
		Source{Stage: Vertex, Text: vertexSrc},
		Source{Stage: Fragment, Text: fragmentSrc},
	)
}

func newProgram(b Backend, opts []Option) *Program {
	p := &Program{
		backend:  b,
		state:    Uninitialized,
		uniforms: make(map[string]int32),
		diag: diagnostics{
			w:     os.Stderr,
			log:   logger.Named("shader"),
			limit: DefaultLogLimit,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Program) load(read readFunc, vertexPath, fragmentPath string) error {
	vert, vertErr := readSource(read, Vertex, vertexPath)
	frag, fragErr := readSource(read, Fragment, fragmentPath)

	// An unreadable stage is built from empty text, so it fails to compile
	// and the link still runs and consumes both units.
	var readErrs []error
	for _, err := range []error{vertErr, fragErr} {
		var ioErr *IoError
		if errors.As(err, &ioErr) {
			p.diag.readFailed(ioErr)
			readErrs = append(readErrs, ioErr)
		}
	}

	err := p.build(vert, frag)
	if len(readErrs) > 0 {
		p.err = errors.Join(append(readErrs, err)...)
		return p.err
	}
	return err
}

func (p *Program) build(vert, frag Source) error {
	p.state = Compiling
	vu := compile(p.backend, vert, &p.diag)
	fu := compile(p.backend, frag, &p.diag)

	var errs []error
	for _, u := range []struct {
		unit *Unit
		path string
	}{{vu, vert.Path}, {fu, frag.Path}} {
		if !u.unit.Compiled() {
			errs = append(errs, &CompileError{Stage: u.unit.Stage(), Path: u.path, Log: u.unit.Log()})
		}
	}

	p.state = Linking
	id, infoLog, ok := link(p.backend, vu, fu, &p.diag)
	p.id = id
	if !ok {
		errs = append(errs, &LinkError{Log: infoLog})
	}

	if len(errs) > 0 {
		p.state = Broken
		p.err = errors.Join(errs...)
		return p.err
	}

	p.state = Ready
	p.diag.log.Debug("shader program linked",
		zap.Uint32("program", p.id),
		zap.String("vertex", vert.Path),
		zap.String("fragment", frag.Path),
	)
	return nil
}

// ID returns the backend program handle. It is 0 if no program was created
// or after Delete.
func (p *Program) ID() uint32 { return p.id }

// State returns the lifecycle state.
func (p *Program) State() State { return p.state }

// IsReady reports whether the program linked and has not been deleted.
func (p *Program) IsReady() bool { return p.state == Ready }

// Err returns the error the build finished with, if any.
func (p *Program) Err() error { return p.err }

// Use makes this program current. A program that is not ready binds program
// 0, so subsequent draws produce nothing instead of failing.
func (p *Program) Use() {
	if p.state != Ready {
		p.backend.UseProgram(0)
		return
	}
	p.backend.UseProgram(p.id)
}

// Uniform setters write to whichever program is current on the pipeline,
// so call Use first. Unknown names are ignored.

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.location(name); loc >= 0 {
		p.backend.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.location(name); loc >= 0 {
		p.backend.Uniform1f(loc, v)
	}
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, x, y, z, w float32) {
	if loc := p.location(name); loc >= 0 {
		p.backend.Uniform4f(loc, x, y, z, w)
	}
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		p.backend.UniformMatrix4fv(loc, [16]float32(m))
	}
}

// Location returns the cached location of a uniform, -1 if the program does
// not use it or is not ready.
func (p *Program) Location(name string) int32 {
	return p.location(name)
}

func (p *Program) location(name string) int32 {
	if p.state != Ready {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.backend.GetUniformLocation(p.id, name)
	p.uniforms[name] = loc
	if loc < 0 {
		p.diag.log.Debug("uniform not found",
			zap.Uint32("program", p.id),
			zap.String("name", name),
		)
	}
	return loc
}

// Delete releases the program. It is safe to call on a broken program and
// more than once.
func (p *Program) Delete() {
	if p.id != 0 {
		p.backend.DeleteProgram(p.id)
		metrics.ProgramsLive.Dec()
		p.id = 0
	}
	clear(p.uniforms)
	p.state = Deleted
}
