// Package shadertest provides an in-memory shader.Backend for tests.
//
// The fake understands just enough GLSL to behave like a driver: it rejects
// unbalanced sources and #error directives at compile time, checks that both
// stages define main and that every fragment input has a matching vertex
// output at link time, and assigns locations to the uniforms a program
// actually uses. It also tracks every handle so tests can check for leaks.
package shadertest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Faultbox/learngl/internal/engine/shader"
)

var (
	declRe   = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
	mainRe   = regexp.MustCompile(`\bvoid\s+main\s*\(\s*\)`)
	errorRe  = regexp.MustCompile(`^\s*#error\b(.*)$`)
	identsRe = regexp.MustCompile(`\b\w+\b`)
)

type variable struct {
	typ  string
	uses int
}

type shaderObj struct {
	stage    shader.Stage
	compiled bool
	log      string
	hasMain  bool
	ins      map[string]variable
	outs     map[string]variable
	uniforms map[string]variable
}

type programObj struct {
	attached []*shaderObj
	linked   bool
	log      string
	names    map[string]int32
	types    map[int32]string
	values   map[int32][]float32
}

// Backend is a fake GL driver. The zero value is not usable; call New.
type Backend struct {
	next     uint32
	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	current  uint32

	ShadersCreated  int
	ProgramsCreated int
	errs            []string
}

// New returns an empty fake driver.
func New() *Backend {
	return &Backend{
		shaders:  make(map[uint32]*shaderObj),
		programs: make(map[uint32]*programObj),
	}
}

func (b *Backend) handle() uint32 {
	b.next++
	return b.next
}

func (b *Backend) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Sprintf(format, args...))
}

// Errors returns the invalid calls recorded so far, in the spirit of glGetError.
func (b *Backend) Errors() []string { return b.errs }

// LiveShaders returns the number of shader objects not yet deleted.
func (b *Backend) LiveShaders() int { return len(b.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (b *Backend) LivePrograms() int { return len(b.programs) }

// Current returns the program bound by the last valid UseProgram.
func (b *Backend) Current() uint32 { return b.current }

func (b *Backend) CreateShader(stage shader.Stage) uint32 {
	id := b.handle()
	b.shaders[id] = &shaderObj{stage: stage}
	b.ShadersCreated++
	return id
}

func (b *Backend) CompileShader(id uint32, source string) {
	s, ok := b.shaders[id]
	if !ok {
		b.fail("CompileShader: invalid shader %d", id)
		return
	}
	s.ins = make(map[string]variable)
	s.outs = make(map[string]variable)
	s.uniforms = make(map[string]variable)
	s.hasMain = mainRe.MatchString(source)

	var errs []string
	depth := 0
	for i, line := range strings.Split(source, "\n") {
		if m := errorRe.FindStringSubmatch(line); m != nil {
			errs = append(errs, fmt.Sprintf("0:%d(1): error: #error%s", i+1, m[1]))
			continue
		}
		if m := declRe.FindStringSubmatch(line); m != nil {
			v := variable{typ: m[2]}
			switch m[1] {
			case "in":
				s.ins[m[3]] = v
			case "out":
				s.outs[m[3]] = v
			case "uniform":
				s.uniforms[m[3]] = v
			}
			continue
		}
		for _, r := range line {
			switch r {
			case '{', '(':
				depth++
			case '}', ')':
				depth--
			}
		}
		if depth < 0 {
			errs = append(errs, fmt.Sprintf("0:%d(1): error: syntax error, unexpected '}'", i+1))
			depth = 0
		}
		for _, ident := range identsRe.FindAllString(line, -1) {
			if u, ok := s.uniforms[ident]; ok {
				u.uses++
				s.uniforms[ident] = u
			}
		}
	}
	if depth > 0 {
		errs = append(errs, "0:1(1): error: syntax error, unexpected end of file")
	}

	s.compiled = len(errs) == 0
	s.log = strings.Join(errs, "\n")
}

func (b *Backend) ShaderCompiled(id uint32) bool {
	s, ok := b.shaders[id]
	return ok && s.compiled
}

func (b *Backend) ShaderInfoLog(id uint32) string {
	if s, ok := b.shaders[id]; ok {
		return s.log
	}
	return ""
}

func (b *Backend) DeleteShader(id uint32) {
	if id == 0 {
		return
	}
	if _, ok := b.shaders[id]; !ok {
		b.fail("DeleteShader: invalid shader %d", id)
		return
	}
	delete(b.shaders, id)
}

func (b *Backend) CreateProgram() uint32 {
	id := b.handle()
	b.programs[id] = &programObj{}
	b.ProgramsCreated++
	return id
}

func (b *Backend) AttachShader(program, id uint32) {
	p, ok := b.programs[program]
	if !ok {
		b.fail("AttachShader: invalid program %d", program)
		return
	}
	s, ok := b.shaders[id]
	if !ok {
		b.fail("AttachShader: invalid shader %d", id)
		return
	}
	p.attached = append(p.attached, s)
}

func (b *Backend) LinkProgram(program uint32) {
	p, ok := b.programs[program]
	if !ok {
		b.fail("LinkProgram: invalid program %d", program)
		return
	}
	p.linked = false
	p.log = ""

	var vert, frag *shaderObj
	for _, s := range p.attached {
		if !s.compiled {
			p.log = "error: linking with uncompiled/unspecialized shader"
			return
		}
		switch s.stage {
		case shader.Vertex:
			vert = s
		case shader.Fragment:
			frag = s
		}
	}

	var errs []string
	if vert == nil {
		errs = append(errs, "error: program lacks a vertex shader")
	}
	if frag == nil {
		errs = append(errs, "error: program lacks a fragment shader")
	}
	if len(errs) > 0 {
		p.log = strings.Join(errs, "\n")
		return
	}

	if !vert.hasMain {
		errs = append(errs, "error: vertex shader lacks `main'")
	}
	if !frag.hasMain {
		errs = append(errs, "error: fragment shader lacks `main'")
	}
	for _, name := range sortedKeys(frag.ins) {
		in := frag.ins[name]
		out, ok := vert.outs[name]
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("error: fragment shader input `%s' has no matching output in the previous stage", name))
		case out.typ != in.typ:
			errs = append(errs, fmt.Sprintf("error: `%s' declared as type `%s' and type `%s'", name, out.typ, in.typ))
		}
	}

	active := make(map[string]string)
	for _, s := range []*shaderObj{vert, frag} {
		for name, u := range s.uniforms {
			if prev, ok := active[name]; ok && prev != u.typ && u.uses > 0 {
				errs = append(errs, fmt.Sprintf("error: uniform `%s' declared as type `%s' and type `%s'", name, prev, u.typ))
				continue
			}
			if u.uses > 0 {
				active[name] = u.typ
			}
		}
	}
	if len(errs) > 0 {
		p.log = strings.Join(errs, "\n")
		return
	}

	p.names = make(map[string]int32)
	p.types = make(map[int32]string)
	p.values = make(map[int32][]float32)
	for i, name := range sortedKeys(active) {
		loc := int32(i)
		p.names[name] = loc
		p.types[loc] = active[name]
	}
	p.linked = true
}

func (b *Backend) ProgramLinked(program uint32) bool {
	p, ok := b.programs[program]
	return ok && p.linked
}

func (b *Backend) ProgramInfoLog(program uint32) string {
	if p, ok := b.programs[program]; ok {
		return p.log
	}
	return ""
}

func (b *Backend) DeleteProgram(program uint32) {
	if program == 0 {
		return
	}
	if _, ok := b.programs[program]; !ok {
		b.fail("DeleteProgram: invalid program %d", program)
		return
	}
	delete(b.programs, program)
	if b.current == program {
		b.current = 0
	}
}

func (b *Backend) UseProgram(program uint32) {
	if program == 0 {
		b.current = 0
		return
	}
	p, ok := b.programs[program]
	if !ok || !p.linked {
		b.fail("UseProgram: program %d is not linked", program)
		return
	}
	b.current = program
}

func (b *Backend) GetUniformLocation(program uint32, name string) int32 {
	p, ok := b.programs[program]
	if !ok || !p.linked {
		b.fail("GetUniformLocation: program %d is not linked", program)
		return -1
	}
	if loc, ok := p.names[name]; ok {
		return loc
	}
	return -1
}

// set stores a uniform value on the current program, checking the type.
func (b *Backend) set(fn string, location int32, types []string, v ...float32) {
	if location == -1 {
		return
	}
	p, ok := b.programs[b.current]
	if !ok {
		b.fail("%s: no current program", fn)
		return
	}
	typ, ok := p.types[location]
	if !ok {
		b.fail("%s: invalid location %d", fn, location)
		return
	}
	for _, t := range types {
		if t == typ {
			p.values[location] = append([]float32(nil), v...)
			return
		}
	}
	b.fail("%s: location %d has type %s", fn, location, typ)
}

func (b *Backend) Uniform1i(location int32, v int32) {
	b.set("Uniform1i", location, []string{"int", "bool", "sampler2D"}, float32(v))
}

func (b *Backend) Uniform1f(location int32, v float32) {
	b.set("Uniform1f", location, []string{"float"}, v)
}

func (b *Backend) Uniform4f(location int32, x, y, z, w float32) {
	b.set("Uniform4f", location, []string{"vec4"}, x, y, z, w)
}

func (b *Backend) UniformMatrix4fv(location int32, m [16]float32) {
	b.set("UniformMatrix4fv", location, []string{"mat4"}, m[:]...)
}

func (b *Backend) GetUniformfv(program uint32, location int32, out []float32) {
	p, ok := b.programs[program]
	if !ok || !p.linked {
		b.fail("GetUniformfv: program %d is not linked", program)
		return
	}
	copy(out, p.values[location])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ shader.Backend = (*Backend)(nil)
