package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/learngl/internal/assets"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/shader/shadertest"
)

const (
	testVertex = `#version 410 core
layout (location = 0) in vec3 aPos;
out vec3 vertexColor;
void main() {
    gl_Position = vec4(aPos, 1.0);
    vertexColor = aPos;
}
`
	testFragment = `#version 410 core
in vec3 vertexColor;
out vec4 FragColor;
uniform float mixLevel;
void main() {
    FragColor = vec4(vertexColor * mixLevel, 1.0);
}
`
	brokenFragment = `#version 410 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0;
`
)

func writeShader(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func diskPrograms(t *testing.T, b *shadertest.Backend) (*programSet, string) {
	t.Helper()
	dir := t.TempDir()
	writeShader(t, dir, "a.vert", testVertex)
	writeShader(t, dir, "a.frag", testFragment)
	writeShader(t, dir, "b.frag", testFragment)
	return newProgramSet(&loader{
		backend: b,
		dir:     dir,
		opts:    []shader.Option{shader.WithDiagnostics(io.Discard)},
	}), dir
}

func TestEmbeddedProgramsBuild(t *testing.T) {
	b := shadertest.New()
	set := newProgramSet(&loader{
		backend: b,
		fsys:    assets.Shaders(),
		opts:    []shader.Option{shader.WithDiagnostics(io.Discard)},
	})
	defer set.close()

	pairs := [][2]string{
		{"simple.vert", "multicolour.frag"},
		{"simple.vert", "yellow.frag"},
		{"transform.vert", "mix.frag"},
	}
	for _, pair := range pairs {
		sl, err := set.add(pair[0], pair[1], nil)
		if err != nil {
			t.Fatalf("%s + %s: %v", pair[0], pair[1], err)
		}
		if !sl.program.IsReady() {
			t.Errorf("%s + %s: program not ready", pair[0], pair[1])
		}
	}

	if files := set.files(); len(files) != 0 {
		t.Errorf("embedded shaders should not report files, got %v", files)
	}
	if b.LiveShaders() != 0 {
		t.Errorf("expected compiled units to be released, %d live", b.LiveShaders())
	}
}

func TestAddRunsConfigure(t *testing.T) {
	b := shadertest.New()
	set, _ := diskPrograms(t, b)
	defer set.close()

	calls := 0
	sl, err := set.add("a.vert", "a.frag", func(p *shader.Program) {
		calls++
		p.SetFloat("mixLevel", 0.5)
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected configure to run once, ran %d times", calls)
	}
	if b.Current() != sl.program.ID() {
		t.Errorf("configure should run with the program current")
	}
	if errs := b.Errors(); len(errs) != 0 {
		t.Errorf("unexpected backend errors: %v", errs)
	}
}

func TestAddKeepsBrokenProgram(t *testing.T) {
	b := shadertest.New()
	set, dir := diskPrograms(t, b)
	defer set.close()
	writeShader(t, dir, "bad.frag", brokenFragment)

	calls := 0
	sl, err := set.add("a.vert", "bad.frag", func(*shader.Program) { calls++ })
	if err == nil {
		t.Fatal("expected an error for a broken fragment shader")
	}
	if sl == nil || sl.program == nil {
		t.Fatal("a broken program should still occupy its slot")
	}
	if sl.program.IsReady() {
		t.Error("broken program reports ready")
	}
	if calls != 0 {
		t.Error("configure must not run on a broken program")
	}
}

func TestFiles(t *testing.T) {
	b := shadertest.New()
	set, dir := diskPrograms(t, b)
	defer set.close()

	set.add("a.vert", "a.frag", nil)
	set.add("a.vert", "b.frag", nil)

	files := set.files()
	want := []string{
		filepath.Join(dir, "a.vert"),
		filepath.Join(dir, "a.frag"),
		filepath.Join(dir, "b.frag"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestReloadKeepsWorkingProgram(t *testing.T) {
	b := shadertest.New()
	set, dir := diskPrograms(t, b)
	defer set.close()

	sl, err := set.add("a.vert", "a.frag", nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	before := sl.program

	path := writeShader(t, dir, "a.frag", brokenFragment)
	if err := set.reload([]string{path}); err == nil {
		t.Fatal("expected reload of a broken source to fail")
	}
	if sl.program != before || !sl.program.IsReady() {
		t.Error("failed reload should keep the previous program")
	}
	if b.LivePrograms() != 1 {
		t.Errorf("expected the failed rebuild to be deleted, %d programs live", b.LivePrograms())
	}

	writeShader(t, dir, "a.frag", testFragment)
	if err := set.reload([]string{path}); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if sl.program == before {
		t.Error("successful reload should replace the program")
	}
	if !sl.program.IsReady() {
		t.Error("reloaded program not ready")
	}
	if before.State() != shader.Deleted {
		t.Errorf("previous program should be deleted, state %v", before.State())
	}
	if b.LivePrograms() != 1 || b.LiveShaders() != 0 {
		t.Errorf("leak after reload: %d programs, %d shaders", b.LivePrograms(), b.LiveShaders())
	}
}

func TestReloadReplacesBrokenProgram(t *testing.T) {
	b := shadertest.New()
	set, dir := diskPrograms(t, b)
	defer set.close()
	path := writeShader(t, dir, "a.frag", brokenFragment)

	sl, _ := set.add("a.vert", "a.frag", nil)
	if sl.program.IsReady() {
		t.Fatal("expected a broken program")
	}

	writeShader(t, dir, "a.frag", testFragment)
	if err := set.reload([]string{path}); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !sl.program.IsReady() {
		t.Error("fixed source should produce a ready program")
	}
	if b.LivePrograms() != 1 {
		t.Errorf("expected one live program, got %d", b.LivePrograms())
	}
}

func TestReloadOnlyChanged(t *testing.T) {
	b := shadertest.New()
	set, dir := diskPrograms(t, b)
	defer set.close()

	first, _ := set.add("a.vert", "a.frag", nil)
	second, _ := set.add("a.vert", "b.frag", nil)
	p1, p2 := first.program, second.program

	if err := set.reload([]string{filepath.Join(dir, "b.frag")}); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if first.program != p1 {
		t.Error("untouched program was rebuilt")
	}
	if second.program == p2 {
		t.Error("changed program was not rebuilt")
	}

	// The shared vertex stage rebuilds both.
	p1, p2 = first.program, second.program
	if err := set.reload([]string{filepath.Join(dir, "a.vert")}); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if first.program == p1 || second.program == p2 {
		t.Error("vertex change should rebuild every program using it")
	}

	// nil rebuilds everything.
	p1, p2 = first.program, second.program
	if err := set.reload(nil); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if first.program == p1 || second.program == p2 {
		t.Error("reload(nil) should rebuild every program")
	}
	if b.LivePrograms() != 2 {
		t.Errorf("expected two live programs, got %d", b.LivePrograms())
	}
}

func TestReloadReappliesConfigure(t *testing.T) {
	b := shadertest.New()
	set, _ := diskPrograms(t, b)
	defer set.close()

	calls := 0
	set.add("a.vert", "a.frag", func(*shader.Program) { calls++ })
	if err := set.reload(nil); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected configure to run after reload, ran %d times", calls)
	}
}

func TestCloseDeletesPrograms(t *testing.T) {
	b := shadertest.New()
	set, dir := diskPrograms(t, b)
	writeShader(t, dir, "bad.frag", brokenFragment)

	set.add("a.vert", "a.frag", nil)
	set.add("a.vert", "bad.frag", nil)
	set.close()

	if b.LivePrograms() != 0 || b.LiveShaders() != 0 {
		t.Errorf("leak after close: %d programs, %d shaders", b.LivePrograms(), b.LiveShaders())
	}
	if errs := b.Errors(); len(errs) != 0 {
		t.Errorf("unexpected backend errors: %v", errs)
	}
}
