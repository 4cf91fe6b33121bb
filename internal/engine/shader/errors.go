package shader

import "fmt"

// IoError reports a shader source file that could not be read.
type IoError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("reading %s shader %s: %v", e.Stage.label(), e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// CompileError reports a stage the backend refused to compile.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("compiling %s shader: %s", e.Stage.label(), e.Log)
	}
	return fmt.Sprintf("compiling %s shader %s: %s", e.Stage.label(), e.Path, e.Log)
}

// LinkError reports a program the backend refused to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "linking program: " + e.Log
}
