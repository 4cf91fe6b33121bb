package shader

import (
	"io/fs"
	"os"
)

// Source is the text of one shader stage.
type Source struct {
	Stage Stage
	Path  string
	Text  string
}

// readFunc loads the contents of a shader file.
type readFunc func(path string) ([]byte, error)

func osRead(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func fsRead(fsys fs.FS) readFunc {
	return func(path string) ([]byte, error) {
		return fs.ReadFile(fsys, path)
	}
}

// readSource loads one stage. A failed read is returned as *IoError along
// with a Source that has no text.
func readSource(read readFunc, stage Stage, path string) (Source, error) {
	data, err := read(path)
	if err != nil {
		return Source{Stage: stage, Path: path}, &IoError{Path: path, Stage: stage, Err: err}
	}
	return Source{Stage: stage, Path: path, Text: string(data)}, nil
}
