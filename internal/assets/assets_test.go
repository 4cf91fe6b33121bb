package assets

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedShaders(t *testing.T) {
	names := []string{"simple.vert", "multicolour.frag", "yellow.frag", "transform.vert", "mix.frag"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := fs.ReadFile(Shaders(), name)
			if err != nil {
				t.Fatalf("reading %s: %v", name, err)
			}
			if !strings.HasPrefix(string(data), "#version 410 core") {
				t.Errorf("%s should start with a version directive", name)
			}
		})
	}
}
