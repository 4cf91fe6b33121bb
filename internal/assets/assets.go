// Package assets embeds the default shader sources.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders/*.vert shaders/*.frag
var embedded embed.FS

// Shaders returns the embedded shader directory. Paths are bare file names
// such as "simple.vert".
func Shaders() fs.FS {
	sub, err := fs.Sub(embedded, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}
