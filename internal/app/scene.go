package app

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/mesh"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/texture"
	"github.com/Faultbox/learngl/internal/logger"
)

// Frame carries what a scene needs to draw one frame.
type Frame struct {
	Time  float64
	State *State
}

// Scene draws one of the demo scenes.
type Scene interface {
	Draw(f Frame)
	Close()
}

// newScene builds the named scene. Shader failures do not fail the scene;
// they are returned alongside it so the caller can report them.
func newScene(name string, programs *programSet, textures config.TexturesConfig) (Scene, error) {
	switch name {
	case config.SceneTriangles:
		s, err := newTriangles(programs)
		if s == nil {
			return nil, err
		}
		return s, err
	case config.SceneTextured:
		s, err := newTextured(programs, textures)
		if s == nil {
			return nil, err
		}
		return s, err
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}

// triangles draws two triangles with two programs sharing a vertex shader.
// The left one pulses with time through the ourColor uniform.
type triangles struct {
	meshes [2]*mesh.Mesh
	colour *slot
	yellow *slot
}

var triangleVertices = [2][]float32{
	{
		// positions          // colours
		-0.75, -0.5, 0.0, 1.0, 0.0, 0.0,
		0.0, -0.5, 0.0, 0.0, 1.0, 0.0,
		-0.375, 0.5, 0.0, 0.0, 0.0, 1.0,
	},
	{
		0.75, -0.5, 0.0, 1.0, 0.0, 0.0,
		0.0, -0.5, 0.0, 0.0, 1.0, 0.0,
		0.375, 0.5, 0.0, 0.0, 0.0, 1.0,
	},
}

func newTriangles(programs *programSet) (*triangles, error) {
	s := &triangles{}
	for i, verts := range triangleVertices {
		m, err := mesh.New(verts, nil, mesh.PositionColor)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		s.meshes[i] = m
	}

	var errColour, errYellow error
	s.colour, errColour = programs.add("simple.vert", "multicolour.frag", nil)
	s.yellow, errYellow = programs.add("simple.vert", "yellow.frag", nil)
	return s, errors.Join(errColour, errYellow)
}

func (s *triangles) Draw(f Frame) {
	green := float32(math.Sin(f.Time)/2 + 0.5)

	p := s.colour.program
	p.Use()
	p.SetVec4("ourColor", 0, green, 0, 1)
	s.meshes[0].Draw()

	s.yellow.program.Use()
	s.meshes[1].Draw()
}

func (s *triangles) Close() {
	for _, m := range s.meshes {
		if m != nil {
			m.Delete()
		}
	}
}

// textured draws a rotating quad blending two textures by State.MixLevel.
type textured struct {
	quad     *mesh.Mesh
	textures [2]*texture.Texture
	program  *slot
}

var (
	quadVertices = []float32{
		// positions       // colours      // texture coords
		0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0,
		0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0,
		-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0,
		-0.5, 0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 1.0,
	}
	quadIndices = []uint32{
		0, 1, 3,
		1, 2, 3,
	}
)

func newTextured(programs *programSet, cfg config.TexturesConfig) (*textured, error) {
	quad, err := mesh.New(quadVertices, quadIndices, mesh.PositionColorUV)
	if err != nil {
		return nil, fmt.Errorf("quad: %w", err)
	}
	s := &textured{quad: quad}

	fallbacks := [2][2]color.RGBA{
		{{R: 181, G: 136, B: 84, A: 255}, {R: 120, G: 86, B: 50, A: 255}},
		{{R: 255, G: 220, B: 0, A: 255}, {A: 0}},
	}
	for i, name := range []string{cfg.Primary, cfg.Secondary} {
		s.textures[i] = loadTexture(filepath.Join(cfg.Dir, name), fallbacks[i])
	}

	s.program, err = programs.add("transform.vert", "mix.frag", func(p *shader.Program) {
		p.SetInt("texture1", 0)
		p.SetInt("texture2", 1)
	})
	return s, err
}

// loadTexture falls back to a checkerboard so a missing image never stops
// the scene.
func loadTexture(path string, colours [2]color.RGBA) *texture.Texture {
	t, err := texture.Load(path)
	if err == nil {
		return t
	}
	logger.Warn("texture unavailable, using checkerboard", zap.String("path", path), zap.Error(err))
	return texture.Upload(texture.Checkerboard(256, 8, colours[0], colours[1]))
}

// transformAt returns the quad transform at time t: a rotation about Z,
// then a shift to the bottom-right quadrant.
func transformAt(t float64) mgl32.Mat4 {
	return mgl32.Translate3D(0.5, -0.5, 0).Mul4(mgl32.HomogRotate3DZ(float32(t)))
}

func (s *textured) Draw(f Frame) {
	s.textures[0].Bind(0)
	s.textures[1].Bind(1)

	p := s.program.program
	p.Use()
	p.SetFloat("mixLevel", f.State.MixLevel)
	p.SetMat4("transform", transformAt(f.Time))
	s.quad.Draw()
}

func (s *textured) Close() {
	for _, t := range s.textures {
		if t != nil {
			t.Delete()
		}
	}
	s.quad.Delete()
}
