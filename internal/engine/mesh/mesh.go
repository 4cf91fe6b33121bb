package mesh

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/logger"
)

// Mesh is a VAO with its vertex buffer and an optional index buffer.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// New uploads vertices (and indices, if any) with the given layout.
// A GL context must be current.
func New(vertices []float32, indices []uint32, layout Layout) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, errors.New("mesh has no vertices")
	}
	per := int(layout.Stride() / floatSize)
	if per == 0 || len(vertices)%per != 0 {
		return nil, fmt.Errorf("%d floats do not divide into vertices of %d floats", len(vertices), per)
	}

	m := &Mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	if len(indices) > 0 {
		m.indexed = true
		m.count = int32(len(indices))
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	} else {
		m.count = layout.VertexCount(vertices)
	}

	stride := layout.Stride()
	for i, off := range layout.Offsets() {
		a := layout[i]
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, uintptr(off))
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element buffer binding is VAO state and stays bound.
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh created",
		zap.Uint32("vao", m.vao),
		zap.Uint32("vbo", m.vbo),
		zap.Uint32("ebo", m.ebo),
		zap.Int32("count", m.count),
	)
	return m, nil
}

// Draw issues the draw call for the whole mesh with the current program.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Delete releases the GL objects. Safe to call more than once.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
