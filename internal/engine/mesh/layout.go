// Package mesh uploads vertex and index data into GL buffers and records the
// attribute layout in a vertex array object.
package mesh

const floatSize = 4

// Attribute is one float vector attribute of an interleaved vertex.
type Attribute struct {
	Location   uint32
	Components int32
}

// Layout describes interleaved float vertices, attributes in buffer order.
type Layout []Attribute

// Stride returns the size of one vertex in bytes.
func (l Layout) Stride() int32 {
	var n int32
	for _, a := range l {
		n += a.Components
	}
	return n * floatSize
}

// Offsets returns the byte offset of each attribute within a vertex.
func (l Layout) Offsets() []int {
	offsets := make([]int, len(l))
	off := 0
	for i, a := range l {
		offsets[i] = off
		off += int(a.Components) * floatSize
	}
	return offsets
}

// VertexCount returns how many whole vertices fit in data.
func (l Layout) VertexCount(data []float32) int32 {
	per := l.Stride() / floatSize
	if per == 0 {
		return 0
	}
	return int32(len(data)) / per
}

// Common layouts.
var (
	// PositionColor is vec3 position + vec3 colour.
	PositionColor = Layout{{Location: 0, Components: 3}, {Location: 1, Components: 3}}
	// PositionColorUV is vec3 position + vec3 colour + vec2 texture coordinate.
	PositionColorUV = Layout{{Location: 0, Components: 3}, {Location: 1, Components: 3}, {Location: 2, Components: 2}}
)
