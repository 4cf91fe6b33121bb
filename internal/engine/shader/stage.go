package shader

import "strings"

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// String returns the upper-case stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	default:
		return "UNKNOWN"
	}
}

func (s Stage) label() string {
	return strings.ToLower(s.String())
}

// State is the lifecycle state of a Program.
type State int

const (
	Uninitialized State = iota
	Compiling
	Linking
	Ready
	Broken
	Deleted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Compiling:
		return "compiling"
	case Linking:
		return "linking"
	case Ready:
		return "ready"
	case Broken:
		return "broken"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}
