package app

import "github.com/Faultbox/learngl/internal/engine/input"

// State is the application state shared by the input handler and the frame
// update. It lives on the frame thread only.
type State struct {
	MixLevel float32
	MixStep  float32
}

// HandleInput applies this frame's key releases. Up and Down move MixLevel
// by MixStep within [0, 1]. It reports whether MixLevel changed.
func (s *State) HandleInput(in *input.Input) bool {
	before := s.MixLevel
	for _, e := range in.Events() {
		if e.Type != input.EventKeyUp {
			continue
		}
		switch e.Key {
		case input.KeyUp:
			s.MixLevel += s.MixStep
		case input.KeyDown:
			s.MixLevel -= s.MixStep
		}
	}
	s.MixLevel = min(max(s.MixLevel, 0), 1)
	return s.MixLevel != before
}
