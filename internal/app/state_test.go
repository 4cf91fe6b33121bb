package app

import (
	"testing"

	"github.com/Faultbox/learngl/internal/engine/input"
)

func keyUp(k input.Key) input.Event {
	return input.Event{Type: input.EventKeyUp, Key: k}
}

func TestHandleInput(t *testing.T) {
	tests := []struct {
		name    string
		start   float32
		events  []input.Event
		want    float32
		changed bool
	}{
		{"no events", 0.5, nil, 0.5, false},
		{"up", 0.5, []input.Event{keyUp(input.KeyUp)}, 0.75, true},
		{"down", 0.5, []input.Event{keyUp(input.KeyDown)}, 0.25, true},
		{"key down is ignored", 0.5, []input.Event{{Type: input.EventKeyDown, Key: input.KeyUp}}, 0.5, false},
		{"up then down", 0.5, []input.Event{keyUp(input.KeyUp), keyUp(input.KeyDown)}, 0.5, false},
		{"clamped at one", 0.875, []input.Event{keyUp(input.KeyUp)}, 1, true},
		{"clamped at zero", 0.125, []input.Event{keyUp(input.KeyDown)}, 0, true},
		{"stays at one", 1, []input.Event{keyUp(input.KeyUp)}, 1, false},
		{"other keys", 0.5, []input.Event{keyUp(input.KeyR), keyUp(input.KeyEscape)}, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input.New()
			for _, e := range tt.events {
				in.Push(e)
			}
			s := &State{MixLevel: tt.start, MixStep: 0.25}

			changed := s.HandleInput(in)
			if s.MixLevel != tt.want {
				t.Errorf("MixLevel = %v, want %v", s.MixLevel, tt.want)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}
