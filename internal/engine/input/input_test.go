package input

import "testing"

func TestPushAndReset(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventKeyDown, Key: KeyUp})
	in.Push(Event{Type: EventKeyUp, Key: KeyUp})

	if len(in.Events()) != 2 {
		t.Fatalf("expected 2 events, got %d", len(in.Events()))
	}
	if !in.KeyReleased(KeyUp) {
		t.Error("expected KeyUp to be released")
	}
	if in.KeyReleased(KeyDown) {
		t.Error("KeyDown was never released")
	}

	in.Reset()
	if len(in.Events()) != 0 {
		t.Errorf("expected no events after reset, got %d", len(in.Events()))
	}
	if in.KeyReleased(KeyUp) {
		t.Error("release must not survive a reset")
	}
}

func TestQuitIsSticky(t *testing.T) {
	in := New()
	if in.QuitRequested() {
		t.Fatal("fresh input should not request quit")
	}
	in.Push(Event{Type: EventQuit})
	in.Reset()
	if !in.QuitRequested() {
		t.Error("quit must survive a reset")
	}
}
