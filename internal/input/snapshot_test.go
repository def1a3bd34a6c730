package input

import "testing"

func TestPressedExactlyOneFrame(t *testing.T) {
	s := NewState()

	// Frame 1: key goes down.
	s.BeginFrame(0.0)
	s.ApplyKey(KeyActionA, true)

	cur := s.Current()
	if !cur.IsPressed(KeyActionA) {
		t.Error("frame 1: IsPressed should be true on the down transition")
	}
	if !cur.IsDown(KeyActionA) {
		t.Error("frame 1: IsDown should be true")
	}
	if cur.IsReleased(KeyActionA) {
		t.Error("frame 1: IsReleased should be false")
	}

	// Frames 2..5: key stays held, no new events.
	for frame := 2; frame <= 5; frame++ {
		s.BeginFrame(float64(frame))
		if s.Current().IsPressed(KeyActionA) {
			t.Errorf("frame %d: IsPressed should be false while held", frame)
		}
		if !s.Current().IsDown(KeyActionA) {
			t.Errorf("frame %d: IsDown should remain true while held", frame)
		}
	}

	// Frame 6: key goes up.
	s.BeginFrame(6.0)
	s.ApplyKey(KeyActionA, false)
	if !s.Current().IsReleased(KeyActionA) {
		t.Error("frame 6: IsReleased should be true on the up transition")
	}
	if s.Current().IsDown(KeyActionA) {
		t.Error("frame 6: IsDown should be false")
	}

	// Frame 7: no events.
	s.BeginFrame(7.0)
	if s.Current().IsReleased(KeyActionA) {
		t.Error("frame 7: IsReleased should be false after the release frame")
	}
}

func TestTapWithinSinglePollInterval(t *testing.T) {
	s := NewState()

	// Down and up arrive inside the same frame.
	s.BeginFrame(0.0)
	s.ApplyKey(KeyUp, true)
	s.ApplyKey(KeyUp, false)

	cur := s.Current()
	if cur.IsDown(KeyUp) {
		t.Error("IsDown should be false after the tap completed")
	}
	if !cur.IsPressed(KeyUp) {
		t.Error("IsPressed should latch a press that released within one poll interval")
	}
	if !cur.IsReleased(KeyUp) {
		t.Error("IsReleased should latch the release too")
	}

	// Next frame: nothing lingers.
	s.BeginFrame(1.0)
	if s.Current().IsPressed(KeyUp) || s.Current().IsReleased(KeyUp) {
		t.Error("tap latches must clear on the next frame")
	}
}

func TestAutoRepeatDoesNotRetrigger(t *testing.T) {
	s := NewState()

	s.BeginFrame(0.0)
	s.ApplyKey(KeyRight, true)

	s.BeginFrame(1.0)
	// OS auto-repeat delivers redundant down events.
	s.ApplyKey(KeyRight, true)
	s.ApplyKey(KeyRight, true)

	if s.Current().IsPressed(KeyRight) {
		t.Error("auto-repeat down events must not count as new presses")
	}
	if !s.Current().IsDown(KeyRight) {
		t.Error("IsDown should remain true")
	}
}

func TestMouseButtons(t *testing.T) {
	s := NewState()

	s.BeginFrame(0.0)
	s.ApplyMouseMove(120, 80)
	s.ApplyMouseButton(MouseLeft, true)

	m := s.Current().Mouse
	if m.X != 120 || m.Y != 80 {
		t.Errorf("mouse position = (%d, %d), expected (120, 80)", m.X, m.Y)
	}
	if !m.Buttons[MouseLeft].Pressed() {
		t.Error("left button should report Pressed")
	}

	s.BeginFrame(1.0)
	if s.Current().Mouse.Buttons[MouseLeft].Pressed() {
		t.Error("Pressed should be true for exactly one frame")
	}
	if !s.Current().Mouse.Buttons[MouseLeft].Down {
		t.Error("Down should persist across frames")
	}
}

func TestOutOfRangeEventsIgnored(t *testing.T) {
	s := NewState()
	s.BeginFrame(0.0)

	// Should not panic.
	s.ApplyKey(Key(-1), true)
	s.ApplyKey(KeyCount, true)
	s.ApplyMouseButton(MouseButton(-1), true)
	s.ApplyMouseButton(MouseButtonCount, true)
}

func TestPreviousSnapshotRolls(t *testing.T) {
	s := NewState()

	s.BeginFrame(0.0)
	s.ApplyKey(KeyLeft, true)

	s.BeginFrame(1.0)
	if !s.Previous().IsDown(KeyLeft) {
		t.Error("previous snapshot should hold last frame's state")
	}
	if s.Previous().Timestamp != 0.0 {
		t.Errorf("previous timestamp = %v, expected 0.0", s.Previous().Timestamp)
	}
	if s.Current().Timestamp != 1.0 {
		t.Errorf("current timestamp = %v, expected 1.0", s.Current().Timestamp)
	}
}
