package gesture

import (
	"image"
	"testing"
)

var (
	pointing   = FingerState{Index: true}
	drawing    = FingerState{Index: true, Middle: true}
	fist       = FingerState{}
	middleOnly = FingerState{Middle: true}
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		state FingerState
		want  Mode
	}{
		{state: pointing, want: Point},
		{state: drawing, want: Draw},
		{state: fist, want: Erase},
		{state: middleOnly, want: Point},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := ModeFor(tt.state); got != tt.want {
					t.Errorf("ModeFor(%+v) = %v, want %v", tt.state, got, tt.want)
				}
			}
		})
	}
}

func TestMode_String(t *testing.T) {
	tests := map[Mode]string{
		Idle:     "idle",
		Point:    "point",
		Draw:     "draw",
		Erase:    "erase",
		Mode(42): "unknown",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}

func TestMachine_Transitions(t *testing.T) {
	p := image.Point{X: 10, Y: 20}
	q := image.Point{X: 30, Y: 40}

	tests := []struct {
		name       string
		prime      bool // start with a previous cursor at p
		state      FingerState
		wantMode   Mode
		wantStroke bool
		wantPrev   bool
	}{
		{name: "point from empty", state: pointing, wantMode: Point, wantPrev: true},
		{name: "point with previous", prime: true, state: pointing, wantMode: Point, wantPrev: true},
		{name: "draw from empty", state: drawing, wantMode: Draw, wantPrev: true},
		{name: "draw with previous", prime: true, state: drawing, wantMode: Draw, wantStroke: true, wantPrev: true},
		{name: "erase from empty", state: fist, wantMode: Erase},
		{name: "erase with previous", prime: true, state: fist, wantMode: Erase},
		{name: "middle only fallback", prime: true, state: middleOnly, wantMode: Point, wantPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			if tt.prime {
				m.Step(pointing, p)
			}

			action := m.Step(tt.state, q)

			if action.Mode != tt.wantMode {
				t.Errorf("Mode = %v, want %v", action.Mode, tt.wantMode)
			}
			if action.Cursor != q {
				t.Errorf("Cursor = %v, want %v", action.Cursor, q)
			}
			if action.Stroke != tt.wantStroke {
				t.Errorf("Stroke = %v, want %v", action.Stroke, tt.wantStroke)
			}
			if tt.wantStroke && action.From != p {
				t.Errorf("From = %v, want %v", action.From, p)
			}

			prev, ok := m.Previous()
			if ok != tt.wantPrev {
				t.Fatalf("Previous() ok = %v, want %v", ok, tt.wantPrev)
			}
			if ok && prev != q {
				t.Errorf("Previous() = %v, want %v", prev, q)
			}
		})
	}
}

func TestMachine_LostResetsPrevious(t *testing.T) {
	m := NewMachine()
	m.Step(drawing, image.Point{X: 5, Y: 5})

	action := m.Lost()

	if action.Mode != Idle {
		t.Errorf("Mode = %v, want idle", action.Mode)
	}
	if action.Stroke {
		t.Error("idle tick must not stroke")
	}
	if _, ok := m.Previous(); ok {
		t.Error("Previous() should be empty after losing the hand")
	}

	// Re-entering Draw after Idle must not connect to the old point.
	if next := m.Step(drawing, image.Point{X: 300, Y: 300}); next.Stroke {
		t.Error("first Draw after Idle should not stroke")
	}
}

func TestMachine_PointThenDrawStrokesSegmentwise(t *testing.T) {
	p1 := image.Point{X: 100, Y: 100}
	p2 := image.Point{X: 150, Y: 120}
	p3 := image.Point{X: 200, Y: 180}

	m := NewMachine()
	var segments [][2]image.Point

	for _, step := range []struct {
		state  FingerState
		cursor image.Point
	}{
		{pointing, p1},
		{drawing, p2},
		{drawing, p3},
	} {
		a := m.Step(step.state, step.cursor)
		if a.Stroke {
			segments = append(segments, [2]image.Point{a.From, a.Cursor})
		}
	}

	want := [][2]image.Point{{p1, p2}, {p2, p3}}
	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d: %v", len(segments), len(want), segments)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, segments[i], want[i])
		}
	}
}

func TestMachine_EraseBreaksStroke(t *testing.T) {
	m := NewMachine()
	m.Step(drawing, image.Point{X: 1, Y: 1})
	m.Step(fist, image.Point{X: 2, Y: 2})

	if a := m.Step(drawing, image.Point{X: 3, Y: 3}); a.Stroke {
		t.Error("Draw right after Erase should not stroke")
	}
}

func TestMachine_Reset(t *testing.T) {
	var m Machine
	m.Step(pointing, image.Point{X: 7, Y: 7})
	m.Reset()

	if _, ok := m.Previous(); ok {
		t.Error("Previous() should be empty after Reset")
	}
}

func TestMode_Text(t *testing.T) {
	for _, m := range []Mode{Idle, Point, Draw, Erase} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil || back != m {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}

	var m Mode
	if err := m.UnmarshalText([]byte("wave")); err == nil {
		t.Error("expected error for unknown mode")
	}
}
