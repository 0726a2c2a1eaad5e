package palette

import (
	"image"
	"testing"
)

func TestLayout_Zone(t *testing.T) {
	l := Layout{Origin: image.Pt(5, 5), Width: 10, Height: 2}

	tests := []struct {
		index int
		want  image.Rectangle
	}{
		{index: 0, want: image.Rect(5, 5, 15, 7)},
		{index: 1, want: image.Rect(15, 5, 25, 7)},
		{index: 4, want: image.Rect(45, 5, 55, 7)},
	}

	for _, tt := range tests {
		if got := l.Zone(tt.index); got != tt.want {
			t.Errorf("Zone(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}

	l.Gap = 4
	if got := l.Zone(2); got != image.Rect(33, 5, 43, 7) {
		t.Errorf("Zone(2) with gap = %v", got)
	}
}

func TestSelect(t *testing.T) {
	entries := Default()
	layout := DefaultLayout() // zones [5,65)x[5,45), [65,125)x..., step 60

	tests := []struct {
		name      string
		cursor    image.Point
		wantIndex int
		wantHit   bool
	}{
		{name: "inside first", cursor: image.Pt(30, 20), wantIndex: 0, wantHit: true},
		{name: "inside last", cursor: image.Pt(270, 20), wantIndex: 4, wantHit: true},
		{name: "just inside left edge", cursor: image.Pt(6, 6), wantIndex: 0, wantHit: true},
		{name: "just inside bottom right", cursor: image.Pt(64, 44), wantIndex: 0, wantHit: true},
		{name: "left edge excluded", cursor: image.Pt(5, 20)},
		{name: "top edge excluded", cursor: image.Pt(30, 5)},
		{name: "bottom edge excluded", cursor: image.Pt(30, 45)},
		{name: "shared edge excluded", cursor: image.Pt(65, 20)},
		{name: "right edge of last excluded", cursor: image.Pt(305, 20)},
		{name: "below palette", cursor: image.Pt(30, 200)},
		{name: "past last zone", cursor: image.Pt(400, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, index, hit := Select(tt.cursor, entries, layout)

			if hit != tt.wantHit {
				t.Fatalf("Select(%v) hit = %v, want %v", tt.cursor, hit, tt.wantHit)
			}
			if !hit {
				return
			}
			if index != tt.wantIndex {
				t.Errorf("Select(%v) index = %d, want %d", tt.cursor, index, tt.wantIndex)
			}
			if entry != entries[tt.wantIndex] {
				t.Errorf("Select(%v) entry = %+v, want %+v", tt.cursor, entry, entries[tt.wantIndex])
			}
		})
	}
}

func TestSelect_FirstMatchWins(t *testing.T) {
	entries := Default()
	layout := Layout{Origin: image.Pt(0, 0), Width: 100, Height: 100, Gap: -50} // overlapping zones

	_, index, hit := Select(image.Pt(60, 50), entries, layout)

	if !hit || index != 0 {
		t.Errorf("Select() = (%d, %v), want first overlapping zone", index, hit)
	}
}

func TestSelect_EmptyPalette(t *testing.T) {
	if _, _, hit := Select(image.Pt(10, 10), nil, DefaultLayout()); hit {
		t.Error("empty palette should never hit")
	}
}
