// SPDX-License-Identifier: MPL-2.0

package display

import (
	"testing"

	"cwm/internal/model"
)

func TestCurrent_LargestIntersectingArea(t *testing.T) {
	t.Parallel()

	displays := []model.Display{
		{Index: 0, X: 0, Y: 0, Width: 1000, Height: 1000},
		{Index: 1, X: 900, Y: 0, Width: 1000, Height: 1000},
	}
	// Window mostly on display 1: overlaps display 0 by 100x1000,
	// display 1 by 900x1000.
	w := model.Rect{X: 900, Y: 0, Width: 900, Height: 1000}

	got, ok := Current(w, displays)
	if !ok || got.Index != 1 {
		t.Fatalf("expected display 1, got %+v ok=%v", got, ok)
	}
}

func TestCurrent_EmptyDisplays(t *testing.T) {
	t.Parallel()

	_, ok := Current(model.Rect{}, nil)
	if ok {
		t.Fatal("expected ok=false for empty display list")
	}
}
