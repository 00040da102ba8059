// SPDX-License-Identifier: MPL-2.0

package display

import "cwm/internal/model"

// Current resolves which display a window rect currently "belongs to"
// when it may overlap more than one: the display whose visible rect has
// the largest intersecting area with w (spec §9 open question). Returns
// ok=false only when displays is empty.
func Current(w model.Rect, displays []model.Display) (model.Display, bool) {
	var (
		best     model.Display
		bestArea int
		found    bool
	)
	for _, d := range displays {
		area := intersectionArea(w, d.VisibleRect())
		if !found || area > bestArea {
			best, bestArea, found = d, area, true
		}
	}
	return best, found
}

func intersectionArea(a, b model.Rect) int {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}
