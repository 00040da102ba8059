// SPDX-License-Identifier: MPL-2.0

package model

import "fmt"

// Display is a physical monitor. Index is stable for the duration of a
// process but not across reconnects; UniqueID (see Display.UniqueID) is
// the only identifier safe to persist in config.
type Display struct {
	Index     int
	Name      string
	Width     int
	Height    int
	X, Y      int
	IsMain    bool
	IsBuiltin bool

	// DisplayID is the raw OS display identifier, used only as a last-
	// resort fallback when VendorID and ModelID are both zero.
	DisplayID uint32
	// VendorID and ModelID identify the physical panel manufacturer and
	// model. Zero means unknown.
	VendorID uint32
	ModelID  uint32
	// SerialNumber is the panel's EDID serial number, when the panel
	// reports one. Zero means absent.
	SerialNumber uint32
	// UnitNumber disambiguates multiple identical panels (same vendor,
	// model, and absent serial) connected at once; it counts from 0 in
	// discovery order.
	UnitNumber uint32
}

// VisibleRect returns the display's usable rectangle, excluding the menu
// bar and dock. The accessibility backend is responsible for reporting
// Width/Height/X/Y already net of those reservations; VisibleRect exists
// so callers never need to reach past the Display type for this value.
func (d Display) VisibleRect() Rect {
	return Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
}

// UniqueID derives a stable identifier that survives display reconnects
// and macOS display-id churn:
//
//   - vendor+model+serial, when a serial number is reported;
//   - vendor+model+unit number, when vendor and model are known but the
//     panel reports no serial (or to disambiguate identical panels);
//   - a display-id-based token, when vendor and model are both unknown.
func (d Display) UniqueID() string {
	if d.VendorID == 0 && d.ModelID == 0 {
		return fmt.Sprintf("displayid_%x", d.DisplayID)
	}
	if d.SerialNumber != 0 {
		return fmt.Sprintf("%04x_%04x_%x", d.VendorID, d.ModelID, d.SerialNumber)
	}
	return fmt.Sprintf("%04x_%04x_unit%d", d.VendorID, d.ModelID, d.UnitNumber)
}

// ScaleInto computes the proportional position and size a rect retains
// when moved from one display's visible rect to another: relative
// position is preserved and size is scaled by the ratio of visible
// rects. Used by MoveDisplay.
func ScaleInto(r Rect, from, to Rect) Rect {
	if from.Width == 0 || from.Height == 0 {
		return Rect{X: to.X, Y: to.Y, Width: r.Width, Height: r.Height}
	}
	relX := float64(r.X-from.X) / float64(from.Width)
	relY := float64(r.Y-from.Y) / float64(from.Height)
	scaleW := float64(to.Width) / float64(from.Width)
	scaleH := float64(to.Height) / float64(from.Height)

	return Rect{
		X:      to.X + round(relX*float64(to.Width)),
		Y:      to.Y + round(relY*float64(to.Height)),
		Width:  round(float64(r.Width) * scaleW),
		Height: round(float64(r.Height) * scaleH),
	}
}

func round(f float64) int {
	if f < 0 {
		return -round(-f)
	}
	return int(f + 0.5)
}
