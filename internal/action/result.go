// SPDX-License-Identifier: MPL-2.0

package action

import "cwm/internal/model"

// Result is the uniform success envelope returned by every handler:
// an action name matching the command's MethodName and a data payload
// whose shape depends on which variant produced it. Serialization is
// stable and identical across front-ends.
type Result struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// FocusData is the Result.Data payload for a successful focus.
type FocusData struct {
	App       model.AppInfo    `json:"app"`
	MatchInfo *model.MatchInfo `json:"match_info,omitempty"`
}

// MaximizeData is the Result.Data payload for a successful maximize.
type MaximizeData struct {
	App       model.AppInfo    `json:"app"`
	MatchInfo *model.MatchInfo `json:"match_info,omitempty"`
}

// ResizeData is the Result.Data payload for a successful resize.
type ResizeData struct {
	App       model.AppInfo    `json:"app"`
	Size      Size             `json:"size"`
	MatchInfo *model.MatchInfo `json:"match_info,omitempty"`
}

// Size is a plain width/height pair, used in ResizeData and wherever
// else a computed size (rather than a full rect) needs reporting.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MoveDisplayData is the Result.Data payload for a successful
// move-to-display.
type MoveDisplayData struct {
	App       model.AppInfo    `json:"app"`
	Display   DisplayView      `json:"display"`
	MatchInfo *model.MatchInfo `json:"match_info,omitempty"`
}

// DisplayView is the basic (non-detailed) wire shape of a Display,
// shared by list, get, and move_display results.
type DisplayView struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	IsMain bool   `json:"is_main"`
}

// DetailedDisplayView extends DisplayView with the fields `list
// displays --detailed` adds.
type DetailedDisplayView struct {
	DisplayView
	X            int    `json:"x"`
	Y            int    `json:"y"`
	IsBuiltin    bool   `json:"is_builtin"`
	DisplayID    uint32 `json:"display_id"`
	VendorID     uint32 `json:"vendor_id,omitempty"`
	ModelID      uint32 `json:"model_id,omitempty"`
	SerialNumber uint32 `json:"serial_number,omitempty"`
	UnitNumber   uint32 `json:"unit_number"`
	UniqueID     string `json:"unique_id"`
}

// NewDisplayView builds the basic wire view of a Display.
func NewDisplayView(d model.Display) DisplayView {
	return DisplayView{Index: d.Index, Name: d.Name, Width: d.Width, Height: d.Height, IsMain: d.IsMain}
}

// NewDetailedDisplayView builds the detailed wire view of a Display.
func NewDetailedDisplayView(d model.Display) DetailedDisplayView {
	return DetailedDisplayView{
		DisplayView:  NewDisplayView(d),
		X:            d.X,
		Y:            d.Y,
		IsBuiltin:    d.IsBuiltin,
		DisplayID:    d.DisplayID,
		VendorID:     d.VendorID,
		ModelID:      d.ModelID,
		SerialNumber: d.SerialNumber,
		UnitNumber:   d.UnitNumber,
		UniqueID:     d.UniqueID(),
	}
}

// ListAppItem is one element of a `list apps` result.
type ListAppItem struct {
	Name     string   `json:"name"`
	PID      int      `json:"pid"`
	BundleID string   `json:"bundle_id,omitempty"`
	Titles   []string `json:"titles,omitempty"`
}

// ListAliasItem is one element of a `list aliases` result.
type ListAliasItem struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Resolved        bool     `json:"resolved"`
	DisplayIndex    *int     `json:"display_index,omitempty"`
	DisplayName     string   `json:"display_name,omitempty"`
	DisplayUniqueID string   `json:"display_unique_id,omitempty"`
	Description     string   `json:"description,omitempty"`
	MappedIDs       []string `json:"mapped_ids,omitempty"`
}

// ListData is the Result.Data payload for a successful list.
type ListData struct {
	Items []any `json:"items"`
}

// GetData is the Result.Data payload for a successful get.
type GetData struct {
	App     model.AppInfo `json:"app"`
	Window  model.Window  `json:"window"`
	Display DisplayView   `json:"display"`
}

// LaunchedData is returned instead of the usual payload when a handler
// had to launch the app rather than act on an existing window; the
// front-end decides whether to retry.
type LaunchedData struct {
	App     string `json:"app"`
	Message string `json:"message"`
}

// SimpleData wraps an arbitrary JSON value for commands (ping, status,
// version, check_permissions, and the external-collaborator commands)
// whose result shape is just "whatever that handler returns".
type SimpleData struct {
	Result any `json:"result"`
}
