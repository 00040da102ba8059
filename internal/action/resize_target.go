// SPDX-License-Identifier: MPL-2.0

package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// resizeDimsPattern matches the pixel/point "WxH" or single-dimension
// "Wpx"/"Wpt" forms; it captures width, an optional "x"-separated
// height, and an optional unit suffix.
var resizeDimsPattern = regexp.MustCompile(`^(\d+)(?:x(\d+))?(px|pt)?$`)

// ParseResizeTarget parses the `--to` flag / JSON-RPC resize.to
// parameter grammar (spec §4.4 "Resize specifics"): a percent (integer
// 1-100 with an explicit "%", a decimal 0.0-1.0, or the keyword "full"),
// a pixel size ("WxH" or "Wpx"), or a point size ("WxHpt" or "Wpt").
// Bare "WxH" with no unit suffix defaults to pixels.
func ParseResizeTarget(s string) (ResizeTarget, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ResizeTarget{}, fmt.Errorf("resize target must not be empty")
	}

	if strings.EqualFold(trimmed, "full") {
		return ResizeTarget{Unit: ResizeUnitPercent, Percent: 100}, nil
	}

	if pct, ok := strings.CutSuffix(trimmed, "%"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(pct))
		if err != nil {
			return ResizeTarget{}, fmt.Errorf("invalid resize percent %q: %w", s, err)
		}
		return validatePercent(n, s)
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && strings.Contains(trimmed, ".") {
		return validatePercent(int(f*100+0.5), s)
	}

	m := resizeDimsPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ResizeTarget{}, fmt.Errorf("invalid resize target %q: expected a percent, \"WxH\", \"Wpx\", or \"Wpt\"", s)
	}

	width, err := strconv.Atoi(m[1])
	if err != nil || width <= 0 {
		return ResizeTarget{}, fmt.Errorf("invalid resize width in %q", s)
	}
	height := 0
	if m[2] != "" {
		height, err = strconv.Atoi(m[2])
		if err != nil || height <= 0 {
			return ResizeTarget{}, fmt.Errorf("invalid resize height in %q", s)
		}
	}

	unit := ResizeUnitPixel
	if m[3] == "pt" {
		unit = ResizeUnitPoint
	}
	return ResizeTarget{Unit: unit, Width: width, Height: height}, nil
}

func validatePercent(n int, original string) (ResizeTarget, error) {
	if n < 1 || n > 100 {
		return ResizeTarget{}, fmt.Errorf("resize percent %q out of range 1-100", original)
	}
	return ResizeTarget{Unit: ResizeUnitPercent, Percent: n}, nil
}
