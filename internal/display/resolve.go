// SPDX-License-Identifier: MPL-2.0

package display

import (
	"errors"
	"fmt"

	"cwm/internal/model"
)

// ErrNotFound is the sentinel wrapped by every resolution failure.
// Alias resolution is total: an unknown alias always yields ErrNotFound,
// never a fallback display.
var ErrNotFound = errors.New("display not found")

// Resolve turns a Target into one of the live displays. currentIndex is
// the 0-based index of the display a next/prev target is relative to
// (typically the window's current display); it is ignored for other
// target kinds.
func Resolve(target Target, displays []model.Display, currentIndex int, aliases map[string]Alias) (model.Display, error) {
	if len(displays) == 0 {
		return model.Display{}, fmt.Errorf("%w: no displays available", ErrNotFound)
	}

	switch target.Kind {
	case TargetNext:
		return displays[cycle(currentIndex+1, len(displays))], nil
	case TargetPrev:
		return displays[cycle(currentIndex-1, len(displays))], nil
	case TargetIndex:
		if target.Index < 1 || target.Index > len(displays) {
			return model.Display{}, fmt.Errorf("%w: index %d out of range [1, %d]", ErrNotFound, target.Index, len(displays))
		}
		return displays[target.Index-1], nil
	case TargetAlias:
		return resolveAlias(target.Alias, displays, aliases)
	default:
		return model.Display{}, fmt.Errorf("%w: unrecognized target", ErrNotFound)
	}
}

func cycle(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func resolveAlias(name string, displays []model.Display, aliases map[string]Alias) (model.Display, error) {
	switch name {
	case AliasBuiltin:
		for _, d := range displays {
			if d.IsBuiltin {
				return d, nil
			}
		}
		return model.Display{}, fmt.Errorf("%w: no builtin display", ErrNotFound)
	case AliasExternal:
		if d, ok := lowestIndexMatch(displays, func(d model.Display) bool { return !d.IsBuiltin }); ok {
			return d, nil
		}
		return model.Display{}, fmt.Errorf("%w: no external display", ErrNotFound)
	case AliasMain:
		for _, d := range displays {
			if d.IsMain {
				return d, nil
			}
		}
		return model.Display{}, fmt.Errorf("%w: no main display", ErrNotFound)
	case AliasSecondary:
		if d, ok := lowestIndexMatch(displays, func(d model.Display) bool { return !d.IsMain }); ok {
			return d, nil
		}
		return model.Display{}, fmt.Errorf("%w: no secondary display", ErrNotFound)
	}

	a, ok := aliases[name]
	if !ok {
		return model.Display{}, fmt.Errorf("%w: alias %q is not defined", ErrNotFound, name)
	}
	for _, id := range a.UniqueIDs {
		for _, d := range displays {
			if d.UniqueID() == id {
				return d, nil
			}
		}
	}
	return model.Display{}, fmt.Errorf("%w: no display connected for alias %q", ErrNotFound, name)
}

func lowestIndexMatch(displays []model.Display, pred func(model.Display) bool) (model.Display, bool) {
	var (
		best  model.Display
		found bool
	)
	for _, d := range displays {
		if !pred(d) {
			continue
		}
		if !found || d.Index < best.Index {
			best = d
			found = true
		}
	}
	return best, found
}
