// SPDX-License-Identifier: MPL-2.0

package match

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"cwm/internal/model"
)

const maxSuggestions = 5

// Suggest ranks every app's name by ascending Levenshtein distance to
// query and returns up to five names for an app-not-found error's
// Suggestions field (spec §4.1/§7). Ties keep input-list order.
func Suggest(query string, apps []model.AppInfo) []string {
	lq := strings.ToLower(query)

	type scored struct {
		name string
		dist int
		idx  int
	}
	candidates := make([]scored, len(apps))
	for i, app := range apps {
		candidates[i] = scored{
			name: app.Name,
			dist: levenshtein.Distance(lq, strings.ToLower(app.Name), nil),
			idx:  i,
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].idx < candidates[j].idx
	})

	n := maxSuggestions
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[i].name
	}
	return out
}
