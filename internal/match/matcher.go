// SPDX-License-Identifier: MPL-2.0

package match

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"cwm/internal/model"
)

// Find resolves query against apps in priority order: name exact, name
// prefix, name regex, name fuzzy, then the same four steps again against
// every window title of every app. The first hit wins; ties within a
// step are broken by input-list position. A zero Match, false return means no
// step produced a match — callers turn that into an app-not-found error
// with Suggest's candidates, not an error from Find itself.
func Find(query string, apps []model.AppInfo, threshold int) (model.Match, bool) {
	if m, ok := matchNames(query, apps, threshold); ok {
		return m, true
	}
	return matchTitles(query, apps, threshold)
}

func matchNames(query string, apps []model.AppInfo, threshold int) (model.Match, bool) {
	if m, ok := exactName(query, apps); ok {
		return m, true
	}
	if m, ok := prefixName(query, apps); ok {
		return m, true
	}
	if re, ok := parseRegex(query); ok {
		if m, ok := regexName(re, apps); ok {
			return m, true
		}
	}
	return fuzzyName(query, apps, threshold)
}

func matchTitles(query string, apps []model.AppInfo, threshold int) (model.Match, bool) {
	if m, ok := exactTitle(query, apps); ok {
		return m, true
	}
	if m, ok := prefixTitle(query, apps); ok {
		return m, true
	}
	if re, ok := parseRegex(query); ok {
		if m, ok := regexTitle(re, apps); ok {
			return m, true
		}
	}
	return fuzzyTitle(query, apps, threshold)
}

func exactName(query string, apps []model.AppInfo) (model.Match, bool) {
	for _, app := range apps {
		if strings.EqualFold(app.Name, query) {
			return newMatch(app, model.MatchExact, query, nil), true
		}
	}
	return model.Match{}, false
}

func prefixName(query string, apps []model.AppInfo) (model.Match, bool) {
	lq := strings.ToLower(query)
	for _, app := range apps {
		if strings.HasPrefix(strings.ToLower(app.Name), lq) {
			return newMatch(app, model.MatchPrefix, query, nil), true
		}
	}
	return model.Match{}, false
}

func regexName(re *regexp.Regexp, apps []model.AppInfo) (model.Match, bool) {
	for _, app := range apps {
		if re.MatchString(app.Name) {
			return newMatch(app, model.MatchRegex, re.String(), nil), true
		}
	}
	return model.Match{}, false
}

func fuzzyName(query string, apps []model.AppInfo, threshold int) (model.Match, bool) {
	best := -1
	bestIdx := -1
	lq := strings.ToLower(query)
	for i, app := range apps {
		d := levenshtein.Distance(lq, strings.ToLower(app.Name), nil)
		if d > threshold {
			continue
		}
		if best == -1 || d < best {
			best = d
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return model.Match{}, false
	}
	return newMatch(apps[bestIdx], model.MatchFuzzy, query, model.FuzzyDistance(best)), true
}

func exactTitle(query string, apps []model.AppInfo) (model.Match, bool) {
	for _, app := range apps {
		for _, title := range app.Titles {
			if strings.EqualFold(title, query) {
				return newMatch(app, model.MatchTitleExact, query, nil), true
			}
		}
	}
	return model.Match{}, false
}

func prefixTitle(query string, apps []model.AppInfo) (model.Match, bool) {
	lq := strings.ToLower(query)
	for _, app := range apps {
		for _, title := range app.Titles {
			if strings.HasPrefix(strings.ToLower(title), lq) {
				return newMatch(app, model.MatchTitlePrefix, query, nil), true
			}
		}
	}
	return model.Match{}, false
}

func regexTitle(re *regexp.Regexp, apps []model.AppInfo) (model.Match, bool) {
	for _, app := range apps {
		for _, title := range app.Titles {
			if re.MatchString(title) {
				return newMatch(app, model.MatchTitleRegex, re.String(), nil), true
			}
		}
	}
	return model.Match{}, false
}

func fuzzyTitle(query string, apps []model.AppInfo, threshold int) (model.Match, bool) {
	best := -1
	var bestApp model.AppInfo
	lq := strings.ToLower(query)
	for _, app := range apps {
		for _, title := range app.Titles {
			d := levenshtein.Distance(lq, strings.ToLower(title), nil)
			if d > threshold {
				continue
			}
			if best == -1 || d < best {
				best = d
				bestApp = app
			}
		}
	}
	if best == -1 {
		return model.Match{}, false
	}
	return newMatch(bestApp, model.MatchTitleFuzzy, query, model.FuzzyDistance(best)), true
}

// parseRegex recognizes the /pattern/ and /pattern/i query forms. Any
// other query, or an invalid pattern, yields ok=false — an unparseable
// regex is a reason to fall through to fuzzy matching, not an error.
func parseRegex(query string) (*regexp.Regexp, bool) {
	if len(query) < 2 || query[0] != '/' {
		return nil, false
	}
	body := query[1:]
	caseInsensitive := false
	if strings.HasSuffix(body, "/i") {
		body = strings.TrimSuffix(body, "/i")
		caseInsensitive = true
	} else if strings.HasSuffix(body, "/") {
		body = strings.TrimSuffix(body, "/")
	} else {
		return nil, false
	}
	if caseInsensitive {
		body = "(?i)" + body
	}
	re, err := regexp.Compile(body)
	if err != nil {
		return nil, false
	}
	return re, true
}

func newMatch(app model.AppInfo, cat model.MatchCategory, query string, distance *int) model.Match {
	return model.Match{
		App: app,
		Info: model.MatchInfo{
			Category: cat,
			Query:    query,
			Distance: distance,
		},
	}
}
