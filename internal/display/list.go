// SPDX-License-Identifier: MPL-2.0

package display

import "cwm/internal/model"

// AliasType distinguishes the four reserved system aliases from
// user-defined ones in alias listings.
type AliasType string

const (
	AliasTypeSystem AliasType = "system"
	AliasTypeUser   AliasType = "user"
)

// AliasStatus is one row of `cwm list aliases`: a name, its type, and
// whether it currently resolves to a connected display.
type AliasStatus struct {
	Name     string
	Type     AliasType
	Resolved bool

	// The following are populated only when Resolved is true.
	DisplayIndex int
	DisplayName  string

	// The following are populated only for detailed listings; Description
	// and MappedIDs only ever apply to user aliases.
	DisplayUniqueID string
	Description     string
	MappedIDs       []string
}

// List enumerates the four reserved aliases, then every user alias in
// the order given, each annotated with whether it currently resolves.
func List(displays []model.Display, aliases map[string]Alias, order []string) []AliasStatus {
	statuses := make([]AliasStatus, 0, 4+len(order))
	for _, name := range []string{AliasBuiltin, AliasExternal, AliasMain, AliasSecondary} {
		statuses = append(statuses, statusFor(name, AliasTypeSystem, displays, aliases))
	}
	for _, name := range order {
		statuses = append(statuses, statusFor(name, AliasTypeUser, displays, aliases))
	}
	return statuses
}

func statusFor(name string, kind AliasType, displays []model.Display, aliases map[string]Alias) AliasStatus {
	status := AliasStatus{Name: name, Type: kind}
	if kind == AliasTypeUser {
		if a, ok := aliases[name]; ok {
			status.Description = a.Description
			status.MappedIDs = a.UniqueIDs
		}
	}

	d, err := resolveAlias(name, displays, aliases)
	if err != nil {
		return status
	}
	status.Resolved = true
	status.DisplayIndex = d.Index
	status.DisplayName = d.Name
	status.DisplayUniqueID = d.UniqueID()
	return status
}
