// SPDX-License-Identifier: MPL-2.0

package display

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Reserved system alias names. Users may not redefine these.
const (
	AliasBuiltin   = "builtin"
	AliasExternal  = "external"
	AliasMain      = "main"
	AliasSecondary = "secondary"
)

// ErrReservedAliasName is returned by ValidateAliasName when the given
// name collides with a reserved system alias.
var ErrReservedAliasName = errors.New("alias name is reserved")

// ErrInvalidAliasName is returned by ValidateAliasName for empty names
// or names containing whitespace.
var ErrInvalidAliasName = errors.New("alias name is invalid")

func isReservedAliasName(name string) bool {
	switch strings.ToLower(name) {
	case AliasBuiltin, AliasExternal, AliasMain, AliasSecondary:
		return true
	default:
		return false
	}
}

// ValidateAliasName enforces the alias naming rule: non-empty, no
// whitespace, and not a reserved system alias.
func ValidateAliasName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidAliasName)
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: must not contain whitespace", ErrInvalidAliasName)
		}
	}
	if isReservedAliasName(name) {
		return fmt.Errorf("%w: %q is a reserved system alias", ErrReservedAliasName, name)
	}
	return nil
}

// Alias is a user-defined display alias: a name mapped to an ordered
// list of stable unique display ids. The first id in the list that is
// currently connected wins.
type Alias struct {
	Name      string
	UniqueIDs []string
	// Description is an optional human-readable note shown by `list
	// aliases --detailed`.
	Description string
}
