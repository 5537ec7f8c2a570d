package unitmenu

import (
	"fmt"
	"strings"
)

// Scope identifies which service manager instance a session talks to
type Scope int

const (
	// ScopeSystem targets the system-wide service manager
	ScopeSystem Scope = iota
	// ScopeUser targets the calling user's service manager
	ScopeUser
)

// Scope display names offered by the scope picker
const (
	scopeSystemStr = "System"
	scopeUserStr   = "User"
)

// UserFlag is appended to every management command that targets the user
// manager. System-scoped commands never carry it.
const UserFlag = "--user"

// String returns the display name of the scope
func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return scopeUserStr
	default:
		return scopeSystemStr
	}
}

// ScopeOptions returns the scope display names in picker order.
func ScopeOptions() []string {
	return []string{scopeSystemStr, scopeUserStr}
}

// ParseScope resolves a picker selection to a Scope. Matching is
// case-insensitive and ignores surrounding whitespace; anything outside the
// two known scopes fails with ErrUnknownScope.
func ParseScope(selection string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(selection)) {
	case "system":
		return ScopeSystem, nil
	case "user":
		return ScopeUser, nil
	default:
		return ScopeSystem, fmt.Errorf("%w: %q", ErrUnknownScope, selection)
	}
}
