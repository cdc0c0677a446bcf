package user

import (
	"sort"
	"strings"
)

// Role names are case-sensitive.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

func RoleFromString(value string) (Role, bool) {
	switch Role(value) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

// ParseRoles splits a comma-separated list, dropping blanks, duplicates and unknown roles.
// The result is sorted so equal sets compare equal.
func ParseRoles(roles string) []Role {
	seen := make(map[Role]struct{})
	out := make([]Role, 0)
	for _, part := range strings.Split(roles, ",") {
		role, ok := RoleFromString(strings.TrimSpace(part))
		if !ok {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UnknownRoles returns the non-blank entries of roles that are not valid role names.
func UnknownRoles(roles string) []string {
	var unknown []string
	for _, part := range strings.Split(roles, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := RoleFromString(part); !ok {
			unknown = append(unknown, part)
		}
	}
	return unknown
}

func JoinRoles(roles []Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

// HasAnyRole reports whether the comma-separated claim list carries one of the wanted roles.
func HasAnyRole(claimRoles string, wanted ...Role) bool {
	for _, have := range ParseRoles(claimRoles) {
		for _, w := range wanted {
			if have == w {
				return true
			}
		}
	}
	return false
}
