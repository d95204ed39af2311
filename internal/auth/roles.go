package auth

import "regexp"

// Role tokens follow the ROLE_ naming convention, e.g. ROLE_USER,
// ROLE_ADMIN.
var rolePattern = regexp.MustCompile(`^ROLE_[A-Z0-9_]+$`)

func IsValidRole(role string) bool {
	return rolePattern.MatchString(role)
}

// Granted reports whether the required role is a member of the
// caller's role set. There is no hierarchy: holding ROLE_ADMIN does
// not imply anything else.
func Granted(roleSet []string, required string) bool {
	for _, r := range roleSet {
		if r == required {
			return true
		}
	}
	return false
}
