package models

// Coarse roles supplied by the identity provider as a JWT claim.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// IsPrivileged reports whether the role may see the full leaderboard and
// manage reviews. The check always runs server-side against the verified
// token claim, never a client-supplied value.
func IsPrivileged(role string) bool {
	return role == RoleAdmin || role == RoleInstructor
}
