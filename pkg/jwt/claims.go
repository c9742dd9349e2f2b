package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims identify the bearer of a session token and what it may do.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RoleHost   Role = "host"
)

// CanEdit reports whether the role may mutate game state.
func (r Role) CanEdit() bool { return r == RoleHost }

// ParseRole maps a string to a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleViewer, RoleHost:
		return Role(s), true
	default:
		return "", false
	}
}
