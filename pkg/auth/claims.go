package auth

import "github.com/golang-jwt/jwt/v5"

// Role ids mirror the content API's users-permissions role table; 3 is the
// laboratory back-office role the dashboard serves.
const (
	RoleIDLaboratory int64 = 3
)

// AccessTokenPayload carries the identity minted into a session token.
type AccessTokenPayload struct {
	UserID   int64
	Username string
	RoleID   int64
	JTI      string

	// ContentToken is the upstream content-API JWT, carried so write
	// operations can be performed on the user's behalf.
	ContentToken string
}

// AccessTokenClaims are the typed JWT claims for dashboard sessions.
type AccessTokenClaims struct {
	UserID       int64  `json:"uid"`
	Username     string `json:"username"`
	RoleID       int64  `json:"role_id"`
	ContentToken string `json:"content_token"`
	jwt.RegisteredClaims
}

// IsLaboratory reports whether the session belongs to a laboratory operator.
func (c *AccessTokenClaims) IsLaboratory() bool {
	return c != nil && c.RoleID == RoleIDLaboratory
}
