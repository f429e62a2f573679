package auth

import "startup-hub/backend/internal/constants"

// UserClaims is what the auth middleware hands to every guarded handler:
// a verified user identifier plus the platform role.
type UserClaims interface {
	UserID() string
	Role() string
	IsAdmin() bool
	Source() string
}

type JWTClaims struct {
	UserUUID  string
	RoleValue constants.UserRole
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) Role() string   { return string(c.RoleValue) }
func (c *JWTClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }
func (c *JWTClaims) Source() string { return "JWT" }
