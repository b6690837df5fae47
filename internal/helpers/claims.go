package helpers

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the payload of an admin session token. Subject holds the
// admin id.
type AdminClaims struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (ac *AdminClaims) AdminID() string {
	return ac.Subject
}
