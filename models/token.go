package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of an access token.
//
// It lives in models because services, middleware and handlers all read
// it, and models is the one package none of them create a cycle with.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
