package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
)

// AccessTokenClaims represents the typed JWT minted by the hosted auth
// provider for back-office users. This service only verifies them.
type AccessTokenClaims struct {
	Email string          `json:"email"`
	Role  enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
