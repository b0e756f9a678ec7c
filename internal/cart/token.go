package cart

import (
	"regexp"

	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

const (
	tokenMinLength = 16
	tokenMaxLength = 128
)

var tokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateToken checks the client-generated cart token for shape before it is
// used as a storage key.
func ValidateToken(token string) error {
	if len(token) < tokenMinLength || len(token) > tokenMaxLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token must be between 16 and 128 characters")
	}
	if !tokenRe.MatchString(token) {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token contains invalid characters")
	}
	return nil
}
