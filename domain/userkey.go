package domain

import (
	"fmt"
	"strings"

	"support-chat/errors"
)

const (
	// AdminRoom is the reserved room every admin dashboard joins.
	AdminRoom = "admins"

	// PathSeparator is reserved by the store's path syntax and never allowed in a key.
	PathSeparator = "/"

	emailDot     = "."
	keySeparator = ","
)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToKey maps an email to a storage-safe user key.
// Two emails differing only by '.' versus ',' collide; that ambiguity is accepted.
func ToKey(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", fmt.Errorf("%w: email is required", errors.ErrInvalidInput)
	}
	return strings.ReplaceAll(normalized, emailDot, keySeparator), nil
}

// FromKey is the inverse of ToKey. It is total: no check that the result is an email.
func FromKey(key string) string {
	return strings.ReplaceAll(key, keySeparator, emailDot)
}

// ValidateUserKey rejects blank keys and keys that would escape their store path.
func ValidateUserKey(userKey string) error {
	if strings.TrimSpace(userKey) == "" {
		return errors.ErrInvalidUserKey
	}
	if strings.Contains(userKey, PathSeparator) {
		return fmt.Errorf("%w: %q contains %q", errors.ErrInvalidUserKey, userKey, PathSeparator)
	}
	return nil
}
