package domain

import (
	"testing"

	"support-chat/errors"

	"github.com/stretchr/testify/require"
)

func TestToKey_Replaces_Dots_After_Normalizing(t *testing.T) {
	req := require.New(t)

	key, err := ToKey("  Alice.Smith@Example.COM ")

	req.NoError(err)
	req.Equal("alice,smith@example,com", key)
}

func TestToKey_Rejects_Blank_Email(t *testing.T) {
	for _, email := range []string{"", "   "} {
		_, err := ToKey(email)
		require.ErrorIs(t, err, errors.ErrInvalidInput)
	}
}

func TestFromKey_Round_Trips_Normalized_Email(t *testing.T) {
	req := require.New(t)
	emails := []string{
		"a@b.com",
		"First.Last@Sub.Domain.org",
		" spaced@example.io ",
		"no-dots@localhost",
	}

	for _, email := range emails {
		key, err := ToKey(email)
		req.NoError(err)
		req.Equal(NormalizeEmail(email), FromKey(key))
	}
}

func TestFromKey_Is_Pure(t *testing.T) {
	req := require.New(t)

	first := FromKey("a@b,com")
	second := FromKey("a@b,com")

	req.Equal("a@b.com", first)
	req.Equal(first, second)
	req.Equal("", FromKey(""))
}

func TestValidateUserKey(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateUserKey("a@b,com"))
	req.ErrorIs(ValidateUserKey(""), errors.ErrInvalidUserKey)
	req.ErrorIs(ValidateUserKey("  "), errors.ErrInvalidUserKey)
	req.ErrorIs(ValidateUserKey("a/b"), errors.ErrInvalidUserKey)
}
