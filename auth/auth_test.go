package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong password", hash)
	req.NoError(err)
	req.False(match)
}

func TestCompare_Malformed_Hash(t *testing.T) {
	req := require.New(t)
	for _, hash := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$AA$AA", "$argon2id$v=19$m=x$AA$AA"} {
		_, err := ComparePassword("pw", hash)
		req.Error(err, hash)
	}
}

func TestToken_Round_Trip(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate("root", []string{RoleAdmin})
	req.NoError(err)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("root", claims.Username)
	req.True(claims.HasRole(RoleAdmin))
}

func TestToken_Rejects_Other_Secret_And_Expired(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Generate("root", []string{RoleAdmin})
	req.NoError(err)

	_, err = NewTokenIssuer("other-secret", time.Hour).Validate(token)
	req.Error(err)

	expired := NewTokenIssuer("test-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Generate("root", []string{RoleAdmin})
	req.NoError(err)
	_, err = issuer.Validate(old)
	req.Error(err)
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"Valid request", LoginRequest{"admin", "secret"}, false},
		{"Missing username", LoginRequest{"", "secret"}, true},
		{"Missing password", LoginRequest{"admin", ""}, true},
		{"Username too long", LoginRequest{strings.Repeat("a", 257), "secret"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.req)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	req := require.New(t)
	req.NoError(ValidateEmail("john.doe@example.com"))
	req.Error(ValidateEmail(""))
	req.Error(ValidateEmail("notanemail"))
}

func TestLoadCredential(t *testing.T) {
	req := require.New(t)
	hash, err := HashPassword("pw")
	req.NoError(err)

	credential, err := LoadCredential(SourceEnv, "admin", hash, "")
	req.NoError(err)
	req.Equal("admin", credential.Username)

	path := filepath.Join(t.TempDir(), "admin.json")
	req.NoError(os.WriteFile(path, []byte(`{"username":"boss","passwordHash":"`+hash+`"}`), 0o600))
	credential, err = LoadCredential(SourceFile, "", "", path)
	req.NoError(err)
	req.Equal("boss", credential.Username)

	_, err = LoadCredential(SourceEnv, "admin", "plaintext", "")
	req.Error(err)
	_, err = LoadCredential(SourceEnv, "", hash, "")
	req.Error(err)
	_, err = LoadCredential("vault", "admin", hash, "")
	req.Error(err)
	_, err = LoadCredential(SourceFile, "", "", filepath.Join(t.TempDir(), "missing.json"))
	req.Error(err)
}

func TestAuthenticate_Attaches_Claims(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Generate("root", []string{RoleAdmin})
	req.NoError(err)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	var seen *Claims
	handler := Authenticate(issuer, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	req.NotNil(seen)
	req.Equal("root", seen.Username)

	seen = nil
	r = httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	handler.ServeHTTP(httptest.NewRecorder(), r)
	req.Nil(seen)
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
