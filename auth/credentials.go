package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	SourceEnv  = "env"
	SourceFile = "file"
)

// Credential is the single configured admin account.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

func (c Credential) validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("admin username is empty")
	}
	if !strings.HasPrefix(c.PasswordHash, "$argon2id$") {
		return fmt.Errorf("admin password hash is not an argon2id hash")
	}
	return nil
}

// LoadCredential resolves the admin credential from the configured source.
// For SourceEnv the username and hash are taken as given, for SourceFile
// path must point to a JSON document {"username": ..., "passwordHash": ...}.
func LoadCredential(source, username, passwordHash, path string) (Credential, error) {
	var credential Credential
	switch source {
	case SourceEnv:
		credential = Credential{Username: username, PasswordHash: passwordHash}
	case SourceFile:
		data, err := os.ReadFile(path)
		if err != nil {
			return Credential{}, fmt.Errorf("read credentials file: %w", err)
		}
		if err = json.Unmarshal(data, &credential); err != nil {
			return Credential{}, fmt.Errorf("decode credentials file: %w", err)
		}
	default:
		return Credential{}, fmt.Errorf("unknown credential source %q", source)
	}
	if err := credential.validate(); err != nil {
		return Credential{}, err
	}
	return credential, nil
}
