package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:                 3000,
		StoreEndpoint:        "data/messages",
		CredentialSource:     "env",
		AdminUsername:        "admin",
		AdminPasswordHash:    "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		AuthTokenSecret:      "0123456789abcdef",
		AuthTokenDuration:    time.Hour,
		CorsOrigins:          "*",
		ConnectionBufferSize: 8,
		DeliveryTimeout:      time.Second,
		WSWriteTimeout:       time.Second,
		MaxImageBytes:        1024,
		MetricInterval:       time.Second,
		ReportInterval:       time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid env source", func(c *Config) {}, false},
		{"Valid file source", func(c *Config) {
			c.CredentialSource = "file"
			c.AdminUsername, c.AdminPasswordHash = "", ""
			c.AdminCredentialsFile = "/run/secrets/admin.json"
		}, false},
		{"Unknown source", func(c *Config) { c.CredentialSource = "vault" }, true},
		{"Env source without hash", func(c *Config) { c.AdminPasswordHash = "" }, true},
		{"File source without path", func(c *Config) { c.CredentialSource = "file" }, true},
		{"Short secret", func(c *Config) { c.AuthTokenSecret = "short" }, true},
		{"Bad port", func(c *Config) { c.Port = 0 }, true},
		{"Zero buffer", func(c *Config) { c.ConnectionBufferSize = 0 }, true},
		{"Zero delivery timeout", func(c *Config) { c.DeliveryTimeout = 0 }, true},
		{"Zero report interval", func(c *Config) { c.ReportInterval = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_StoreKind_And_Origins(t *testing.T) {
	req := require.New(t)
	c := validConfig()
	req.Equal(StoreBadger, c.StoreKind())

	c.StoreEndpoint = "mongodb://localhost:27017"
	req.Equal(StoreMongo, c.StoreKind())
	c.StoreEndpoint = "mongodb+srv://cluster.example.net"
	req.Equal(StoreMongo, c.StoreKind())

	c.CorsOrigins = " https://a.example , ,https://b.example"
	req.Equal([]string{"https://a.example", "https://b.example"}, c.CorsOriginList())

	req.Empty(c.CensoredWordList())
	c.CensoredWords = "scam, spam"
	req.Equal([]string{"scam", "spam"}, c.CensoredWordList())
}

func TestConfig_Defaults_From_Environment(t *testing.T) {
	req := require.New(t)
	t.Setenv("AUTH_TOKEN_SECRET", "0123456789abcdef")
	t.Setenv("PORT", "4000")

	var c Config
	_, err := env.UnmarshalFromEnviron(&c)
	req.NoError(err)
	req.Equal(4000, c.Port)
	req.Equal("env", c.CredentialSource)
	req.Equal(2*time.Second, c.DeliveryTimeout)
	req.Equal(5242880, c.MaxImageBytes)
	req.Equal(StoreBadger, c.StoreKind())
}
