package internal

import (
	"fmt"
	"strings"
	"time"

	"support-chat/auth"

	"github.com/samber/lo"
)

const (
	StoreBadger = "badger"
	StoreMongo  = "mongo"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=3000"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	// A directory selects Badger, a mongodb:// or mongodb+srv:// URI selects MongoDB.
	StoreEndpoint string `env:"STORE_ENDPOINT,default=data/messages"`
	StoreDatabase string `env:"STORE_DATABASE,default=support_chat"`
	InspectPort   int    `env:"INSPECT_PORT,default=0"`

	CredentialSource     string        `env:"CREDENTIAL_SOURCE,default=env"`
	AdminUsername        string        `env:"ADMIN_USERNAME"`
	AdminPasswordHash    string        `env:"ADMIN_PASSWORD_HASH"`
	AdminCredentialsFile string        `env:"ADMIN_CREDENTIALS_FILE"`
	AuthTokenSecret      string        `env:"AUTH_TOKEN_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`

	CorsOrigins string `env:"CORS_ORIGINS,default=*"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=2s"`
	WSWriteTimeout       time.Duration `env:"WS_WRITE_TIMEOUT,default=10s"`
	MaxImageBytes        int           `env:"MAX_IMAGE_BYTES,default=5242880"`
	CensoredWords        string        `env:"CENSORED_WORDS"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=5s"`
	ReportInterval  time.Duration `env:"REPORT_INTERVAL,default=1m"`
}

// Validate catches what struct tags cannot express.
func (c Config) Validate() error {
	switch c.CredentialSource {
	case auth.SourceEnv:
		if c.AdminUsername == "" || c.AdminPasswordHash == "" {
			return fmt.Errorf("CREDENTIAL_SOURCE=env needs ADMIN_USERNAME and ADMIN_PASSWORD_HASH")
		}
	case auth.SourceFile:
		if c.AdminCredentialsFile == "" {
			return fmt.Errorf("CREDENTIAL_SOURCE=file needs ADMIN_CREDENTIALS_FILE")
		}
	default:
		return fmt.Errorf("CREDENTIAL_SOURCE must be %q or %q, got %q", auth.SourceEnv, auth.SourceFile, c.CredentialSource)
	}
	if len(c.AuthTokenSecret) < 16 {
		return fmt.Errorf("AUTH_TOKEN_SECRET must be at least 16 characters")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if strings.TrimSpace(c.StoreEndpoint) == "" {
		return fmt.Errorf("STORE_ENDPOINT is empty")
	}
	if c.ConnectionBufferSize <= 0 {
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive")
	}
	for name, d := range map[string]time.Duration{
		"AUTH_TOKEN_DURATION": c.AuthTokenDuration,
		"DELIVERY_TIMEOUT":    c.DeliveryTimeout,
		"WS_WRITE_TIMEOUT":    c.WSWriteTimeout,
		"METRIC_INTERVAL":     c.MetricInterval,
		"REPORT_INTERVAL":     c.ReportInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c Config) StoreKind() string {
	if strings.HasPrefix(c.StoreEndpoint, "mongodb://") || strings.HasPrefix(c.StoreEndpoint, "mongodb+srv://") {
		return StoreMongo
	}
	return StoreBadger
}

// CorsOriginList splits CORS_ORIGINS on commas. "*" allows any origin.
func (c Config) CorsOriginList() []string {
	return splitList(c.CorsOrigins)
}

// CensoredWordList splits CENSORED_WORDS on commas. Empty disables masking.
func (c Config) CensoredWordList() []string {
	return splitList(c.CensoredWords)
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func splitList(raw string) []string {
	items := lo.Map(strings.Split(raw, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Compact(items)
}
