package config

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	MailTransportResend = "resend"
	MailTransportSMTP   = "smtp"
)

// Config is resolved once at startup and handed to constructors by value.
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR, default=:8080"`
	DatabaseURL string `env:"DATABASE_URL, required"`

	// TrustedProxies lists CIDR ranges whose X-Forwarded-For is believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	JWTSecret      string        `env:"JWT_SECRET, required"`
	JWTIssuer      string        `env:"JWT_ISSUER, default=personal-website-backend"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=1h"`
	RevocationTTL  time.Duration `env:"REVOCATION_TTL, default=1h"`

	Admin AdminConfig
	Mail  MailConfig

	BasicAuthEnabled bool `env:"BASIC_AUTH_ENABLED, default=true"`

	VerifyBaseURL        string        `env:"VERIFY_BASE_URL, required"`
	VerificationTokenTTL time.Duration `env:"VERIFICATION_TOKEN_TTL, default=5m"`
	ApprovalWindow       time.Duration `env:"APPROVAL_WINDOW, default=168h"`

	SweepInterval        time.Duration `env:"SWEEP_INTERVAL, default=1m"`
	SecurityLogRetention time.Duration `env:"SECURITY_LOG_RETENTION, default=2160h"`
}

type AdminConfig struct {
	Username     string `env:"ADMIN_USERNAME, required"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH, required"`
	TOTPSecret   string `env:"ADMIN_TOTP_SECRET"`
	Email        string `env:"ADMIN_EMAIL, required"`
}

type MailConfig struct {
	Transport    string        `env:"MAIL_TRANSPORT, default=resend"`
	From         string        `env:"MAIL_FROM, required"`
	FromName     string        `env:"MAIL_FROM_NAME"`
	Timeout      time.Duration `env:"MAIL_TIMEOUT, default=10s"`
	ResendAPIKey string        `env:"RESEND_API_KEY"`
	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT, default=587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPTLS      bool          `env:"SMTP_TLS, default=true"`
}

var (
	ErrUnknownMailTransport = errors.New("unknown mail transport")
	ErrMissingResendKey     = errors.New("RESEND_API_KEY is required for the resend transport")
	ErrMissingSMTPHost      = errors.New("SMTP_HOST is required for the smtp transport")
)

// Load reads an optional .env file and decodes the process environment.
func Load(ctx context.Context) (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom decodes configuration from the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, err
	}
	if err := cfg.Mail.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (m MailConfig) validate() error {
	switch m.Transport {
	case MailTransportResend:
		if m.ResendAPIKey == "" {
			return ErrMissingResendKey
		}
	case MailTransportSMTP:
		if m.SMTPHost == "" {
			return ErrMissingSMTPHost
		}
	default:
		return ErrUnknownMailTransport
	}
	return nil
}
