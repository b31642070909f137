package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/config"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "postgres://localhost/site",
		"JWT_SECRET":          "secret",
		"ADMIN_USERNAME":      "admin",
		"ADMIN_PASSWORD_HASH": "bcrypt-hash",
		"ADMIN_EMAIL":         "admin@example.com",
		"VERIFY_BASE_URL":     "https://api.example.com",
		"MAIL_FROM":           "noreply@example.com",
		"RESEND_API_KEY":      "re_test",
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(baseEnv()))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.RevocationTTL)
	assert.Equal(t, 5*time.Minute, cfg.VerificationTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.ApprovalWindow)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.BasicAuthEnabled)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Empty(t, cfg.Admin.TOTPSecret)
	assert.Equal(t, config.MailTransportResend, cfg.Mail.Transport)
	assert.Equal(t, 10*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadFrom_Overrides(t *testing.T) {
	env := baseEnv()
	env["HTTP_ADDR"] = ":9000"
	env["BASIC_AUTH_ENABLED"] = "false"
	env["VERIFICATION_TOKEN_TTL"] = "10m"
	env["MAIL_TRANSPORT"] = "smtp"
	env["SMTP_HOST"] = "smtp.example.com"
	env["SMTP_PORT"] = "465"
	env["TRUSTED_PROXIES"] = "10.0.0.0/8,172.16.0.0/12"

	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(env))

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.False(t, cfg.BasicAuthEnabled)
	assert.Equal(t, 10*time.Minute, cfg.VerificationTokenTTL)
	assert.Equal(t, "smtp.example.com", cfg.Mail.SMTPHost)
	assert.Equal(t, 465, cfg.Mail.SMTPPort)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, cfg.TrustedProxies)
}

func TestLoadFrom_RequiredMissing(t *testing.T) {
	env := baseEnv()
	delete(env, "JWT_SECRET")

	_, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(env))

	assert.Error(t, err)
}

func TestLoadFrom_MailTransportChecks(t *testing.T) {
	env := baseEnv()
	delete(env, "RESEND_API_KEY")
	_, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(env))
	assert.ErrorIs(t, err, config.ErrMissingResendKey)

	env["MAIL_TRANSPORT"] = "smtp"
	_, err = config.LoadFrom(context.Background(), envconfig.MapLookuper(env))
	assert.ErrorIs(t, err, config.ErrMissingSMTPHost)

	env["MAIL_TRANSPORT"] = "carrier-pigeon"
	_, err = config.LoadFrom(context.Background(), envconfig.MapLookuper(env))
	assert.ErrorIs(t, err, config.ErrUnknownMailTransport)
}
