package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/metrics"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"
	"github.com/MinhMaxx/personal-website-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

// AdminService owns the single admin identity: login, logout and the
// revocation lookups the bearer guard relies on.
type AdminService struct {
	revoked      repository.RevokedTokenRepository
	securityLogs repository.SecurityLogRepository

	passwordHash PasswordHasher
	tokens       AdminTokenIssuer
	secondFactor SecondFactorVerifier
	validate     *validator.Validate
	clock        Clock
	logger       logrus.FieldLogger
	config       AdminConfig
}

// NewAdminService wires the admin flows. secondFactor may be nil, in which
// case login needs only username and password.
func NewAdminService(
	revoked repository.RevokedTokenRepository,
	securityLogs repository.SecurityLogRepository,
	passwordHash PasswordHasher,
	tokens AdminTokenIssuer,
	secondFactor SecondFactorVerifier,
	validate *validator.Validate,
	clock Clock,
	logger logrus.FieldLogger,
	config AdminConfig,
) *AdminService {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AdminService{
		revoked:      revoked,
		securityLogs: securityLogs,
		passwordHash: passwordHash,
		tokens:       tokens,
		secondFactor: secondFactor,
		validate:     validate,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

func (s *AdminService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Code = strings.TrimSpace(input.Code)
	if err := validateStruct(s.validate, input); err != nil {
		metrics.AdminLogins.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	now := s.clock.Now()
	if !s.checkCredentials(input.Username, input.Password) {
		return nil, s.rejectLogin(ctx, now, input, "credentials")
	}
	if s.secondFactor != nil && !s.secondFactor.Verify(input.Code, now) {
		return nil, s.rejectLogin(ctx, now, input, "second_factor")
	}

	token, expiresIn, err := s.tokens.IssueAdminToken(s.config.Username)
	if err != nil {
		metrics.AdminLogins.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	metrics.AdminLogins.WithLabelValues(metrics.ResultOK).Inc()
	_ = logSecurity(ctx, s.securityLogs, now, input.IPAddress, entity.LoginSuccess, nil)
	return &LoginResult{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *AdminService) rejectLogin(ctx context.Context, now time.Time, input LoginInput, reason string) error {
	metrics.AdminLogins.WithLabelValues(metrics.ResultRejected).Inc()
	s.logger.WithFields(logrus.Fields{"username": input.Username, "reason": reason}).Warn("admin login rejected")
	_ = logSecurity(ctx, s.securityLogs, now, input.IPAddress, entity.LoginFailed, map[string]any{
		"username": input.Username,
		"reason":   reason,
	})
	return ErrInvalidCredentials
}

// checkCredentials always runs one bcrypt comparison so a wrong username
// costs the same as a wrong password.
func (s *AdminService) checkCredentials(username string, password string) bool {
	usernameOK := s.config.Username != "" &&
		subtle.ConstantTimeCompare([]byte(username), []byte(s.config.Username)) == 1
	if !usernameOK || s.config.PasswordHash == "" {
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		return false
	}
	return s.passwordHash.Verify(s.config.PasswordHash, password)
}

// CheckBasicCredentials backs the legacy Basic guard on the admin settings
// namespace.
func (s *AdminService) CheckBasicCredentials(username string, password string) bool {
	return s.checkCredentials(username, password)
}

// Logout blocks the token until it could no longer have been accepted
// anyway. Logging out twice is harmless.
func (s *AdminService) Logout(ctx context.Context, token string, ipAddress *string) error {
	if token == "" {
		return ErrInvalidInput
	}

	now := s.clock.Now()
	window := s.config.RevocationTTL
	if ttl := s.tokens.TTL(); ttl > window {
		window = ttl
	}

	entry := &entity.RevokedToken{
		TokenHash: utils.HashToken(token),
		DateAdded: now,
		ExpiresAt: now.Add(window),
	}
	if err := s.revoked.Revoke(ctx, entry); err != nil {
		return err
	}

	_ = logSecurity(ctx, s.securityLogs, now, ipAddress, entity.Logout, nil)
	return nil
}

func (s *AdminService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revoked.IsRevoked(ctx, utils.HashToken(token), s.clock.Now())
}

// SecurityLog lists audit entries of one action, newest first.
func (s *AdminService) SecurityLog(ctx context.Context, rawAction string) ([]entity.SecurityLog, error) {
	action, ok := entity.ParseSecurityAction(strings.TrimSpace(rawAction))
	if !ok {
		return nil, ErrInvalidInput
	}
	if s.securityLogs == nil {
		return []entity.SecurityLog{}, nil
	}
	return s.securityLogs.ListByAction(ctx, action)
}
