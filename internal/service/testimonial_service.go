package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/metrics"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"
	"github.com/MinhMaxx/personal-website-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	defaultVerificationTTL = 5 * time.Minute
	defaultApprovalWindow  = 7 * 24 * time.Hour
	defaultMailTimeout     = 10 * time.Second

	// storeAttempts bounds retries after a token hash collision.
	storeAttempts = 2
)

type TestimonialService struct {
	pending      repository.PendingTestimonialRepository
	testimonials repository.TestimonialRepository
	tx           repository.TestimonialTxRunner
	securityLogs repository.SecurityLogRepository

	mailer   MailDispatcher
	validate *validator.Validate
	clock    Clock
	logger   logrus.FieldLogger
	config   TestimonialConfig
}

func NewTestimonialService(
	pending repository.PendingTestimonialRepository,
	testimonials repository.TestimonialRepository,
	tx repository.TestimonialTxRunner,
	securityLogs repository.SecurityLogRepository,
	mailer MailDispatcher,
	validate *validator.Validate,
	clock Clock,
	logger logrus.FieldLogger,
	config TestimonialConfig,
) *TestimonialService {
	if config.VerificationTTL <= 0 {
		config.VerificationTTL = defaultVerificationTTL
	}
	if config.ApprovalWindow <= 0 {
		config.ApprovalWindow = defaultApprovalWindow
	}
	if config.MailTimeout <= 0 {
		config.MailTimeout = defaultMailTimeout
	}
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TestimonialService{
		pending:      pending,
		testimonials: testimonials,
		tx:           tx,
		securityLogs: securityLogs,
		mailer:       mailer,
		validate:     validate,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

// Submit records an unverified testimonial and mails the submitter a
// one-time verification link.
func (s *TestimonialService) Submit(ctx context.Context, input SubmitTestimonialInput) error {
	input = input.normalized()
	if err := validateStruct(s.validate, input); err != nil {
		metrics.TestimonialSubmissions.WithLabelValues(metrics.ResultInvalid).Inc()
		return err
	}

	now := s.clock.Now()
	if err := s.checkEmailAvailable(ctx, input.Email, now); err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.TestimonialSubmissions.WithLabelValues(metrics.ResultConflict).Inc()
		}
		return err
	}

	if err := s.pending.DeleteExpiredByEmail(ctx, input.Email, now); err != nil {
		return err
	}

	token, err := s.storePending(ctx, input, now)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.TestimonialSubmissions.WithLabelValues(metrics.ResultConflict).Inc()
		}
		return err
	}

	link := verificationLink(s.config.VerifyBaseURL, token)
	msg := buildVerificationMessage(input.payload(), link, s.config.VerificationTTL)
	if err := s.dispatch(ctx, msg); err != nil {
		metrics.TestimonialSubmissions.WithLabelValues(metrics.ResultError).Inc()
		return err
	}

	metrics.TestimonialSubmissions.WithLabelValues(metrics.ResultOK).Inc()
	return nil
}

func (s *TestimonialService) checkEmailAvailable(ctx context.Context, email string, now time.Time) error {
	existing, err := s.testimonials.FindLiveByEmail(ctx, email, now)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrTestimonialExists
	}

	pending, err := s.pending.FindActiveByEmail(ctx, email, now)
	if err != nil {
		return err
	}
	if pending != nil {
		return ErrVerificationPending
	}
	return nil
}

// storePending inserts the registry entry and returns the raw token. Only
// the hash is persisted.
func (s *TestimonialService) storePending(ctx context.Context, input SubmitTestimonialInput, now time.Time) (string, error) {
	for attempt := 1; ; attempt++ {
		token, err := utils.NewVerificationToken()
		if err != nil {
			return "", err
		}

		entry := &entity.PendingTestimonial{
			TokenHash: token.Hash,
			Email:     input.Email,
			Payload:   datatypes.NewJSONType(input.payload()),
			ExpiresAt: now.Add(s.config.VerificationTTL),
			CreatedAt: now,
		}
		err = s.pending.Create(ctx, entry)
		if err == nil {
			return token.Raw, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return "", err
		}

		// Either a concurrent submit for the same email won, or the token
		// hash collided. Only the latter is worth another try.
		active, findErr := s.pending.FindActiveByEmail(ctx, input.Email, now)
		if findErr != nil {
			return "", findErr
		}
		if active != nil || attempt >= storeAttempts {
			return "", ErrVerificationPending
		}
	}
}

// Redeem consumes a verification token and creates the testimonial awaiting
// approval. Unknown, expired and already-used tokens are indistinguishable.
func (s *TestimonialService) Redeem(ctx context.Context, token string) (*entity.Testimonial, error) {
	if token == "" {
		metrics.TestimonialVerifications.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, ErrInvalidToken
	}

	now := s.clock.Now()
	var created *entity.Testimonial
	err := s.tx.WithinTx(ctx, func(pending repository.PendingTestimonialRepository, testimonials repository.TestimonialRepository) error {
		entry, err := pending.FindByTokenHash(ctx, utils.HashToken(token))
		if err != nil {
			return err
		}
		if entry == nil || entry.Expired(now) {
			return ErrInvalidToken
		}

		consumed, err := pending.Consume(ctx, entry.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrInvalidToken
		}

		payload := entry.Payload.Data()
		if err := testimonials.DeleteExpiredByEmail(ctx, payload.Email, now); err != nil {
			return err
		}

		expireAt := now.Add(s.config.ApprovalWindow)
		testimonial := &entity.Testimonial{
			Name:          payload.Name,
			Email:         payload.Email,
			Company:       payload.Company,
			Position:      payload.Position,
			Link:          payload.Link,
			Content:       payload.Testimonial,
			AdminApproved: false,
			ExpireAt:      &expireAt,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := testimonials.Create(ctx, testimonial); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrTestimonialExists
			}
			return err
		}
		created = testimonial
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			metrics.TestimonialVerifications.WithLabelValues(metrics.ResultRejected).Inc()
		case errors.Is(err, ErrConflict):
			metrics.TestimonialVerifications.WithLabelValues(metrics.ResultConflict).Inc()
		default:
			metrics.TestimonialVerifications.WithLabelValues(metrics.ResultError).Inc()
		}
		return nil, err
	}

	metrics.TestimonialVerifications.WithLabelValues(metrics.ResultOK).Inc()
	if s.config.AdminEmail != "" {
		if err := s.dispatch(ctx, buildPendingNotification(s.config.AdminEmail, created)); err != nil {
			return created, err
		}
	}
	return created, nil
}

func (s *TestimonialService) ListPublished(ctx context.Context) ([]entity.Testimonial, error) {
	return s.testimonials.ListApproved(ctx)
}

func (s *TestimonialService) ListPending(ctx context.Context) ([]entity.Testimonial, error) {
	return s.testimonials.ListAwaitingApproval(ctx, s.clock.Now())
}

// Approve publishes a live testimonial. Approving an already approved record
// succeeds again.
func (s *TestimonialService) Approve(ctx context.Context, rawID string, ipAddress *string) (*entity.Testimonial, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrTestimonialNotFound
	}

	now := s.clock.Now()
	ok, err := s.testimonials.Approve(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTestimonialNotFound
	}

	testimonial, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, ErrTestimonialNotFound
	}

	metrics.TestimonialModerations.WithLabelValues("approve").Inc()
	_ = logSecurity(ctx, s.securityLogs, now, ipAddress, entity.TestimonialApproved, map[string]any{"testimonial_id": id.String()})
	return testimonial, nil
}

func (s *TestimonialService) Delete(ctx context.Context, rawID string, ipAddress *string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ErrTestimonialNotFound
	}

	ok, err := s.testimonials.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTestimonialNotFound
	}

	metrics.TestimonialModerations.WithLabelValues("delete").Inc()
	_ = logSecurity(ctx, s.securityLogs, s.clock.Now(), ipAddress, entity.TestimonialDeleted, map[string]any{"testimonial_id": id.String()})
	return nil
}

func (s *TestimonialService) dispatch(ctx context.Context, msg Message) error {
	if s.mailer == nil {
		return fmt.Errorf("%w: %w", ErrMailDelivery, ErrMailNotConfigured)
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.MailTimeout)
	defer cancel()

	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.MailFailures.Inc()
		s.logger.WithError(err).WithField("subject", msg.Subject).Error("mail delivery failed")
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}
	return nil
}
