package service

import (
	"context"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/metrics"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

const defaultSweepInterval = time.Minute

type SweepConfig struct {
	Interval time.Duration
	// SecurityLogRetention of zero keeps audit entries forever.
	SecurityLogRetention time.Duration
}

// SweepResult counts the rows removed by one pass.
type SweepResult struct {
	Pending      int64
	Testimonials int64
	Revoked      int64
	SecurityLogs int64
}

// ExpirySweeper purges rows whose lifetime has passed. Read paths already
// ignore expired rows, so the sweeper only reclaims storage.
type ExpirySweeper struct {
	pending      repository.PendingTestimonialRepository
	testimonials repository.TestimonialRepository
	revoked      repository.RevokedTokenRepository
	securityLogs repository.SecurityLogRepository

	clock  Clock
	logger logrus.FieldLogger
	config SweepConfig
}

func NewExpirySweeper(
	pending repository.PendingTestimonialRepository,
	testimonials repository.TestimonialRepository,
	revoked repository.RevokedTokenRepository,
	securityLogs repository.SecurityLogRepository,
	clock Clock,
	logger logrus.FieldLogger,
	config SweepConfig,
) *ExpirySweeper {
	if config.Interval <= 0 {
		config.Interval = defaultSweepInterval
	}
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ExpirySweeper{
		pending:      pending,
		testimonials: testimonials,
		revoked:      revoked,
		securityLogs: securityLogs,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

// SweepOnce runs a single pass. A failing table does not stop the others;
// the first error is returned.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (SweepResult, error) {
	now := s.clock.Now()
	var result SweepResult
	var firstErr error

	record := func(table string, n int64, err error) int64 {
		if err != nil {
			s.logger.WithError(err).WithField("table", table).Error("sweep failed")
			if firstErr == nil {
				firstErr = err
			}
			return 0
		}
		if n > 0 {
			metrics.SweptRecords.WithLabelValues(table).Add(float64(n))
		}
		return n
	}

	n, err := s.pending.DeleteExpired(ctx, now)
	result.Pending = record("pending_testimonials", n, err)

	n, err = s.testimonials.DeleteExpired(ctx, now)
	result.Testimonials = record("testimonials", n, err)

	n, err = s.revoked.DeleteExpired(ctx, now)
	result.Revoked = record("revoked_tokens", n, err)

	if s.securityLogs != nil && s.config.SecurityLogRetention > 0 {
		n, err = s.securityLogs.PruneBefore(ctx, now.Add(-s.config.SecurityLogRetention))
		result.SecurityLogs = record("security_logs", n, err)
	}

	return result, firstErr
}

// Run sweeps every interval until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := s.SweepOnce(ctx)
			if err != nil {
				continue
			}
			total := result.Pending + result.Testimonials + result.Revoked + result.SecurityLogs
			if total > 0 {
				s.logger.WithFields(logrus.Fields{
					"pending":       result.Pending,
					"testimonials":  result.Testimonials,
					"revoked":       result.Revoked,
					"security_logs": result.SecurityLogs,
				}).Info("expired records swept")
			}
		}
	}
}
