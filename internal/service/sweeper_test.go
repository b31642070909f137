package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"
	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirySweeper_SweepOnce(t *testing.T) {
	f := newTestimonialFixture(t)
	ctx := context.Background()
	revoked := repository.NewRevokedTokenRepository(f.db)

	f.submitAndRedeem(t, "stale@x.com")
	kept := f.submitAndRedeem(t, "kept@x.com")
	_, err := f.service.Approve(ctx, kept.ID.String(), nil)
	require.NoError(t, err)
	require.NoError(t, f.service.Submit(ctx, validInput("unverified@x.com")))
	require.NoError(t, revoked.Revoke(ctx, &entity.RevokedToken{
		TokenHash: "hash",
		DateAdded: startTime,
		ExpiresAt: startTime.Add(time.Hour),
	}))

	f.clock.Advance(8 * 24 * time.Hour)
	sweeper := service.NewExpirySweeper(f.pending, f.records, revoked, f.logs, f.clock, quietLogger(), service.SweepConfig{
		SecurityLogRetention: 24 * time.Hour,
	})

	result, err := sweeper.SweepOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Pending)
	assert.Equal(t, int64(1), result.Testimonials)
	assert.Equal(t, int64(1), result.Revoked)
	assert.Equal(t, int64(1), result.SecurityLogs)

	published, err := f.service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, kept.ID, published[0].ID)

	again, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.SweepResult{}, again)
}

func TestExpirySweeper_RunStopsOnCancel(t *testing.T) {
	f := newTestimonialFixture(t)
	sweeper := service.NewExpirySweeper(
		f.pending,
		f.records,
		repository.NewRevokedTokenRepository(f.db),
		f.logs,
		f.clock,
		quietLogger(),
		service.SweepConfig{Interval: time.Millisecond},
	)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
