package entity_test

import (
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestTestimonialLive(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, (&entity.Testimonial{AdminApproved: true}).Live(now))
	assert.True(t, (&entity.Testimonial{ExpireAt: &future}).Live(now))
	assert.False(t, (&entity.Testimonial{ExpireAt: &past}).Live(now))
	assert.False(t, (&entity.Testimonial{ExpireAt: &now}).Live(now))
}

func TestPendingTestimonialExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pending := &entity.PendingTestimonial{ExpiresAt: now}

	assert.False(t, pending.Expired(now))
	assert.True(t, pending.Expired(now.Add(time.Nanosecond)))
}

func TestParseSecurityAction(t *testing.T) {
	action, ok := entity.ParseSecurityAction("login_failed")
	assert.True(t, ok)
	assert.Equal(t, entity.LoginFailed, action)

	_, ok = entity.ParseSecurityAction("dropped_tables")
	assert.False(t, ok)
}
