package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"
	"github.com/MinhMaxx/personal-website-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newPending(email string, tokenHash string, expiresAt time.Time) *entity.PendingTestimonial {
	return &entity.PendingTestimonial{
		TokenHash: tokenHash,
		Email:     email,
		Payload: datatypes.NewJSONType(entity.TestimonialPayload{
			Name:        "Jane",
			Email:       email,
			Testimonial: "Great work",
		}),
		ExpiresAt: expiresAt,
		CreatedAt: expiresAt.Add(-5 * time.Minute),
	}
}

func TestPendingTestimonialRepository_CreateAndFind(t *testing.T) {
	repo := repository.NewPendingTestimonialRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPending("a@x.com", "hash-1", baseTime.Add(5*time.Minute))))

	found, err := repo.FindByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a@x.com", found.Email)
	assert.Equal(t, "Great work", found.Payload.Data().Testimonial)

	missing, err := repo.FindByTokenHash(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPendingTestimonialRepository_UniqueConstraints(t *testing.T) {
	repo := repository.NewPendingTestimonialRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPending("a@x.com", "hash-1", baseTime)))

	err := repo.Create(ctx, newPending("a@x.com", "hash-2", baseTime))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = repo.Create(ctx, newPending("b@x.com", "hash-1", baseTime))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestPendingTestimonialRepository_FindActiveByEmail(t *testing.T) {
	repo := repository.NewPendingTestimonialRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPending("a@x.com", "hash-1", baseTime)))

	active, err := repo.FindActiveByEmail(ctx, "a@x.com", baseTime)
	require.NoError(t, err)
	assert.NotNil(t, active, "expiry instant is still valid")

	active, err = repo.FindActiveByEmail(ctx, "a@x.com", baseTime.Add(time.Second))
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestPendingTestimonialRepository_ConsumeOnce(t *testing.T) {
	repo := repository.NewPendingTestimonialRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	entry := newPending("a@x.com", "hash-1", baseTime)
	require.NoError(t, repo.Create(ctx, entry))

	var wg sync.WaitGroup
	results := make(chan bool, 4)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Consume(ctx, entry.ID)
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestPendingTestimonialRepository_DeleteExpired(t *testing.T) {
	repo := repository.NewPendingTestimonialRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPending("old@x.com", "hash-1", baseTime.Add(-time.Minute))))
	require.NoError(t, repo.Create(ctx, newPending("new@x.com", "hash-2", baseTime.Add(time.Minute))))

	require.NoError(t, repo.DeleteExpiredByEmail(ctx, "new@x.com", baseTime))
	removed, err := repo.DeleteExpired(ctx, baseTime)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	kept, err := repo.FindByTokenHash(ctx, "hash-2")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
