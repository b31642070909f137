package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"
	"github.com/MinhMaxx/personal-website-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSecurityLogRepository_RecordAndPrune(t *testing.T) {
	repo := repository.NewSecurityLogRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	ip := "10.0.0.1"

	require.NoError(t, repo.Record(ctx, &entity.SecurityLog{
		IPAddress: &ip,
		Action:    entity.LoginFailed,
		Metadata:  datatypes.JSON(`{"reason":"credentials"}`),
		CreatedAt: baseTime.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.Record(ctx, &entity.SecurityLog{
		Action:    entity.LoginFailed,
		CreatedAt: baseTime,
	}))
	require.NoError(t, repo.Record(ctx, &entity.SecurityLog{
		Action:    entity.Logout,
		CreatedAt: baseTime,
	}))

	failed, err := repo.ListByAction(ctx, entity.LoginFailed)
	require.NoError(t, err)
	require.Len(t, failed, 2)
	assert.Nil(t, failed[0].IPAddress)
	require.NotNil(t, failed[1].IPAddress)
	assert.Equal(t, ip, *failed[1].IPAddress)

	removed, err := repo.PruneBefore(ctx, baseTime.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
