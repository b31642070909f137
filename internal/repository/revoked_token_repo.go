package repository

import (
	"context"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevokedTokenRepository interface {
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type revokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

// Revoke is idempotent: revoking the same token twice keeps the first entry.
func (r *revokedTokenRepository) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_hash"}},
			DoNothing: true,
		}).
		Create(token).Error
}

func (r *revokedTokenRepository) IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.RevokedToken{}).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *revokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&entity.RevokedToken{})
	return result.RowsAffected, result.Error
}
