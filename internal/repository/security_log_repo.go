package repository

import (
	"context"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"

	"gorm.io/gorm"
)

type SecurityLogRepository interface {
	Record(ctx context.Context, log *entity.SecurityLog) error
	ListByAction(ctx context.Context, action entity.SecurityAction) ([]entity.SecurityLog, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type securityLogRepository struct {
	db *gorm.DB
}

func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &securityLogRepository{db: db}
}

func (r *securityLogRepository) Record(ctx context.Context, log *entity.SecurityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *securityLogRepository) ListByAction(ctx context.Context, action entity.SecurityAction) ([]entity.SecurityLog, error) {
	var logs []entity.SecurityLog
	err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// PruneBefore drops audit entries older than cutoff.
func (r *securityLogRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&entity.SecurityLog{})
	return result.RowsAffected, result.Error
}
