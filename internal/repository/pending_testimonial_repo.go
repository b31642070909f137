package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PendingTestimonialRepository interface {
	Create(ctx context.Context, pending *entity.PendingTestimonial) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.PendingTestimonial, error)
	FindActiveByEmail(ctx context.Context, email string, now time.Time) (*entity.PendingTestimonial, error)
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpiredByEmail(ctx context.Context, email string, now time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type pendingTestimonialRepository struct {
	db *gorm.DB
}

func NewPendingTestimonialRepository(db *gorm.DB) PendingTestimonialRepository {
	return &pendingTestimonialRepository{db: db}
}

func (r *pendingTestimonialRepository) Create(ctx context.Context, p *entity.PendingTestimonial) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: pending testimonial", ErrDuplicate)
	}
	return err
}

func (r *pendingTestimonialRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.PendingTestimonial, error) {
	var pending entity.PendingTestimonial
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&pending).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pending, err
}

func (r *pendingTestimonialRepository) FindActiveByEmail(ctx context.Context, email string, now time.Time) (*entity.PendingTestimonial, error) {
	var pending entity.PendingTestimonial
	err := r.db.WithContext(ctx).
		Where("email = ? AND expires_at >= ?", email, now).
		First(&pending).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pending, err
}

// Consume deletes the entry and reports whether this call was the one that
// removed it. Concurrent callers racing on the same id see exactly one true.
func (r *pendingTestimonialRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.PendingTestimonial{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *pendingTestimonialRepository) DeleteExpiredByEmail(ctx context.Context, email string, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND expires_at < ?", email, now).
		Delete(&entity.PendingTestimonial{}).
		Error
}

func (r *pendingTestimonialRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.PendingTestimonial{})
	return result.RowsAffected, result.Error
}
