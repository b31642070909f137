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

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *entity.Testimonial) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Testimonial, error)
	FindLiveByEmail(ctx context.Context, email string, now time.Time) (*entity.Testimonial, error)
	ListApproved(ctx context.Context) ([]entity.Testimonial, error)
	ListAwaitingApproval(ctx context.Context, now time.Time) ([]entity.Testimonial, error)
	Approve(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpiredByEmail(ctx context.Context, email string, now time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

// liveCondition matches approved records and unapproved ones still inside
// their approval window.
const liveCondition = "(admin_approved = ? OR expire_at IS NULL OR expire_at > ?)"

func (r *testimonialRepository) Create(ctx context.Context, t *entity.Testimonial) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: testimonial email", ErrDuplicate)
	}
	return err
}

func (r *testimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Testimonial, error) {
	var testimonial entity.Testimonial
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&testimonial).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &testimonial, err
}

func (r *testimonialRepository) FindLiveByEmail(ctx context.Context, email string, now time.Time) (*entity.Testimonial, error) {
	var testimonial entity.Testimonial
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Where(liveCondition, true, now).
		First(&testimonial).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &testimonial, err
}

func (r *testimonialRepository) ListApproved(ctx context.Context) ([]entity.Testimonial, error) {
	var testimonials []entity.Testimonial
	err := r.db.WithContext(ctx).
		Where("admin_approved = ?", true).
		Order("created_at DESC").
		Find(&testimonials).Error
	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepository) ListAwaitingApproval(ctx context.Context, now time.Time) ([]entity.Testimonial, error) {
	var testimonials []entity.Testimonial
	err := r.db.WithContext(ctx).
		Where("admin_approved = ?", false).
		Where("(expire_at IS NULL OR expire_at > ?)", now).
		Order("created_at DESC").
		Find(&testimonials).Error
	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

// Approve flips the approval flag and drops the self-expiry in one UPDATE.
// It reports false when no live record has that id.
func (r *testimonialRepository) Approve(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Testimonial{}).
		Where("id = ?", id).
		Where(liveCondition, true, now).
		Updates(map[string]any{
			"admin_approved": true,
			"expire_at":      nil,
			"updated_at":     now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Testimonial{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *testimonialRepository) DeleteExpiredByEmail(ctx context.Context, email string, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND admin_approved = ? AND expire_at IS NOT NULL AND expire_at <= ?", email, false, now).
		Delete(&entity.Testimonial{}).
		Error
}

func (r *testimonialRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("admin_approved = ? AND expire_at IS NOT NULL AND expire_at <= ?", false, now).
		Delete(&entity.Testimonial{})
	return result.RowsAffected, result.Error
}
