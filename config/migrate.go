package config

import (
	"context"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables backing the testimonial pipeline and
// the admin session registry.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&entity.Testimonial{},
		&entity.PendingTestimonial{},
		&entity.RevokedToken{},
		&entity.SecurityLog{},
	)
}
