package repository

import (
	"context"

	"gorm.io/gorm"
)

// TestimonialTxRunner runs fn inside one database transaction with
// repositories bound to it. Returning an error rolls everything back.
type TestimonialTxRunner interface {
	WithinTx(ctx context.Context, fn func(pending PendingTestimonialRepository, testimonials TestimonialRepository) error) error
}

type testimonialTxRunner struct {
	db *gorm.DB
}

func NewTestimonialTxRunner(db *gorm.DB) TestimonialTxRunner {
	return &testimonialTxRunner{db: db}
}

func (r *testimonialTxRunner) WithinTx(
	ctx context.Context,
	fn func(pending PendingTestimonialRepository, testimonials TestimonialRepository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPendingTestimonialRepository(tx), NewTestimonialRepository(tx))
	})
}
