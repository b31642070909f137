package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestimonialPayload is what the submitter claimed, held until the email
// address is proven.
type TestimonialPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Link        string `json:"link,omitempty"`
	Testimonial string `json:"testimonial"`
}

type PendingTestimonial struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	TokenHash string `gorm:"type:text;uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`

	Payload datatypes.JSONType[TestimonialPayload] `gorm:"not null"`

	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (p *PendingTestimonial) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *PendingTestimonial) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
