package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name     string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Company  string `gorm:"type:varchar(100)"`
	Position string `gorm:"type:varchar(100)"`
	Link     string `gorm:"type:text"`
	Content  string `gorm:"type:text;not null"`

	AdminApproved bool `gorm:"default:false;not null;index"`
	// ExpireAt is set while the testimonial awaits approval and cleared once
	// approved. Past values mean the record is dead even if not yet swept.
	ExpireAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Testimonial) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Live reports whether the record is still visible at the given instant.
func (t *Testimonial) Live(now time.Time) bool {
	if t.AdminApproved || t.ExpireAt == nil {
		return true
	}
	return now.Before(*t.ExpireAt)
}
