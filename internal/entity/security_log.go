package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SecurityAction string

const (
	LoginSuccess        SecurityAction = "login_success"
	LoginFailed         SecurityAction = "login_failed"
	Logout              SecurityAction = "logout"
	TestimonialApproved SecurityAction = "testimonial_approved"
	TestimonialDeleted  SecurityAction = "testimonial_deleted"
)

// ParseSecurityAction accepts only the actions the service records.
func ParseSecurityAction(value string) (SecurityAction, bool) {
	switch action := SecurityAction(value); action {
	case LoginSuccess, LoginFailed, Logout, TestimonialApproved, TestimonialDeleted:
		return action, true
	}
	return "", false
}

type SecurityLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    SecurityAction `gorm:"type:varchar(32);not null;index"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}

func (l *SecurityLog) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
