package entity

import "time"

// RevokedToken blocks a still-valid admin JWT after logout. Only the token
// hash is stored.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	TokenHash string    `gorm:"type:text;uniqueIndex;not null"`
	DateAdded time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
