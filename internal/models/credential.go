package models

import "time"

// Credential backs the local identity provider.
type Credential struct {
	UID          string `gorm:"primaryKey;size:128"`
	Email        string `gorm:"not null;size:255;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (Credential) TableName() string {
	return "credential"
}
