package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AnonymousEmail       = "anonymous"
	AnonymousDisplayName = "Anonymous User"
)

// Preferences holds the per-user editor settings stored on the profile.
type Preferences struct {
	Theme            string `json:"theme"`
	DefaultPlatform  string `json:"defaultPlatform"`
	AutoSaveInterval int    `json:"autoSaveInterval"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:            "dark",
		DefaultPlatform:  "airflow",
		AutoSaveInterval: 30,
	}
}

// UserProfile is the per-subject document keyed by the identity provider uid.
// Admin is only ever changed directly in the database.
type UserProfile struct {
	UID         string                          `gorm:"primaryKey;size:128" json:"uid"`
	Email       string                          `gorm:"size:255;index" json:"email"`
	DisplayName string                          `gorm:"size:255" json:"displayName"`
	Admin       bool                            `gorm:"not null;default:false" json:"admin"`
	IsAnonymous bool                            `gorm:"not null;default:false" json:"isAnonymous"`
	Preferences datatypes.JSONType[Preferences] `json:"preferences"`
	CreatedAt   time.Time                       `json:"createdAt"`
	LastLogin   time.Time                       `json:"lastLogin"`
}

func (UserProfile) TableName() string {
	return "user"
}
