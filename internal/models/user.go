// internal/models/user.go
package models

import (
	"time"
)

// User caches the profile the identity provider asserts in its tokens.
// Credentials and sessions live with the provider, never here.
type User struct {
	BaseModel
	Subject     string     `json:"subject" gorm:"uniqueIndex;size:255;not null"`
	DisplayName string     `json:"display_name" gorm:"size:100"`
	Email       string     `json:"email" gorm:"index;size:255"`
	AvatarURL   string     `json:"avatar_url" gorm:"size:512"`
	Status      UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	ProfileData JSONB      `json:"profile_data" gorm:"type:jsonb"`
	LastSeenAt  *time.Time `json:"last_seen_at"`

	// Relationships
	Products []UserProduct `json:"products,omitempty" gorm:"foreignKey:UserID"`
}
