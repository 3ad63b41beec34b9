// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pricewise/pricewise-backend/internal/models"
	"github.com/pricewise/pricewise-backend/internal/utils"
)

// UserService maintains the local cache of identity-provider profiles.
// The provider owns credentials and sessions; this side only mirrors the
// fields its tokens assert plus whatever the user edits here.
type UserService struct {
	db *gorm.DB
}

type UpdateUserProfileRequest struct {
	DisplayName string                 `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL   string                 `json:"avatar_url,omitempty" validate:"omitempty,url,max=512"`
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// SyncFromClaims upserts the profile row for the token's subject and
// stamps the visit. The row ID matches the provider's subject UUID.
func (s *UserService) SyncFromClaims(claims *utils.JWTClaims) (*models.User, error) {
	if s.db == nil {
		return nil, ErrNotConfigured
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in token: %w", err)
	}

	now := time.Now()
	var user models.User
	err = s.db.Where("subject = ?", claims.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			BaseModel:   models.BaseModel{ID: userID},
			Subject:     claims.UserID,
			DisplayName: claims.DisplayName,
			Email:       claims.Email,
			AvatarURL:   claims.AvatarURL,
			Status:      models.UserStatusActive,
			LastSeenAt:  &now,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user profile: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user profile: %w", err)
	}

	updates := map[string]interface{}{
		"last_seen_at": now,
	}
	if claims.Email != "" && claims.Email != user.Email {
		updates["email"] = claims.Email
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh user profile: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetUser(userID uuid.UUID) (*models.User, error) {
	if s.db == nil {
		return nil, ErrNotConfigured
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	if s.db == nil {
		return nil, ErrNotConfigured
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	updates := make(map[string]interface{})
	if req.DisplayName != "" {
		updates["display_name"] = req.DisplayName
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if req.ProfileData != nil {
		updates["profile_data"] = models.JSONB(req.ProfileData)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return &user, nil
}
