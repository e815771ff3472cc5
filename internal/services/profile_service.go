package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
)

const defaultCurrency = "INR"

// profileService handles profile-related business logic.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetOrCreateProfile returns the user's profile, creating it on first access.
// The email from the access token is stored when the profile has none yet.
func (s *profileService) GetOrCreateProfile(ctx context.Context, userID, email string) (*models.Profile, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	profile := &models.Profile{
		Base:         models.Base{ID: userID},
		Email:        email,
		Currency:     defaultCurrency,
		RiskAppetite: models.RiskAppetiteModerate,
	}
	db := s.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(profile).Error; err != nil {
		return nil, wrapInternal(err)
	}

	var existing models.Profile
	if err := findProfile(db, userID, &existing); err != nil {
		return nil, err
	}
	if existing.Email == "" && email != "" {
		if err := db.Model(&existing).Update("email", email).Error; err != nil {
			return nil, wrapInternal(err)
		}
	}
	return &existing, nil
}

// UpdateProfile applies the given changes to the user's profile.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error) {
	db := s.db.WithContext(ctx)

	var profile models.Profile
	if err := findProfile(db, userID, &profile); err != nil {
		return nil, err
	}

	if update.FullName != nil {
		profile.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*update.Currency))
		if len(currency) != 3 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be a 3-letter ISO 4217 code")
		}
		profile.Currency = currency
	}
	if update.RiskAppetite != nil {
		if !update.RiskAppetite.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported risk appetite")
		}
		profile.RiskAppetite = *update.RiskAppetite
	}

	if err := db.Save(&profile).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return &profile, nil
}

func findProfile(db *gorm.DB, userID string, dest *models.Profile) error {
	err := db.Where("id = ?", userID).First(dest).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return wrapInternal(err)
}
