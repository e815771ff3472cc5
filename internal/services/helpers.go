package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wealthtracker/internal/errors"
)

// findOwned loads the record with the given id that belongs to userID.
// A missing row, or one owned by someone else, yields notFound.
func findOwned(ctx context.Context, db *gorm.DB, dest interface{}, userID, id string, notFound *apperrors.AppError) error {
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(dest).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// deleteOwned soft-deletes the record with the given id that belongs to userID.
func deleteOwned(ctx context.Context, db *gorm.DB, model interface{}, userID, id string, notFound *apperrors.AppError) error {
	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" cannot be negative")
	}
	return nil
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be greater than zero")
	}
	return nil
}

func wrapInternal(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
