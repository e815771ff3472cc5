package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// liabilityService handles liability-related business logic.
type liabilityService struct {
	db *gorm.DB
}

// NewLiabilityService creates a new LiabilityServicer.
func NewLiabilityService(db *gorm.DB) LiabilityServicer {
	return &liabilityService{db: db}
}

// CreateLiability records a new debt.
func (s *liabilityService) CreateLiability(ctx context.Context, userID string, in LiabilityInput) (*models.Liability, error) {
	if !in.Type.Valid() {
		return nil, apperrors.ErrInvalidLiabilityType
	}
	if err := requireName(in.Name); err != nil {
		return nil, err
	}

	liability := &models.Liability{
		UserID:            userID,
		Type:              in.Type,
		Name:              in.Name,
		Lender:            in.Lender,
		PrincipalAmount:   in.PrincipalAmount,
		OutstandingAmount: in.OutstandingAmount,
		InterestRate:      in.InterestRate,
		MonthlyPayment:    in.MonthlyPayment,
		NextDueDate:       in.NextDueDate,
		Notes:             in.Notes,
	}
	if err := validateLiabilityAmounts(liability); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(liability).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return liability, nil
}

// GetUserLiabilities returns a page of the user's liabilities, newest first.
func (s *liabilityService) GetUserLiabilities(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	liabilityType *models.LiabilityType,
) (*pagination.PageResponse[models.Liability], error) {
	base := s.db.WithContext(ctx).Model(&models.Liability{}).Where("user_id = ?", userID)
	if liabilityType != nil {
		base = base.Where("type = ?", *liabilityType)
	}

	result, err := pagination.Find[models.Liability](base, page, "created_at DESC")
	if err != nil {
		return nil, wrapInternal(err)
	}
	return result, nil
}

// GetLiabilityByID returns a liability by ID if it belongs to the user.
func (s *liabilityService) GetLiabilityByID(ctx context.Context, userID, liabilityID string) (*models.Liability, error) {
	var liability models.Liability
	if err := findOwned(ctx, s.db, &liability, userID, liabilityID, apperrors.ErrLiabilityNotFound); err != nil {
		return nil, err
	}
	return &liability, nil
}

// UpdateLiability changes the given fields.
func (s *liabilityService) UpdateLiability(ctx context.Context, userID, liabilityID string, update LiabilityUpdate) (*models.Liability, error) {
	liability, err := s.GetLiabilityByID(ctx, userID, liabilityID)
	if err != nil {
		return nil, err
	}

	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, apperrors.ErrInvalidLiabilityType
		}
		liability.Type = *update.Type
	}
	if update.Name != nil {
		if err := requireName(*update.Name); err != nil {
			return nil, err
		}
		liability.Name = *update.Name
	}
	if update.Lender != nil {
		liability.Lender = *update.Lender
	}
	if update.PrincipalAmount != nil {
		liability.PrincipalAmount = *update.PrincipalAmount
	}
	if update.OutstandingAmount != nil {
		liability.OutstandingAmount = *update.OutstandingAmount
	}
	if update.InterestRate != nil {
		liability.InterestRate = *update.InterestRate
	}
	if update.MonthlyPayment != nil {
		liability.MonthlyPayment = *update.MonthlyPayment
	}
	if update.NextDueDate != nil {
		liability.NextDueDate = update.NextDueDate
	}
	if update.Notes != nil {
		liability.Notes = *update.Notes
	}

	if err := validateLiabilityAmounts(liability); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(liability).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return liability, nil
}

// DeleteLiability soft-deletes a liability.
func (s *liabilityService) DeleteLiability(ctx context.Context, userID, liabilityID string) error {
	return deleteOwned(ctx, s.db, &models.Liability{}, userID, liabilityID, apperrors.ErrLiabilityNotFound)
}

func validateLiabilityAmounts(l *models.Liability) error {
	if err := requireNonNegative("principal_amount", l.PrincipalAmount); err != nil {
		return err
	}
	if err := requireNonNegative("outstanding_amount", l.OutstandingAmount); err != nil {
		return err
	}
	if err := requireNonNegative("interest_rate", l.InterestRate); err != nil {
		return err
	}
	return requireNonNegative("monthly_payment", l.MonthlyPayment)
}
