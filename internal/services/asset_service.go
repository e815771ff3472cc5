package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset records a new holding. When no current value is given it is
// derived from quantity × current price.
func (s *assetService) CreateAsset(ctx context.Context, userID string, in AssetInput) (*models.Asset, error) {
	if !in.Type.Valid() {
		return nil, apperrors.ErrInvalidAssetType
	}
	if err := requireName(in.Name); err != nil {
		return nil, err
	}
	if in.RiskLevel == "" {
		in.RiskLevel = models.RiskLevelMedium
	}
	if !in.RiskLevel.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported risk level")
	}

	asset := &models.Asset{
		UserID:       userID,
		Type:         in.Type,
		Name:         in.Name,
		Symbol:       in.Symbol,
		Quantity:     in.Quantity,
		AveragePrice: in.AveragePrice,
		CurrentPrice: in.CurrentPrice,
		CurrentValue: in.Quantity.Mul(in.CurrentPrice),
		Institution:  in.Institution,
		RiskLevel:    in.RiskLevel,
		PurchaseDate: in.PurchaseDate,
		Notes:        in.Notes,
	}
	if in.CurrentValue != nil {
		asset.CurrentValue = *in.CurrentValue
	}
	if err := validateAssetAmounts(asset); err != nil {
		return nil, err
	}
	asset.Derive()

	if err := s.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return asset, nil
}

// GetUserAssets returns a page of the user's assets, newest first.
func (s *assetService) GetUserAssets(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	assetType *models.AssetType,
) (*pagination.PageResponse[models.Asset], error) {
	base := s.db.WithContext(ctx).Model(&models.Asset{}).Where("user_id = ?", userID)
	if assetType != nil {
		base = base.Where("type = ?", *assetType)
	}

	result, err := pagination.Find[models.Asset](base, page, "created_at DESC")
	if err != nil {
		return nil, wrapInternal(err)
	}
	return result, nil
}

// GetAssetByID returns an asset by ID if it belongs to the user.
func (s *assetService) GetAssetByID(ctx context.Context, userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := findOwned(ctx, s.db, &asset, userID, assetID, apperrors.ErrAssetNotFound); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset changes the given fields. A new quantity or price without an
// explicit current value re-derives the current value.
func (s *assetService) UpdateAsset(ctx context.Context, userID, assetID string, update AssetUpdate) (*models.Asset, error) {
	asset, err := s.GetAssetByID(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, apperrors.ErrInvalidAssetType
		}
		asset.Type = *update.Type
	}
	if update.Name != nil {
		if err := requireName(*update.Name); err != nil {
			return nil, err
		}
		asset.Name = *update.Name
	}
	if update.Symbol != nil {
		asset.Symbol = *update.Symbol
	}
	if update.Institution != nil {
		asset.Institution = *update.Institution
	}
	if update.RiskLevel != nil {
		if !update.RiskLevel.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported risk level")
		}
		asset.RiskLevel = *update.RiskLevel
	}
	if update.PurchaseDate != nil {
		asset.PurchaseDate = update.PurchaseDate
	}
	if update.Notes != nil {
		asset.Notes = *update.Notes
	}
	if update.AveragePrice != nil {
		asset.AveragePrice = *update.AveragePrice
	}

	repriced := false
	if update.Quantity != nil {
		asset.Quantity = *update.Quantity
		repriced = true
	}
	if update.CurrentPrice != nil {
		asset.CurrentPrice = *update.CurrentPrice
		repriced = true
	}
	switch {
	case update.CurrentValue != nil:
		asset.CurrentValue = *update.CurrentValue
	case repriced && !asset.CurrentPrice.IsZero():
		asset.CurrentValue = asset.Quantity.Mul(asset.CurrentPrice)
	}

	if err := validateAssetAmounts(asset); err != nil {
		return nil, err
	}
	asset.Derive()

	if err := s.db.WithContext(ctx).Save(asset).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return asset, nil
}

// DeleteAsset soft-deletes an asset.
func (s *assetService) DeleteAsset(ctx context.Context, userID, assetID string) error {
	return deleteOwned(ctx, s.db, &models.Asset{}, userID, assetID, apperrors.ErrAssetNotFound)
}

func validateAssetAmounts(a *models.Asset) error {
	if err := requireNonNegative("quantity", a.Quantity); err != nil {
		return err
	}
	if err := requireNonNegative("average_price", a.AveragePrice); err != nil {
		return err
	}
	if err := requireNonNegative("current_price", a.CurrentPrice); err != nil {
		return err
	}
	return requireNonNegative("current_value", a.CurrentValue)
}
