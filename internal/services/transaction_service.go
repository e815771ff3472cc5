package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a money movement. Any linked asset, liability
// or goal must belong to the same user.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if !in.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if err := s.verifyLinks(ctx, userID, in); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		AssetID:     in.AssetID,
		LiabilityID: in.LiabilityID,
		GoalID:      in.GoalID,
	}
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return tx, nil
}

func (s *transactionService) verifyLinks(ctx context.Context, userID string, in TransactionInput) error {
	if in.AssetID != nil {
		if err := findOwned(ctx, s.db, &models.Asset{}, userID, *in.AssetID, apperrors.ErrAssetNotFound); err != nil {
			return err
		}
	}
	if in.LiabilityID != nil {
		if err := findOwned(ctx, s.db, &models.Liability{}, userID, *in.LiabilityID, apperrors.ErrLiabilityNotFound); err != nil {
			return err
		}
	}
	if in.GoalID != nil {
		if err := findOwned(ctx, s.db, &models.Goal{}, userID, *in.GoalID, apperrors.ErrGoalNotFound); err != nil {
			return err
		}
	}
	return nil
}

// GetUserTransactions returns a page of the user's transactions, most recent date first.
func (s *transactionService) GetUserTransactions(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	base := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	result, err := pagination.Find[models.Transaction](base, page, "date DESC, created_at DESC")
	if err != nil {
		return nil, wrapInternal(err)
	}
	return result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	if f.LiabilityID != nil {
		q = q.Where("liability_id = ?", *f.LiabilityID)
	}
	if f.GoalID != nil {
		q = q.Where("goal_id = ?", *f.GoalID)
	}
	return q
}

// GetTransactionByID returns a transaction by ID if it belongs to the user.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := findOwned(ctx, s.db, &tx, userID, transactionID, apperrors.ErrTransactionNotFound); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction changes the given fields.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		tx.Type = *update.Type
	}
	if update.Amount != nil {
		if err := requirePositive("amount", *update.Amount); err != nil {
			return nil, err
		}
		tx.Amount = *update.Amount
	}
	if update.Date != nil {
		tx.Date = *update.Date
	}
	if update.Description != nil {
		tx.Description = *update.Description
	}

	if err := s.db.WithContext(ctx).Save(tx).Error; err != nil {
		return nil, wrapInternal(err)
	}
	return tx, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return deleteOwned(ctx, s.db, &models.Transaction{}, userID, transactionID, apperrors.ErrTransactionNotFound)
}
