package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// goalService handles goal-related business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal records a new savings target.
func (s *goalService) CreateGoal(ctx context.Context, userID string, in GoalInput) (*models.Goal, error) {
	if err := requireName(in.Name); err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if in.Category == "" {
		in.Category = models.GoalCategoryOther
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
		Priority:      in.Priority,
		Category:      in.Category,
		Description:   in.Description,
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, wrapInternal(err)
	}
	goal.Progress = goal.ProgressPercent()
	return goal, nil
}

// GetUserGoals returns a page of the user's goals, newest first.
func (s *goalService) GetUserGoals(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	category *models.GoalCategory,
) (*pagination.PageResponse[models.Goal], error) {
	base := s.db.WithContext(ctx).Model(&models.Goal{}).Where("user_id = ?", userID)
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	result, err := pagination.Find[models.Goal](base, page, "created_at DESC")
	if err != nil {
		return nil, wrapInternal(err)
	}
	return result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := findOwned(ctx, s.db, &goal, userID, goalID, apperrors.ErrGoalNotFound); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal changes the given fields.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, update GoalUpdate) (*models.Goal, error) {
	goal, err := s.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := requireName(*update.Name); err != nil {
			return nil, err
		}
		goal.Name = *update.Name
	}
	if update.TargetAmount != nil {
		goal.TargetAmount = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		goal.CurrentAmount = *update.CurrentAmount
	}
	if update.TargetDate != nil {
		goal.TargetDate = update.TargetDate
	}
	if update.Priority != nil {
		goal.Priority = *update.Priority
	}
	if update.Category != nil {
		goal.Category = *update.Category
	}
	if update.Description != nil {
		goal.Description = *update.Description
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
		return nil, wrapInternal(err)
	}
	goal.Progress = goal.ProgressPercent()
	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return deleteOwned(ctx, s.db, &models.Goal{}, userID, goalID, apperrors.ErrGoalNotFound)
}

func validateGoal(g *models.Goal) error {
	if err := requirePositive("target_amount", g.TargetAmount); err != nil {
		return err
	}
	if err := requireNonNegative("current_amount", g.CurrentAmount); err != nil {
		return err
	}
	if !g.Priority.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported priority")
	}
	if !g.Category.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported goal category")
	}
	return nil
}
