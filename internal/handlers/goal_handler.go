package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
	"wealthtracker/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
	notifier     services.ChangeNotifier
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer, notifier services.ChangeNotifier) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService, notifier: notifier}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200" example:"Emergency fund"`
	TargetAmount  *decimal.Decimal `json:"target_amount" binding:"required,gt=0" swaggertype:"number" example:"600000"`
	CurrentAmount *decimal.Decimal `json:"current_amount" binding:"omitempty,gte=0" swaggertype:"number" example:"150000"`
	TargetDate    *Date            `json:"target_date" swaggertype:"string" example:"2027-12-31"`
	Priority      string           `json:"priority" binding:"omitempty,priority" example:"high"`
	Category      string           `json:"category" binding:"omitempty,goal_category" example:"emergency_fund"`
	Description   string           `json:"description" binding:"max=1000"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	TargetAmount  *decimal.Decimal `json:"target_amount" binding:"omitempty,gt=0" swaggertype:"number"`
	CurrentAmount *decimal.Decimal `json:"current_amount" binding:"omitempty,gte=0" swaggertype:"number"`
	TargetDate    *Date            `json:"target_date" swaggertype:"string"`
	Priority      *string          `json:"priority" binding:"omitempty,priority"`
	Category      *string          `json:"category" binding:"omitempty,goal_category"`
	Description   *string          `json:"description" binding:"omitempty,max=1000"`
}

// CreateGoal handles the creation of a new goal.
// @Summary     Create a goal
// @Description Record a new savings target
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, services.GoalInput{
		Name:          req.Name,
		TargetAmount:  decimalOrZero(req.TargetAmount),
		CurrentAmount: decimalOrZero(req.CurrentAmount),
		TargetDate:    req.TargetDate.Ptr(),
		Priority:      models.Priority(req.Priority),
		Category:      models.GoalCategory(req.Category),
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": goal.Name, "target_amount": goal.TargetAmount, "category": goal.Category})
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals for the authenticated user.
// @Summary     Get goals
// @Description Get a paginated list of the user's goals with progress, newest first
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by goal category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Goal] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var category *models.GoalCategory
	if v := c.Query("category"); v != "" {
		gc := models.GoalCategory(v)
		if !gc.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported goal category"))
			return
		}
		category = &gc
	}

	result, err := h.goalService.GetUserGoals(c.Request.Context(), userID, page, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoal handles retrieving a specific goal.
// @Summary     Get goal by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal "Goal details"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(c.Request.Context(), userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles updating an existing goal.
// @Summary     Update goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.GoalUpdate{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    req.TargetDate.Ptr(),
		Description:   req.Description,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		update.Priority = &p
	}
	if req.Category != nil {
		gc := models.GoalCategory(*req.Category)
		update.Category = &gc
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "goal", goal.ID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal.
// @Summary     Delete goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
