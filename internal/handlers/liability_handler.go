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

// LiabilityHandler handles liability-related requests.
type LiabilityHandler struct {
	liabilityService services.LiabilityServicer
	auditService     services.AuditServicer
	notifier         services.ChangeNotifier
}

// NewLiabilityHandler creates a new LiabilityHandler.
func NewLiabilityHandler(liabilityService services.LiabilityServicer, auditService services.AuditServicer, notifier services.ChangeNotifier) *LiabilityHandler {
	return &LiabilityHandler{liabilityService: liabilityService, auditService: auditService, notifier: notifier}
}

// CreateLiabilityRequest represents the request payload for creating a liability.
type CreateLiabilityRequest struct {
	Type              string           `json:"type" binding:"required,liability_type" example:"home_loan"`
	Name              string           `json:"name" binding:"required,min=1,max=200" example:"Home loan"`
	Lender            string           `json:"lender" binding:"max=100" example:"HDFC"`
	PrincipalAmount   *decimal.Decimal `json:"principal_amount" binding:"omitempty,gte=0" swaggertype:"number" example:"5000000"`
	OutstandingAmount *decimal.Decimal `json:"outstanding_amount" binding:"required,gte=0" swaggertype:"number" example:"4200000"`
	InterestRate      *decimal.Decimal `json:"interest_rate" binding:"omitempty,gte=0,lte=100" swaggertype:"number" example:"8.5"`
	MonthlyPayment    *decimal.Decimal `json:"monthly_payment" binding:"omitempty,gte=0" swaggertype:"number" example:"45000"`
	NextDueDate       *Date            `json:"next_due_date" swaggertype:"string" example:"2026-11-05"`
	Notes             string           `json:"notes" binding:"max=1000"`
}

// UpdateLiabilityRequest represents the request payload for updating a liability.
type UpdateLiabilityRequest struct {
	Type              *string          `json:"type" binding:"omitempty,liability_type"`
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Lender            *string          `json:"lender" binding:"omitempty,max=100"`
	PrincipalAmount   *decimal.Decimal `json:"principal_amount" binding:"omitempty,gte=0" swaggertype:"number"`
	OutstandingAmount *decimal.Decimal `json:"outstanding_amount" binding:"omitempty,gte=0" swaggertype:"number"`
	InterestRate      *decimal.Decimal `json:"interest_rate" binding:"omitempty,gte=0,lte=100" swaggertype:"number"`
	MonthlyPayment    *decimal.Decimal `json:"monthly_payment" binding:"omitempty,gte=0" swaggertype:"number"`
	NextDueDate       *Date            `json:"next_due_date" swaggertype:"string"`
	Notes             *string          `json:"notes" binding:"omitempty,max=1000"`
}

// CreateLiability handles the creation of a new liability.
// @Summary     Create a liability
// @Description Record a new loan or card balance
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLiabilityRequest true "Liability details"
// @Success     201 {object} models.Liability "Liability created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities [post]
func (h *LiabilityHandler) CreateLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	liability, err := h.liabilityService.CreateLiability(c.Request.Context(), userID, services.LiabilityInput{
		Type:              models.LiabilityType(req.Type),
		Name:              req.Name,
		Lender:            req.Lender,
		PrincipalAmount:   decimalOrZero(req.PrincipalAmount),
		OutstandingAmount: decimalOrZero(req.OutstandingAmount),
		InterestRate:      decimalOrZero(req.InterestRate),
		MonthlyPayment:    decimalOrZero(req.MonthlyPayment),
		NextDueDate:       req.NextDueDate.Ptr(),
		Notes:             req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LIABILITY", "liability", liability.ID, c.ClientIP(),
		map[string]interface{}{"type": liability.Type, "name": liability.Name, "outstanding_amount": liability.OutstandingAmount})
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusCreated, gin.H{"liability": liability})
}

// GetLiabilities handles listing liabilities for the authenticated user.
// @Summary     Get liabilities
// @Description Get a paginated list of the user's liabilities, newest first
// @Tags        liabilities
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by liability type"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Liability] "Paginated liabilities"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities [get]
func (h *LiabilityHandler) GetLiabilities(c *gin.Context) {
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

	var liabilityType *models.LiabilityType
	if v := c.Query("type"); v != "" {
		t := models.LiabilityType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.ErrInvalidLiabilityType)
			return
		}
		liabilityType = &t
	}

	result, err := h.liabilityService.GetUserLiabilities(c.Request.Context(), userID, page, liabilityType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLiability handles retrieving a specific liability.
// @Summary     Get liability by ID
// @Tags        liabilities
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Liability ID"
// @Success     200 {object} models.Liability "Liability details"
// @Failure     400 {object} ErrorResponse "Invalid liability ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Liability not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/{id} [get]
func (h *LiabilityHandler) GetLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	liabilityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	liability, err := h.liabilityService.GetLiabilityByID(c.Request.Context(), userID, liabilityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liability": liability})
}

// UpdateLiability handles updating an existing liability.
// @Summary     Update liability
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Liability ID"
// @Param       request body UpdateLiabilityRequest true "Fields to update"
// @Success     200 {object} models.Liability "Updated liability"
// @Failure     400 {object} ErrorResponse "Invalid input or liability ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Liability not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/{id} [put]
func (h *LiabilityHandler) UpdateLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	liabilityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.LiabilityUpdate{
		Name:              req.Name,
		Lender:            req.Lender,
		PrincipalAmount:   req.PrincipalAmount,
		OutstandingAmount: req.OutstandingAmount,
		InterestRate:      req.InterestRate,
		MonthlyPayment:    req.MonthlyPayment,
		NextDueDate:       req.NextDueDate.Ptr(),
		Notes:             req.Notes,
	}
	if req.Type != nil {
		t := models.LiabilityType(*req.Type)
		update.Type = &t
	}

	liability, err := h.liabilityService.UpdateLiability(c.Request.Context(), userID, liabilityID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_LIABILITY", "liability", liability.ID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"liability": liability})
}

// DeleteLiability handles deleting a liability.
// @Summary     Delete liability
// @Tags        liabilities
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Liability ID"
// @Success     200 {object} MessageResponse "Liability deleted"
// @Failure     400 {object} ErrorResponse "Invalid liability ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Liability not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/{id} [delete]
func (h *LiabilityHandler) DeleteLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	liabilityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.liabilityService.DeleteLiability(c.Request.Context(), userID, liabilityID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_LIABILITY", "liability", liabilityID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Liability deleted successfully"})
}
