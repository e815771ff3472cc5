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

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService     services.AssetServicer
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
	notifier         services.ChangeNotifier
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(
	assetService services.AssetServicer,
	dashboardService services.DashboardServicer,
	auditService services.AuditServicer,
	notifier services.ChangeNotifier,
) *AssetHandler {
	return &AssetHandler{
		assetService:     assetService,
		dashboardService: dashboardService,
		auditService:     auditService,
		notifier:         notifier,
	}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Type         string           `json:"type" binding:"required,asset_type" example:"stocks"`
	Name         string           `json:"name" binding:"required,min=1,max=200" example:"Infosys"`
	Symbol       string           `json:"symbol" binding:"max=20" example:"INFY"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"omitempty,gte=0" swaggertype:"number" example:"10"`
	AveragePrice *decimal.Decimal `json:"average_price" binding:"omitempty,gte=0" swaggertype:"number" example:"1300"`
	CurrentPrice *decimal.Decimal `json:"current_price" binding:"omitempty,gte=0" swaggertype:"number" example:"1500"`
	CurrentValue *decimal.Decimal `json:"current_value" binding:"omitempty,gte=0" swaggertype:"number"`
	Institution  string           `json:"institution" binding:"max=100"`
	RiskLevel    string           `json:"risk_level" binding:"omitempty,risk_level" example:"medium"`
	PurchaseDate *Date            `json:"purchase_date" swaggertype:"string" example:"2024-04-01"`
	Notes        string           `json:"notes" binding:"max=1000"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
type UpdateAssetRequest struct {
	Type         *string          `json:"type" binding:"omitempty,asset_type"`
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Symbol       *string          `json:"symbol" binding:"omitempty,max=20"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"omitempty,gte=0" swaggertype:"number"`
	AveragePrice *decimal.Decimal `json:"average_price" binding:"omitempty,gte=0" swaggertype:"number"`
	CurrentPrice *decimal.Decimal `json:"current_price" binding:"omitempty,gte=0" swaggertype:"number"`
	CurrentValue *decimal.Decimal `json:"current_value" binding:"omitempty,gte=0" swaggertype:"number"`
	Institution  *string          `json:"institution" binding:"omitempty,max=100"`
	RiskLevel    *string          `json:"risk_level" binding:"omitempty,risk_level"`
	PurchaseDate *Date            `json:"purchase_date" swaggertype:"string"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// CreateAsset handles the creation of a new asset.
// @Summary     Create an asset
// @Description Record a new holding. current_value defaults to quantity × current_price.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), userID, services.AssetInput{
		Type:         models.AssetType(req.Type),
		Name:         req.Name,
		Symbol:       req.Symbol,
		Quantity:     decimalOrZero(req.Quantity),
		AveragePrice: decimalOrZero(req.AveragePrice),
		CurrentPrice: decimalOrZero(req.CurrentPrice),
		CurrentValue: req.CurrentValue,
		Institution:  req.Institution,
		RiskLevel:    models.RiskLevel(req.RiskLevel),
		PurchaseDate: req.PurchaseDate.Ptr(),
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"type": asset.Type, "name": asset.Name, "current_value": asset.CurrentValue})
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles listing assets for the authenticated user.
// @Summary     Get assets
// @Description Get a paginated list of the user's assets, newest first
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by asset type"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
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

	var assetType *models.AssetType
	if v := c.Query("type"); v != "" {
		t := models.AssetType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.ErrInvalidAssetType)
			return
		}
		assetType = &t
	}

	result, err := h.assetService.GetUserAssets(c.Request.Context(), userID, page, assetType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAssetSummary handles the portfolio summary.
// @Summary     Get portfolio summary
// @Description Total value, invested amount and unrealized change, grouped by type and risk level
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dashboard.PortfolioSummary "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/summary [get]
func (h *AssetHandler) GetAssetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetPortfolioSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetAsset handles retrieving a specific asset.
// @Summary     Get asset by ID
// @Description Get a specific asset by ID
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset details"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles updating an existing asset.
// @Summary     Update asset
// @Description Update any subset of an asset's fields
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input or asset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.AssetUpdate{
		Name:         req.Name,
		Symbol:       req.Symbol,
		Quantity:     req.Quantity,
		AveragePrice: req.AveragePrice,
		CurrentPrice: req.CurrentPrice,
		CurrentValue: req.CurrentValue,
		Institution:  req.Institution,
		PurchaseDate: req.PurchaseDate.Ptr(),
		Notes:        req.Notes,
	}
	if req.Type != nil {
		t := models.AssetType(*req.Type)
		update.Type = &t
	}
	if req.RiskLevel != nil {
		r := models.RiskLevel(*req.RiskLevel)
		update.RiskLevel = &r
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), userID, assetID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ASSET", "asset", asset.ID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting an asset.
// @Summary     Delete asset
// @Description Soft-delete an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} MessageResponse "Asset deleted"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", assetID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
