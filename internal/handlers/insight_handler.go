package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/pagination"
	"wealthtracker/internal/services"
)

// InsightHandler handles insight-related requests.
type InsightHandler struct {
	insightService   services.InsightServicer
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
	notifier         services.ChangeNotifier
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(
	insightService services.InsightServicer,
	dashboardService services.DashboardServicer,
	auditService services.AuditServicer,
	notifier services.ChangeNotifier,
) *InsightHandler {
	return &InsightHandler{
		insightService:   insightService,
		dashboardService: dashboardService,
		auditService:     auditService,
		notifier:         notifier,
	}
}

// GetInsights handles listing insights for the authenticated user.
// @Summary     Get insights
// @Description Get a paginated list of the user's insights, newest first
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       unread    query bool false "Only unread insights"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Insight] "Paginated insights"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
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

	unreadOnly := false
	if v := c.Query("unread"); v != "" {
		unreadOnly, err = strconv.ParseBool(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unread must be true or false"))
			return
		}
	}

	result, err := h.insightService.GetUserInsights(c.Request.Context(), userID, page, unreadOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateInsights regenerates the user's template insights.
// @Summary     Generate insights
// @Description Replace previously generated insights with fresh ones derived from the current dashboard
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Insight "Generated insights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/generate [post]
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insights, err := h.dashboardService.GenerateInsights(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "GENERATE_INSIGHTS", "insight", "", c.ClientIP(),
		map[string]interface{}{"count": len(insights)})
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// MarkInsightRead handles marking an insight as read.
// @Summary     Mark insight read
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Insight ID"
// @Success     200 {object} models.Insight "Updated insight"
// @Failure     400 {object} ErrorResponse "Invalid insight ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Insight not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/{id}/read [put]
func (h *InsightHandler) MarkInsightRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insightID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	insight, err := h.insightService.MarkInsightRead(c.Request.Context(), userID, insightID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// DeleteInsight handles deleting an insight.
// @Summary     Delete insight
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Insight ID"
// @Success     200 {object} MessageResponse "Insight deleted"
// @Failure     400 {object} ErrorResponse "Invalid insight ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Insight not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/{id} [delete]
func (h *InsightHandler) DeleteInsight(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insightID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.insightService.DeleteInsight(c.Request.Context(), userID, insightID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INSIGHT", "insight", insightID, c.ClientIP(), nil)
	h.notifier.NotifyChange(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Insight deleted successfully"})
}
