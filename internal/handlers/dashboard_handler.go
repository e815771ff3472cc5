package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/middleware"
	"wealthtracker/internal/pagination"
	"wealthtracker/internal/services"
)

const defaultHistoryRange = 365 * 24 * time.Hour

// DashboardStreamer keeps a websocket connection subscribed to a user's dashboard.
type DashboardStreamer interface {
	Serve(ctx context.Context, userID string, conn *websocket.Conn)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	snapshotService  services.NetWorthSnapshotServicer
	streamer         DashboardStreamer
	upgrader         websocket.Upgrader
}

// NewDashboardHandler creates a new DashboardHandler. Websocket upgrades are
// accepted from allowedOrigins only.
func NewDashboardHandler(
	dashboardService services.DashboardServicer,
	snapshotService services.NetWorthSnapshotServicer,
	streamer DashboardStreamer,
	allowedOrigins []string,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		snapshotService:  snapshotService,
		streamer:         streamer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// GetDashboard returns the dashboard view-model.
// @Summary     Get dashboard
// @Description Totals, net worth, allocation, upcoming dues, goals with progress, recent transactions and insights
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dashboard.View "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": view})
}

// StreamDashboard upgrades to a websocket and pushes the dashboard on every change.
// @Summary     Stream dashboard
// @Description Websocket. The current dashboard is sent on connect and again after every change. Browsers pass the token as access_token.
// @Tags        dashboard
// @Security    BearerAuth
// @Param       access_token query string false "Access token when headers cannot be set"
// @Success     101 "Switching protocols"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/stream [get]
func (h *DashboardHandler) StreamDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Get().Debugw("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}
	defer conn.Close()

	h.streamer.Serve(c.Request.Context(), userID, conn)
}

// GetNetWorthHistory lists the user's net worth snapshots.
// @Summary     Get net worth history
// @Description Net worth snapshots between from_date and to_date, newest first. Defaults to the last year.
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string false "Earliest date (YYYY-MM-DD or RFC 3339)"
// @Param       to_date   query string false "Latest date, inclusive (YYYY-MM-DD or RFC 3339)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.NetWorthSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/history [get]
func (h *DashboardHandler) GetNetWorthHistory(c *gin.Context) {
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

	from, to, err := historyRange(c, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.snapshotService.GetSnapshots(c.Request.Context(), userID, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func historyRange(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	to := now
	toParam, err := queryDate(c, "to_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if toParam != nil {
		to = endOfDay(*toParam)
	}

	from := to.Add(-defaultHistoryRange)
	fromParam, err := queryDate(c, "from_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if fromParam != nil {
		from = *fromParam
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must not be after to_date")
	}
	return from, to, nil
}
