package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wealthtracker/internal/logger"
	"wealthtracker/internal/services"
)

// PipelineHandler serves endpoints called by scheduled jobs.
type PipelineHandler struct {
	snapshotService services.NetWorthSnapshotServicer
	now             func() time.Time
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(snapshotService services.NetWorthSnapshotServicer) *PipelineHandler {
	return &PipelineHandler{snapshotService: snapshotService, now: time.Now}
}

// RecordSnapshotsRequest represents the optional payload for recording snapshots.
type RecordSnapshotsRequest struct {
	RecordedAt *Date `json:"recorded_at" swaggertype:"string" example:"2026-10-19"`
}

// RecordSnapshotsResponse reports how many snapshots were written.
type RecordSnapshotsResponse struct {
	Recorded   int       `json:"recorded" example:"42"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordSnapshots records a net worth snapshot for every user with holdings.
// @Summary     Record net worth snapshots
// @Description Computes and upserts a snapshot per user. recorded_at defaults to the start of the current UTC day.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body     RecordSnapshotsRequest false "Snapshot time"
// @Success     200     {object} RecordSnapshotsResponse "Snapshots recorded"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Invalid API key"
// @Failure     503     {object} ErrorResponse "Pipeline not configured"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /pipeline/snapshots [post]
func (h *PipelineHandler) RecordSnapshots(c *gin.Context) {
	var req RecordSnapshotsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
	}

	recordedAt := h.now().UTC().Truncate(24 * time.Hour)
	if req.RecordedAt != nil {
		recordedAt = req.RecordedAt.Time.UTC()
	}

	count, err := h.snapshotService.ComputeAndRecordSnapshots(c.Request.Context(), recordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Get().Infow("net worth snapshots recorded", "count", count, "recorded_at", recordedAt)

	c.JSON(http.StatusOK, RecordSnapshotsResponse{Recorded: count, RecordedAt: recordedAt})
}
