package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
	"wealthtracker/internal/services"
)

// --- mock insight service ---

type mockInsightService struct {
	getUserInsightsFn func(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Insight], error)
	markInsightReadFn func(ctx context.Context, userID, insightID string) (*models.Insight, error)
	deleteInsightFn   func(ctx context.Context, userID, insightID string) error
}

func (m *mockInsightService) GetUserInsights(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Insight], error) {
	if m.getUserInsightsFn != nil {
		return m.getUserInsightsFn(ctx, userID, page, unreadOnly)
	}
	resp := pagination.NewPageResponse([]models.Insight{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockInsightService) MarkInsightRead(ctx context.Context, userID, insightID string) (*models.Insight, error) {
	if m.markInsightReadFn != nil {
		return m.markInsightReadFn(ctx, userID, insightID)
	}
	return &models.Insight{IsRead: true}, nil
}

func (m *mockInsightService) DeleteInsight(ctx context.Context, userID, insightID string) error {
	if m.deleteInsightFn != nil {
		return m.deleteInsightFn(ctx, userID, insightID)
	}
	return nil
}

func (m *mockInsightService) ReplaceGeneratedInsights(_ context.Context, _ string, insights []models.Insight) ([]models.Insight, error) {
	return insights, nil
}

// verify interface compliance
var _ services.InsightServicer = (*mockInsightService)(nil)

func setupInsightRouter(handler *InsightHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/insights", handler.GetInsights)
	auth.POST("/insights/generate", handler.GenerateInsights)
	auth.PUT("/insights/:id/read", handler.MarkInsightRead)
	auth.DELETE("/insights/:id", handler.DeleteInsight)
	return r
}

func TestInsightHandler_GetInsights(t *testing.T) {
	t.Run("passes_unread_filter", func(t *testing.T) {
		var gotUnread bool
		svc := &mockInsightService{
			getUserInsightsFn: func(_ context.Context, _ string, _ pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Insight], error) {
				gotUnread = unreadOnly
				resp := pagination.NewPageResponse([]models.Insight{{Title: "Tip"}}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupInsightRouter(NewInsightHandler(svc, &mockDashboardService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "GET", "/insights?unread=true", "")

		assertStatus(t, rec, http.StatusOK)
		if !gotUnread {
			t.Error("expected unread filter")
		}
		if data := parseJSON(t, rec)["data"].([]interface{}); len(data) != 1 {
			t.Errorf("expected 1 insight, got %d", len(data))
		}
	})

	t.Run("returns_400_on_bad_unread", func(t *testing.T) {
		r := setupInsightRouter(NewInsightHandler(&mockInsightService{}, &mockDashboardService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "GET", "/insights?unread=maybe", "")

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestInsightHandler_GenerateInsights(t *testing.T) {
	dash := &mockDashboardService{
		generateInsightsFn: func(_ context.Context, userID string) ([]models.Insight, error) {
			return []models.Insight{
				{UserID: userID, Type: models.InsightTypeWarning, Title: "Liabilities exceed assets", Source: models.InsightSourceGenerated},
			}, nil
		},
	}
	audit := &mockAuditService{}
	notifier := &mockNotifier{}
	r := setupInsightRouter(NewInsightHandler(&mockInsightService{}, dash, audit, notifier))

	rec := doRequest(r, "POST", "/insights/generate", "")

	assertStatus(t, rec, http.StatusOK)
	insights := parseJSON(t, rec)["insights"].([]interface{})
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].(map[string]interface{})["source"] != "generated" {
		t.Errorf("expected generated source, got %v", insights[0])
	}
	if acts := audit.actions(); len(acts) != 1 || acts[0] != "GENERATE_INSIGHTS" {
		t.Errorf("expected GENERATE_INSIGHTS audit entry, got %v", acts)
	}
	if notifier.count() != 1 {
		t.Errorf("expected one change notification, got %d", notifier.count())
	}
}

func TestInsightHandler_MarkInsightRead(t *testing.T) {
	t.Run("returns_read_insight", func(t *testing.T) {
		r := setupInsightRouter(NewInsightHandler(&mockInsightService{}, &mockDashboardService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "PUT", "/insights/"+testOtherID+"/read", "")

		assertStatus(t, rec, http.StatusOK)
		if parseJSON(t, rec)["insight"].(map[string]interface{})["is_read"] != true {
			t.Errorf("expected is_read true, got %s", rec.Body.String())
		}
	})

	t.Run("returns_404_for_other_users_insight", func(t *testing.T) {
		svc := &mockInsightService{
			markInsightReadFn: func(context.Context, string, string) (*models.Insight, error) {
				return nil, apperrors.ErrInsightNotFound
			},
		}
		r := setupInsightRouter(NewInsightHandler(svc, &mockDashboardService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "PUT", "/insights/"+testOtherID+"/read", "")

		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "INSIGHT_NOT_FOUND")
	})
}

func TestInsightHandler_DeleteInsight(t *testing.T) {
	var deleted string
	svc := &mockInsightService{
		deleteInsightFn: func(_ context.Context, _, id string) error {
			deleted = id
			return nil
		},
	}
	r := setupInsightRouter(NewInsightHandler(svc, &mockDashboardService{}, &mockAuditService{}, &mockNotifier{}))

	rec := doRequest(r, "DELETE", "/insights/"+testOtherID, "")

	assertStatus(t, rec, http.StatusOK)
	if deleted != testOtherID {
		t.Errorf("expected %s deleted, got %q", testOtherID, deleted)
	}
}
