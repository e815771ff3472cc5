package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
	"wealthtracker/internal/services"
)

// --- mock liability service ---

type mockLiabilityService struct {
	createLiabilityFn    func(ctx context.Context, userID string, in services.LiabilityInput) (*models.Liability, error)
	getUserLiabilitiesFn func(ctx context.Context, userID string, page pagination.PageRequest, liabilityType *models.LiabilityType) (*pagination.PageResponse[models.Liability], error)
	getLiabilityByIDFn   func(ctx context.Context, userID, liabilityID string) (*models.Liability, error)
	updateLiabilityFn    func(ctx context.Context, userID, liabilityID string, update services.LiabilityUpdate) (*models.Liability, error)
	deleteLiabilityFn    func(ctx context.Context, userID, liabilityID string) error
}

func (m *mockLiabilityService) CreateLiability(ctx context.Context, userID string, in services.LiabilityInput) (*models.Liability, error) {
	if m.createLiabilityFn != nil {
		return m.createLiabilityFn(ctx, userID, in)
	}
	return &models.Liability{}, nil
}

func (m *mockLiabilityService) GetUserLiabilities(ctx context.Context, userID string, page pagination.PageRequest, liabilityType *models.LiabilityType) (*pagination.PageResponse[models.Liability], error) {
	if m.getUserLiabilitiesFn != nil {
		return m.getUserLiabilitiesFn(ctx, userID, page, liabilityType)
	}
	resp := pagination.NewPageResponse([]models.Liability{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLiabilityService) GetLiabilityByID(ctx context.Context, userID, liabilityID string) (*models.Liability, error) {
	if m.getLiabilityByIDFn != nil {
		return m.getLiabilityByIDFn(ctx, userID, liabilityID)
	}
	return &models.Liability{}, nil
}

func (m *mockLiabilityService) UpdateLiability(ctx context.Context, userID, liabilityID string, update services.LiabilityUpdate) (*models.Liability, error) {
	if m.updateLiabilityFn != nil {
		return m.updateLiabilityFn(ctx, userID, liabilityID, update)
	}
	return &models.Liability{}, nil
}

func (m *mockLiabilityService) DeleteLiability(ctx context.Context, userID, liabilityID string) error {
	if m.deleteLiabilityFn != nil {
		return m.deleteLiabilityFn(ctx, userID, liabilityID)
	}
	return nil
}

// verify interface compliance
var _ services.LiabilityServicer = (*mockLiabilityService)(nil)

func setupLiabilityRouter(handler *LiabilityHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/liabilities", handler.CreateLiability)
	auth.GET("/liabilities", handler.GetLiabilities)
	auth.GET("/liabilities/:id", handler.GetLiability)
	auth.PUT("/liabilities/:id", handler.UpdateLiability)
	auth.DELETE("/liabilities/:id", handler.DeleteLiability)
	return r
}

func TestLiabilityHandler_CreateLiability(t *testing.T) {
	t.Run("returns_201_on_success", func(t *testing.T) {
		var got services.LiabilityInput
		svc := &mockLiabilityService{
			createLiabilityFn: func(_ context.Context, userID string, in services.LiabilityInput) (*models.Liability, error) {
				got = in
				return &models.Liability{Base: models.Base{ID: testOtherID}, UserID: userID, Name: in.Name, Type: in.Type}, nil
			},
		}
		notifier := &mockNotifier{}
		r := setupLiabilityRouter(NewLiabilityHandler(svc, &mockAuditService{}, notifier))

		rec := doRequest(r, "POST", "/liabilities",
			`{"type":"home_loan","name":"Home loan","outstanding_amount":4200000,"interest_rate":8.5,"next_due_date":"2026-11-05"}`)

		assertStatus(t, rec, http.StatusCreated)
		if !got.InterestRate.Equal(decimal.RequireFromString("8.5")) {
			t.Errorf("expected interest 8.5, got %s", got.InterestRate)
		}
		if got.NextDueDate == nil || got.NextDueDate.Day() != 5 {
			t.Errorf("expected due date on the 5th, got %v", got.NextDueDate)
		}
		if parseJSON(t, rec)["liability"].(map[string]interface{})["name"] != "Home loan" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
		if notifier.count() != 1 {
			t.Errorf("expected one change notification, got %d", notifier.count())
		}
	})

	t.Run("accepts_zero_outstanding", func(t *testing.T) {
		r := setupLiabilityRouter(NewLiabilityHandler(&mockLiabilityService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "POST", "/liabilities", `{"type":"credit_card","name":"Card","outstanding_amount":0}`)

		assertStatus(t, rec, http.StatusCreated)
	})

	t.Run("returns_400_without_outstanding", func(t *testing.T) {
		r := setupLiabilityRouter(NewLiabilityHandler(&mockLiabilityService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "POST", "/liabilities", `{"type":"credit_card","name":"Card"}`)

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_on_rate_above_100", func(t *testing.T) {
		r := setupLiabilityRouter(NewLiabilityHandler(&mockLiabilityService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "POST", "/liabilities",
			`{"type":"personal_loan","name":"Loan","outstanding_amount":10,"interest_rate":120}`)

		assertStatus(t, rec, http.StatusBadRequest)
	})
}

func TestLiabilityHandler_GetLiabilities(t *testing.T) {
	t.Run("passes_type_filter", func(t *testing.T) {
		var gotType *models.LiabilityType
		svc := &mockLiabilityService{
			getUserLiabilitiesFn: func(_ context.Context, _ string, _ pagination.PageRequest, lt *models.LiabilityType) (*pagination.PageResponse[models.Liability], error) {
				gotType = lt
				resp := pagination.NewPageResponse([]models.Liability{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupLiabilityRouter(NewLiabilityHandler(svc, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "GET", "/liabilities?type=car_loan", "")

		assertStatus(t, rec, http.StatusOK)
		if gotType == nil || *gotType != models.LiabilityTypeCarLoan {
			t.Errorf("expected car_loan filter, got %v", gotType)
		}
	})

	t.Run("returns_400_on_invalid_type", func(t *testing.T) {
		r := setupLiabilityRouter(NewLiabilityHandler(&mockLiabilityService{}, &mockAuditService{}, &mockNotifier{}))

		rec := doRequest(r, "GET", "/liabilities?type=mortgage-ish", "")

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_LIABILITY_TYPE")
	})
}

func TestLiabilityHandler_GetLiability(t *testing.T) {
	svc := &mockLiabilityService{
		getLiabilityByIDFn: func(context.Context, string, string) (*models.Liability, error) {
			return nil, apperrors.ErrLiabilityNotFound
		},
	}
	r := setupLiabilityRouter(NewLiabilityHandler(svc, &mockAuditService{}, &mockNotifier{}))

	rec := doRequest(r, "GET", "/liabilities/"+testOtherID, "")

	assertStatus(t, rec, http.StatusNotFound)
	assertErrorCode(t, parseJSON(t, rec), "LIABILITY_NOT_FOUND")
}

func TestLiabilityHandler_UpdateLiability(t *testing.T) {
	var got services.LiabilityUpdate
	svc := &mockLiabilityService{
		updateLiabilityFn: func(_ context.Context, _, id string, update services.LiabilityUpdate) (*models.Liability, error) {
			got = update
			return &models.Liability{Base: models.Base{ID: id}}, nil
		},
	}
	audit := &mockAuditService{}
	r := setupLiabilityRouter(NewLiabilityHandler(svc, audit, &mockNotifier{}))

	rec := doRequest(r, "PUT", "/liabilities/"+testOtherID, `{"outstanding_amount":3900000}`)

	assertStatus(t, rec, http.StatusOK)
	if got.OutstandingAmount == nil || !got.OutstandingAmount.Equal(decimal.NewFromInt(3900000)) {
		t.Errorf("expected outstanding 3900000, got %v", got.OutstandingAmount)
	}
	if got.NextDueDate != nil {
		t.Error("due date should be untouched")
	}
	if acts := audit.actions(); len(acts) != 1 || acts[0] != "UPDATE_LIABILITY" {
		t.Errorf("expected UPDATE_LIABILITY audit entry, got %v", acts)
	}
}

func TestLiabilityHandler_DeleteLiability(t *testing.T) {
	notifier := &mockNotifier{}
	r := setupLiabilityRouter(NewLiabilityHandler(&mockLiabilityService{}, &mockAuditService{}, notifier))

	rec := doRequest(r, "DELETE", "/liabilities/"+testOtherID, "")

	assertStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["message"] != "Liability deleted successfully" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
	if notifier.count() != 1 {
		t.Errorf("expected one change notification, got %d", notifier.count())
	}
}
