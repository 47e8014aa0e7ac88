package recommendation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation"
	recommendationerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation/errors"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRecommendationService struct {
	CreateFn    func(ctx context.Context, req recommendation.CreateRecommendationRequest) (recommendation.RecommendationResponse, error)
	ProcessFn   func(ctx context.Context, id string, req recommendation.ProcessRecommendationRequest) (recommendation.RecommendationResponse, error)
	PendingFn   func(ctx context.Context) ([]recommendation.PendingRecommendationResponse, error)
	ProcessedFn func(ctx context.Context) ([]recommendation.RecommendationResponse, error)
}

func (f *fakeRecommendationService) Create(ctx context.Context, req recommendation.CreateRecommendationRequest) (recommendation.RecommendationResponse, error) {
	return f.CreateFn(ctx, req)
}

func (f *fakeRecommendationService) Process(ctx context.Context, id string, req recommendation.ProcessRecommendationRequest) (recommendation.RecommendationResponse, error) {
	return f.ProcessFn(ctx, id, req)
}

func (f *fakeRecommendationService) Pending(ctx context.Context) ([]recommendation.PendingRecommendationResponse, error) {
	return f.PendingFn(ctx)
}

func (f *fakeRecommendationService) Processed(ctx context.Context) ([]recommendation.RecommendationResponse, error) {
	return f.ProcessedFn(ctx)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRecommendationHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()

		svc := &fakeRecommendationService{
			CreateFn: func(ctx context.Context, req recommendation.CreateRecommendationRequest) (recommendation.RecommendationResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, "kontrak2", req.Type)
				return recommendation.RecommendationResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					Type:       req.Type,
					Status:     recommendation.StatusPending,
				}, nil
			},
		}

		h := recommendation.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + employeeID + `","recommendation_type":"kontrak2","recommended_duration":12,"reason":"Performa baik"}`
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), recommendation.StatusPending)
	})

	t.Run("validation error", func(t *testing.T) {
		// Service kosong, tidak akan terpanggil jika binding gagal
		h := recommendation.NewHandler(&fakeRecommendationService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict pending already exists", func(t *testing.T) {
		svc := &fakeRecommendationService{
			CreateFn: func(ctx context.Context, req recommendation.CreateRecommendationRequest) (recommendation.RecommendationResponse, error) {
				return recommendation.RecommendationResponse{}, recommendationerrors.ErrPendingExists
			},
		}

		h := recommendation.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + uuid.New().String() + `","recommendation_type":"kontrak2","recommended_duration":6}`
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})

	t.Run("forbidden outside division", func(t *testing.T) {
		svc := &fakeRecommendationService{
			CreateFn: func(ctx context.Context, req recommendation.CreateRecommendationRequest) (recommendation.RecommendationResponse, error) {
				return recommendation.RecommendationResponse{}, recommendationerrors.ErrOutsideDivision
			},
		}

		h := recommendation.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + uuid.New().String() + `","recommendation_type":"terminate"}`
		req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRecommendationHandler_Process(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		recID := uuid.New().String()

		svc := &fakeRecommendationService{
			ProcessFn: func(ctx context.Context, id string, req recommendation.ProcessRecommendationRequest) (recommendation.RecommendationResponse, error) {
				assert.Equal(t, recID, id)
				assert.Equal(t, recommendation.StatusApproved, req.Status)
				return recommendation.RecommendationResponse{
					ID:     id,
					Status: req.Status,
				}, nil
			},
		}

		r := setupRouter()
		h := recommendation.NewHandler(svc)
		r.POST("/recommendations/:id/process", h.Process)

		body := `{"status":"approved","hr_notes":"Disetujui"}`
		req := httptest.NewRequest(http.MethodPost, "/recommendations/"+recID+"/process", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), recommendation.StatusApproved)
	})

	t.Run("validation error", func(t *testing.T) {
		h := recommendation.NewHandler(&fakeRecommendationService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/recommendations/123/process", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = []gin.Param{{Key: "id", Value: "123"}}

		h.Process(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already processed returns conflict", func(t *testing.T) {
		svc := &fakeRecommendationService{
			ProcessFn: func(ctx context.Context, id string, req recommendation.ProcessRecommendationRequest) (recommendation.RecommendationResponse, error) {
				return recommendation.RecommendationResponse{}, recommendationerrors.ErrAlreadyProcessed
			},
		}

		r := setupRouter()
		h := recommendation.NewHandler(svc)
		r.POST("/recommendations/:id/process", h.Process)

		body := `{"status":"rejected"}`
		req := httptest.NewRequest(http.MethodPost, "/recommendations/"+uuid.New().String()+"/process", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidState)
	})

	t.Run("not found error", func(t *testing.T) {
		svc := &fakeRecommendationService{
			ProcessFn: func(ctx context.Context, id string, req recommendation.ProcessRecommendationRequest) (recommendation.RecommendationResponse, error) {
				return recommendation.RecommendationResponse{}, recommendationerrors.ErrRecommendationNotFound
			},
		}

		r := setupRouter()
		h := recommendation.NewHandler(svc)
		r.POST("/recommendations/:id/process", h.Process)

		body := `{"status":"approved"}`
		req := httptest.NewRequest(http.MethodPost, "/recommendations/"+uuid.New().String()+"/process", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecommendationHandler_Listings(t *testing.T) {
	t.Run("pending success", func(t *testing.T) {
		svc := &fakeRecommendationService{
			PendingFn: func(ctx context.Context) ([]recommendation.PendingRecommendationResponse, error) {
				return []recommendation.PendingRecommendationResponse{
					{
						RecommendationResponse: recommendation.RecommendationResponse{
							ID:     uuid.New().String(),
							Status: recommendation.StatusPending,
						},
						EmployeeName: "Dewi Lestari",
						Urgency:      "high",
					},
				}, nil
			},
		}

		h := recommendation.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/recommendations/pending", nil)

		h.Pending(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dewi Lestari")
		assert.Contains(t, w.Body.String(), `"urgency":"high"`)
	})

	t.Run("processed success", func(t *testing.T) {
		svc := &fakeRecommendationService{
			ProcessedFn: func(ctx context.Context) ([]recommendation.RecommendationResponse, error) {
				return []recommendation.RecommendationResponse{
					{ID: uuid.New().String(), Status: recommendation.StatusApproved},
				}, nil
			},
		}

		h := recommendation.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/recommendations/processed", nil)

		h.Processed(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), recommendation.StatusApproved)
	})

	t.Run("pending service error", func(t *testing.T) {
		svc := &fakeRecommendationService{
			PendingFn: func(ctx context.Context) ([]recommendation.PendingRecommendationResponse, error) {
				return nil, apperror.ErrInternal
			},
		}

		h := recommendation.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/recommendations/pending", nil)

		h.Pending(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
