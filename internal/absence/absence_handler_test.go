package absence_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/absence"
	absenceerrors "go-payroll/internal/absence/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	absence.Service
	recordFn func(ctx context.Context, req absence.RecordAbsenceRequest) (absence.AbsenceResponse, error)
	getFn    func(ctx context.Context, employeeID string, year, month int) (absence.AbsenceResponse, error)
}

func (f *fakeService) Record(ctx context.Context, req absence.RecordAbsenceRequest) (absence.AbsenceResponse, error) {
	return f.recordFn(ctx, req)
}

func (f *fakeService) Get(ctx context.Context, employeeID string, year, month int) (absence.AbsenceResponse, error) {
	return f.getFn(ctx, employeeID, year, month)
}

func newRouter(svc absence.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	absence.RegisterRoutes(r.Group("/api/v1"), absence.NewHandler(svc))
	return r
}

func TestAbsenceHandler_Record(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeService{
			recordFn: func(ctx context.Context, req absence.RecordAbsenceRequest) (absence.AbsenceResponse, error) {
				assert.Equal(t, 2, *req.AbsenceDays)
				return absence.AbsenceResponse{EmployeeID: req.EmployeeID, AbsenceDays: *req.AbsenceDays}, nil
			},
		}
		body, _ := json.Marshal(map[string]any{
			"employee_id":  "6f1c2d1e-6f43-4a8c-9d0a-2b4f6c1e9a11",
			"year":         2024,
			"month":        3,
			"absence_days": 2,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/absences", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("zero absence days is accepted", func(t *testing.T) {
		called := false
		svc := &fakeService{
			recordFn: func(ctx context.Context, req absence.RecordAbsenceRequest) (absence.AbsenceResponse, error) {
				called = true
				return absence.AbsenceResponse{}, nil
			},
		}
		body := []byte(`{"employee_id":"6f1c2d1e-6f43-4a8c-9d0a-2b4f6c1e9a11","year":2024,"month":3,"absence_days":0}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/absences", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, called)
	})

	t.Run("invalid month is rejected before the service", func(t *testing.T) {
		svc := &fakeService{}
		body := []byte(`{"employee_id":"6f1c2d1e-6f43-4a8c-9d0a-2b4f6c1e9a11","year":2024,"month":13,"absence_days":1}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/absences", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAbsenceHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeService{
			getFn: func(ctx context.Context, employeeID string, year, month int) (absence.AbsenceResponse, error) {
				assert.Equal(t, 2024, year)
				assert.Equal(t, 3, month)
				return absence.AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/absences/6f1c2d1e-6f43-4a8c-9d0a-2b4f6c1e9a11/2024/3", nil)

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non numeric period", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/absences/6f1c2d1e-6f43-4a8c-9d0a-2b4f6c1e9a11/abc/3", nil)

		newRouter(&fakeService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
