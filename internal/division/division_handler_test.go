package division_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-employee/internal/division"
	divisionerrors "go-employee/internal/division/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDivisionService struct {
	getAllFn  func(ctx context.Context, name string) ([]division.DivisionResponse, error)
	getByIDFn func(ctx context.Context, id string) (division.DivisionResponse, error)
}

func (f *fakeDivisionService) GetAll(ctx context.Context, name string) ([]division.DivisionResponse, error) {
	return f.getAllFn(ctx, name)
}
func (f *fakeDivisionService) GetByID(ctx context.Context, id string) (division.DivisionResponse, error) {
	return f.getByIDFn(ctx, id)
}

type divisionEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Divisions []division.DivisionResponse `json:"divisions"`
		Division  *division.DivisionResponse  `json:"division"`
	} `json:"data"`
	Code string `json:"code"`
}

func TestDivisionHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDivisionService{
			getAllFn: func(ctx context.Context, name string) ([]division.DivisionResponse, error) {
				assert.Equal(t, "mobile", name)
				return []division.DivisionResponse{
					{ID: uuid.New().String(), Name: "Mobile Apps"},
				}, nil
			},
		}

		h := division.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/divisions?name=mobile", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env divisionEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, "Data divisi berhasil diambil", env.Message)
		assert.Len(t, env.Data.Divisions, 1)
		assert.Equal(t, "Mobile Apps", env.Data.Divisions[0].Name)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeDivisionService{
			getAllFn: func(ctx context.Context, name string) ([]division.DivisionResponse, error) {
				return nil, divisionerrors.ErrDivisionNotFound
			},
		}

		h := division.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/divisions", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var env divisionEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "NOT_FOUND", env.Code)
	})
}

func TestDivisionHandler_GetById(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		targetID := uuid.New().String()
		svc := &fakeDivisionService{
			getByIDFn: func(ctx context.Context, id string) (division.DivisionResponse, error) {
				assert.Equal(t, targetID, id)
				return division.DivisionResponse{ID: id, Name: "Backend"}, nil
			},
		}

		h := division.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/divisions/"+targetID, nil)
		c.Params = []gin.Param{{Key: "id", Value: targetID}}

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env divisionEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.NotNil(t, env.Data.Division)
		assert.Equal(t, "Backend", env.Data.Division.Name)
	})
}
