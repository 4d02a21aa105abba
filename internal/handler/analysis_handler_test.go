package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cardcomply/internal/domain"
	"cardcomply/internal/handler"
	"cardcomply/internal/service"
	"cardcomply/mocks"
)

func TestAnalysisHandler_Share(t *testing.T) {
	svc := new(mocks.MockShareService)
	h := handler.NewAnalysisHandler(svc)

	id := uuid.New()
	svc.On("Share", mock.Anything, service.ShareInput{RunID: id, RecipientEmail: "a@b.co"}).
		Return(&service.ShareLink{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), Emailed: true}, nil)

	w, c := postJSON(t, "/api/v1/analyses/"+id.String()+"/share", `{"recipientEmail":"a@b.co"}`)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Share(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)
}

func TestAnalysisHandler_Share_EmptyBody(t *testing.T) {
	svc := new(mocks.MockShareService)
	h := handler.NewAnalysisHandler(svc)

	id := uuid.New()
	svc.On("Share", mock.Anything, service.ShareInput{RunID: id}).
		Return(&service.ShareLink{Token: "tok"}, nil)

	w, c := postJSON(t, "/api/v1/analyses/"+id.String()+"/share", "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Share(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAnalysisHandler_Share_NotFound(t *testing.T) {
	svc := new(mocks.MockShareService)
	h := handler.NewAnalysisHandler(svc)

	id := uuid.New()
	svc.On("Share", mock.Anything, mock.Anything).Return(nil, domain.ErrAnalysisRunNotFound)

	w, c := postJSON(t, "/api/v1/analyses/"+id.String()+"/share", "{}")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Share(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ANALYSIS_NOT_FOUND")
}

func TestAnalysisHandler_Shared(t *testing.T) {
	svc := new(mocks.MockShareService)
	h := handler.NewAnalysisHandler(svc)

	svc.On("Resolve", mock.Anything, "good").Return(&domain.AnalysisRun{ID: uuid.New(), Issuer: "amex"}, nil)
	svc.On("Resolve", mock.Anything, "bad").Return(nil, domain.ErrShareTokenInvalid)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/shared/good", http.NoBody)
	c.Params = gin.Params{{Key: "token", Value: "good"}}
	h.Shared(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"issuer":"amex"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/shared/bad", http.NoBody)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	h.Shared(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalysisHandler_ExportShared(t *testing.T) {
	svc := new(mocks.MockShareService)
	h := handler.NewAnalysisHandler(svc)

	run := &domain.AnalysisRun{
		ID:        uuid.New(),
		Issuer:    "amex",
		Results:   []byte(`[{"id":"logo-size","name":"Logo Size","status":"failed","category":"logoUsage","assessmentConfidence":90,"passConfidence":15,"actionableSteps":["Increase logo height"]}]`),
		CreatedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	svc.On("Resolve", mock.Anything, "good").Return(run, nil)
	svc.On("Resolve", mock.Anything, "corrupt").Return(&domain.AnalysisRun{ID: uuid.New(), Results: []byte(`{`)}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/shared/good/export", http.NoBody)
	c.Params = gin.Params{{Key: "token", Value: "good"}}
	h.ExportShared(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="amex_compliance_2025-05-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "logo-size,Logo Size,logoUsage,failed,90%,15%")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/shared/corrupt/export", http.NoBody)
	c.Params = gin.Params{{Key: "token", Value: "corrupt"}}
	h.ExportShared(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
