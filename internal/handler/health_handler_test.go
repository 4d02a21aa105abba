package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/domain"
	"cardcomply/internal/handler"
	"cardcomply/internal/issuer"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubReadier struct{ err error }

func (r stubReadier) Ready() error { return r.err }

func get(h gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, path, http.NoBody)
	h(c)
	return w
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         handler.Pinger
		ready      error
		wantStatus int
		wantBody   string
	}{
		{"healthy", stubPinger{}, nil, http.StatusOK, `"analysisConfigured":true`},
		{"no database", nil, nil, http.StatusOK, `"status":"ok"`},
		{"analysis unconfigured", stubPinger{}, domain.ErrAnalysisNotConfigured, http.StatusOK, `"analysisConfigured":false`},
		{"database down", stubPinger{err: errors.New("refused")}, nil, http.StatusServiceUnavailable, "database not reachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db, stubReadier{err: tt.ready})

			w := get(h.Readiness, "/readyz")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}

	h := handler.NewHealthHandler(nil, stubReadier{})
	assert.Equal(t, http.StatusOK, get(h.Liveness, "/healthz").Code)
}

func TestIssuerHandler_List(t *testing.T) {
	catalog, err := issuer.Load("", "amex")
	require.NoError(t, err)
	h := handler.NewIssuerHandler(catalog)

	w := get(h.List, "/api/v1/issuers")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"amex"`)
	assert.Contains(t, w.Body.String(), `"key":"visa"`)
}
