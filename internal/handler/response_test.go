package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardcomply/internal/domain"
	"cardcomply/internal/handler"
)

func TestMapDomainError_ClientMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			"wrapped invalid request keeps only the detail",
			fmt.Errorf("static ad 2: %w", fmt.Errorf("%w: static ad is not valid base64", domain.ErrInvalidRequest)),
			"INVALID_REQUEST",
			"invalid request: static ad is not valid base64",
		},
		{
			"unknown issuer",
			fmt.Errorf("%w: unknown issuer %q", domain.ErrInvalidRequest, "discover"),
			"INVALID_REQUEST",
			`invalid request: unknown issuer "discover"`,
		},
		{
			"bare invalid request",
			domain.ErrInvalidRequest,
			"INVALID_REQUEST",
			"invalid request",
		},
		{
			"too many images",
			fmt.Errorf("resolving assets: %w", fmt.Errorf("%w: 5 images, at most 4 allowed", domain.ErrTooManyImages)),
			"TOO_MANY_IMAGES",
			"too many images in submission: 5 images, at most 4 allowed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
