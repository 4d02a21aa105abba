package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cardcomply/internal/config"
	"cardcomply/internal/domain"
	"cardcomply/internal/service"
	"cardcomply/mocks"
)

func testShareConfig() config.ShareConfig {
	return config.ShareConfig{
		Secret: "test-share-secret",
		Expiry: time.Hour,
		Issuer: "cardcomply-test",
	}
}

func TestShareService_ShareAndResolve(t *testing.T) {
	runs := new(mocks.MockAnalysisRunRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewShareService(runs, sender, testShareConfig(), zap.NewNop())

	run := &domain.AnalysisRun{ID: uuid.New(), Issuer: "amex"}
	runs.On("GetByID", mock.Anything, run.ID).Return(run, nil)
	sender.On("SendShareLinkEmail", mock.Anything, "reviewer@example.com", "amex", mock.AnythingOfType("string")).Return(nil)

	link, err := svc.Share(context.Background(), service.ShareInput{RunID: run.ID, RecipientEmail: "reviewer@example.com"})
	require.NoError(t, err)
	assert.True(t, link.Emailed)
	assert.NotEmpty(t, link.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), link.ExpiresAt, 5*time.Second)

	got, err := svc.Resolve(context.Background(), link.Token)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	sender.AssertExpectations(t)
}

func TestShareService_Share_InvalidRecipient(t *testing.T) {
	runs := new(mocks.MockAnalysisRunRepo)
	svc := service.NewShareService(runs, nil, testShareConfig(), zap.NewNop())

	_, err := svc.Share(context.Background(), service.ShareInput{RunID: uuid.New(), RecipientEmail: "not an email"})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	runs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestShareService_Share_RunNotFound(t *testing.T) {
	runs := new(mocks.MockAnalysisRunRepo)
	svc := service.NewShareService(runs, nil, testShareConfig(), zap.NewNop())

	id := uuid.New()
	runs.On("GetByID", mock.Anything, id).Return(nil, domain.ErrAnalysisRunNotFound)

	_, err := svc.Share(context.Background(), service.ShareInput{RunID: id})
	assert.ErrorIs(t, err, domain.ErrAnalysisRunNotFound)
}

func TestShareService_Share_EmailFailureStillReturnsLink(t *testing.T) {
	runs := new(mocks.MockAnalysisRunRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewShareService(runs, sender, testShareConfig(), zap.NewNop())

	run := &domain.AnalysisRun{ID: uuid.New(), Issuer: "visa"}
	runs.On("GetByID", mock.Anything, run.ID).Return(run, nil)
	sender.On("SendShareLinkEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses throttled"))

	link, err := svc.Share(context.Background(), service.ShareInput{RunID: run.ID, RecipientEmail: "a@b.co"})
	require.NoError(t, err)
	assert.False(t, link.Emailed)
	assert.NotEmpty(t, link.Token)
}

func TestShareService_Resolve_Rejections(t *testing.T) {
	cfg := testShareConfig()
	runID := uuid.New()

	sign := func(secret string, claims *service.ShareClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}
	valid := func() *service.ShareClaims {
		return &service.ShareClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				Audience:  jwt.ClaimStrings{"analysis_share"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			RunID: runID,
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongAudience := valid()
	wrongAudience.Audience = jwt.ClaimStrings{"access"}
	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", sign("other-secret", valid())},
		{"expired", sign(cfg.Secret, expired)},
		{"wrong audience", sign(cfg.Secret, wrongAudience)},
		{"wrong issuer", sign(cfg.Secret, wrongIssuer)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := new(mocks.MockAnalysisRunRepo)
			svc := service.NewShareService(runs, nil, cfg, zap.NewNop())

			_, err := svc.Resolve(context.Background(), tt.token)

			assert.ErrorIs(t, err, domain.ErrShareTokenInvalid)
			runs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestShareService_Resolve_DeletedRun(t *testing.T) {
	runs := new(mocks.MockAnalysisRunRepo)
	svc := service.NewShareService(runs, nil, testShareConfig(), zap.NewNop())

	run := &domain.AnalysisRun{ID: uuid.New(), Issuer: "amex"}
	runs.On("GetByID", mock.Anything, run.ID).Return(run, nil).Once()
	link, err := svc.Share(context.Background(), service.ShareInput{RunID: run.ID})
	require.NoError(t, err)

	runs.On("GetByID", mock.Anything, run.ID).Return(nil, domain.ErrAnalysisRunNotFound)
	_, err = svc.Resolve(context.Background(), link.Token)
	assert.ErrorIs(t, err, domain.ErrShareTokenInvalid)
}
