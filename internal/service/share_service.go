package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardcomply/internal/config"
	"cardcomply/internal/domain"
	"cardcomply/internal/port"
)

const shareAudience = "analysis_share"

// ShareClaims are the JWT claims of an analysis share token.
type ShareClaims struct {
	jwt.RegisteredClaims
	RunID      uuid.UUID `json:"run_id"`
	CardIssuer string    `json:"card_issuer"`
}

// ShareInput is the DTO for share link requests.
type ShareInput struct {
	RunID          uuid.UUID
	RecipientEmail string
}

// ShareLink is an issued share token.
type ShareLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Emailed   bool      `json:"emailed"`
}

// ShareService issues and resolves signed links to persisted analysis runs.
type ShareService interface {
	Share(ctx context.Context, input ShareInput) (*ShareLink, error)
	Resolve(ctx context.Context, token string) (*domain.AnalysisRun, error)
}

type shareService struct {
	runRepo port.AnalysisRunRepository
	sender  port.EmailSender
	cfg     config.ShareConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewShareService creates a new ShareService implementation. sender may be nil.
func NewShareService(
	runRepo port.AnalysisRunRepository,
	sender port.EmailSender,
	cfg config.ShareConfig,
	logger *zap.Logger,
) ShareService {
	return &shareService{
		runRepo: runRepo,
		sender:  sender,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *shareService) Share(ctx context.Context, input ShareInput) (*ShareLink, error) {
	recipient := strings.TrimSpace(input.RecipientEmail)
	if recipient != "" {
		if _, err := mail.ParseAddress(recipient); err != nil {
			return nil, fmt.Errorf("%w: invalid recipient email", domain.ErrInvalidRequest)
		}
	}

	run, err := s.runRepo.GetByID(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.Expiry)
	claims := &ShareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   run.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{shareAudience},
		},
		RunID:      run.ID,
		CardIssuer: run.Issuer,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing share token: %w", err)
	}

	link := &ShareLink{Token: token, ExpiresAt: expiresAt}
	if recipient != "" && s.sender != nil {
		if err := s.sender.SendShareLinkEmail(ctx, recipient, run.Issuer, token); err != nil {
			s.logger.Warn("share link email failed", zap.String("run_id", run.ID.String()), zap.Error(err))
		} else {
			link.Emailed = true
		}
	}
	return link, nil
}

func (s *shareService) Resolve(ctx context.Context, token string) (*domain.AnalysisRun, error) {
	claims := &ShareClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithAudience(shareAudience),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrShareTokenInvalid
	}

	run, err := s.runRepo.GetByID(ctx, claims.RunID)
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisRunNotFound) {
			return nil, domain.ErrShareTokenInvalid
		}
		return nil, err
	}
	return run, nil
}
