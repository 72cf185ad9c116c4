package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/product-catalog-api/internal/config"
	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/dom/product-catalog-api/internal/repository"
	"github.com/dom/product-catalog-api/internal/token"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService orchestrates the session lifecycle: login issues a token
// pair bound to a fresh session, refresh reissues access tokens against a
// live session, logout invalidates the session. Its only side effects are
// session writes and token signing.
type AuthService struct {
	users       *UserService
	sessionRepo repository.SessionRepository
	issuer      *token.Issuer
	cfg         *config.Config
	log         *zap.Logger
}

func NewAuthService(users *UserService, sessionRepo repository.SessionRepository, issuer *token.Issuer, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		sessionRepo: sessionRepo,
		issuer:      issuer,
		cfg:         cfg,
		log:         log,
	}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials, creates a session and issues an access and
// a refresh token carrying the same user+session claims. A session
// creation failure after the password check is a distinct error from bad
// credentials: the caller already proved identity.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent string) (*TokenPair, error) {
	user, ok := s.users.VerifyCredentials(ctx, email, password)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if s.cfg.SingleSessionPerUser {
		if err := s.sessionRepo.InvalidateAllByUser(ctx, user.ID); err != nil {
			s.log.Error("invalidating prior sessions failed", zap.Error(err), zap.String("user", user.ID.String()))
			return nil, fmt.Errorf("%w: %v", domain.ErrSessionCreation, err)
		}
	}

	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		State:     domain.SessionActive,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.log.Error("session creation failed", zap.Error(err), zap.String("user", user.ID.String()))
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCreation, err)
	}

	accessToken, err := s.issuer.Issue(user.ID, session.ID, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCreation, err)
	}

	refreshToken, err := s.issuer.Issue(user.ID, session.ID, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCreation, err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccessToken checks a bearer token from a request.
func (s *AuthService) VerifyAccessToken(tokenString string) (*token.Claims, token.VerifyResult) {
	return s.issuer.Verify(tokenString)
}

// ReissueAccessToken validates a refresh token against its session record
// and, when the session is still active, signs a fresh access token bound
// to the same session. The refresh token itself is never rotated. Any
// failure reports a plain false: refresh tokens arrive from untrusted
// clients, so this is a result, not an error.
func (s *AuthService) ReissueAccessToken(ctx context.Context, refreshToken string) (string, bool) {
	claims, result := s.issuer.Verify(refreshToken)
	if result != token.Valid {
		return "", false
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("session lookup failed", zap.Error(err), zap.String("session", claims.SessionID.String()))
		}
		return "", false
	}
	if !session.Valid() {
		return "", false
	}

	if _, err := s.users.GetByID(ctx, session.UserID); err != nil {
		return "", false
	}

	accessToken, err := s.issuer.Issue(session.UserID, session.ID, s.cfg.AccessTokenTTL)
	if err != nil {
		s.log.Error("access token reissue failed", zap.Error(err))
		return "", false
	}

	return accessToken, true
}

// Logout invalidates the session. Invalidating an already-invalid
// session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessionRepo.Invalidate(ctx, sessionID)
}

// CurrentSession returns the newest active session for the user, or
// domain.ErrNotFound when none exists.
func (s *AuthService) CurrentSession(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	session, err := s.sessionRepo.FirstValidByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}
