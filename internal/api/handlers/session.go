package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dom/product-catalog-api/internal/api/middleware"
	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/dom/product-catalog-api/internal/service"
	"go.uber.org/zap"
)

type SessionHandler struct {
	authService *service.AuthService
	log         *zap.Logger
}

func NewSessionHandler(authService *service.AuthService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{authService: authService, log: log}
}

type CreateSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type SessionResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Valid     bool      `json:"valid"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NullTokenPair tells the client to discard both tokens.
type NullTokenPair struct {
	AccessToken  *string `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
}

// Create logs the user in: verified credentials produce a session and an
// access/refresh token pair.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var errs fieldErrors
	if req.Email == "" {
		errs = errs.add("email", "Email is required")
	}
	if req.Password == "" {
		errs = errs.add("password", "Password is required")
	}
	if errs.write(w) {
		return
	}

	pair, err := h.authService.Login(r.Context(), req.Email, req.Password, r.UserAgent())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, domain.ErrSessionCreation) {
			http.Error(w, "Could not create session", http.StatusBadRequest)
			return
		}
		h.log.Error("login failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Get returns the caller's current session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.authService.CurrentSession(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "No active session", http.StatusNotFound)
			return
		}
		h.log.Error("session lookup failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := SessionResponse{
		ID:        session.ID.String(),
		User:      session.UserID.String(),
		Valid:     session.Valid(),
		UserAgent: session.UserAgent,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Delete invalidates the caller's session and returns null tokens so the
// client discards both.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), claims.SessionID); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NullTokenPair{})
}
