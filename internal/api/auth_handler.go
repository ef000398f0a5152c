package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency plus the
// cookie settings shared by both login tracks.
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, cookieName string, sessionTTL, rememberTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieName:  cookieName,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

// --- Request/Response Structs ---

type TrainerLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type StudentLoginRequest struct {
	Phone      string `json:"phone" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type TrainerLoginResponse struct {
	Trainer *domain.Trainer `json:"trainer"`
}

type StudentLoginResponse struct {
	Student   *domain.Student `json:"student"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// StatusResponse reports the caller's resolved identity. Anonymous
// callers get authenticated=false rather than an error.
type StatusResponse struct {
	Authenticated bool                `json:"authenticated"`
	Kind          domain.IdentityKind `json:"kind"`
	TrainerID     int64               `json:"trainerId,omitempty"`
	StudentID     int64               `json:"studentId,omitempty"`
	Phone         string              `json:"phone,omitempty"`
}

// --- Handler Methods ---

// TrainerLogin authenticates a trainer by phone + code, provisioning
// the trainer on first contact, and sets the session cookie.
func (h *AuthHandler) TrainerLogin(c *gin.Context) {
	var req TrainerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	cookie, trainer, err := h.authService.TrainerLogin(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountLocked):
			abortWithError(c, http.StatusTooManyRequests, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	h.setSessionCookie(c, cookie, h.sessionTTL)
	c.JSON(http.StatusOK, TrainerLoginResponse{Trainer: trainer})
}

// StudentLogin authenticates a student by phone only. Deactivated
// accounts are rejected with 403 and the message the panel shows.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	cookie, student, expiresAt, err := h.authService.StudentLogin(c.Request.Context(), req.Phone, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountDeactivated):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	ttl := h.sessionTTL
	if req.RememberMe {
		ttl = h.rememberTTL
	}
	h.setSessionCookie(c, cookie, ttl)
	c.JSON(http.StatusOK, StudentLoginResponse{Student: student, ExpiresAt: expiresAt})
}

// Logout deletes the server-side session and clears the cookie. It is
// idempotent; logging out twice is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := identityFromContext(c)
	if identity.SessionToken != "" {
		if err := h.authService.Logout(c.Request.Context(), identity.SessionToken); err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to end session")
			return
		}
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Status reports who the caller currently is.
func (h *AuthHandler) Status(c *gin.Context) {
	identity := identityFromContext(c)
	resp := StatusResponse{
		Authenticated: identity.Kind != domain.IdentityAnonymous,
		Kind:          identity.Kind,
		Phone:         identity.Phone,
	}
	switch identity.Kind {
	case domain.IdentityTrainer:
		resp.TrainerID = identity.TrainerID
	case domain.IdentityStudent:
		resp.StudentID = identity.StudentID
		resp.TrainerID = identity.TrainerID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, int(ttl.Seconds()), "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
}
