package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler serves the per-identity key/value preference store.
type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// --- Request Structs ---

type SetPreferenceRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

type ResetPreferencesRequest struct {
	Keys []string `json:"keys"`
}

// prefIdentity derives the preference owner from the resolved identity.
// The session token always wins when present, so preferences written
// during a session stay with that session.
func prefIdentity(identity domain.Identity) domain.PrefIdentity {
	if identity.SessionToken != "" {
		return domain.BySession(identity.SessionToken)
	}
	if identity.IsTrainer() {
		return domain.ByUser(identity.TrainerID)
	}
	return domain.ByUser(identity.StudentID)
}

func writePreferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPreferenceNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func (h *PreferenceHandler) List(c *gin.Context) {
	identity := identityFromContext(c)
	prefs, err := h.preferenceService.List(c.Request.Context(), prefIdentity(identity))
	if err != nil {
		writePreferenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	identity := identityFromContext(c)
	key := c.Param("key")

	pref, err := h.preferenceService.Get(c.Request.Context(), prefIdentity(identity), key)
	if err != nil {
		writePreferenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// Set writes a preference. The same call both creates and updates;
// callers never distinguish the two.
func (h *PreferenceHandler) Set(c *gin.Context) {
	identity := identityFromContext(c)
	var req SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	pref, err := h.preferenceService.Set(c.Request.Context(), prefIdentity(identity), req.Key, req.Value)
	if err != nil {
		writePreferenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *PreferenceHandler) Remove(c *gin.Context) {
	identity := identityFromContext(c)
	key := c.Param("key")

	if err := h.preferenceService.Remove(c.Request.Context(), prefIdentity(identity), key); err != nil {
		writePreferenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "preference removed"})
}

// Reset removes the named keys, or everything when no keys are given.
// An empty request body counts as "no keys".
func (h *PreferenceHandler) Reset(c *gin.Context) {
	identity := identityFromContext(c)
	var req ResetPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.preferenceService.Reset(c.Request.Context(), prefIdentity(identity), req.Keys); err != nil {
		writePreferenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "preferences reset"})
}
