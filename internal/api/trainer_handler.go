package api

import (
	"errors"
	"fmt"
	"net/http"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler serves the trainer's own profile routes.
type TrainerHandler struct {
	tenantService service.TenantService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(tenantService service.TenantService) *TrainerHandler {
	return &TrainerHandler{tenantService: tenantService}
}

// GetProfile returns the calling trainer's profile.
func (h *TrainerHandler) GetProfile(c *gin.Context) {
	identity := identityFromContext(c)

	profile, err := h.tenantService.GetProfile(c.Request.Context(), identity.TrainerID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile partially updates the calling trainer's profile.
func (h *TrainerHandler) UpdateProfile(c *gin.Context) {
	identity := identityFromContext(c)

	var update domain.TrainerProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.tenantService.UpdateProfile(c.Request.Context(), identity.TrainerID, update)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
