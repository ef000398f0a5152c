package api

import (
	"errors"
	"fmt"
	"net/http"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves all seven per-trainer catalog resources: the
// exercise hierarchy (types, categories, exercises), meal categories
// and meals, supplement categories and supplements.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- Request Structs ---

type NamedItemRequest struct {
	Name string `json:"name" binding:"required"`
}

type ExerciseCategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	TypeID *int64 `json:"typeId"`
}

type CatalogItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  *int64 `json:"categoryId"`
}

// writeCatalogError maps catalog service errors to HTTP statuses.
func writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogItemNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCatalogAccessDenied):
		abortWithError(c, http.StatusNotFound, service.ErrCatalogItemNotFound.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Exercise types ---

func (h *CatalogHandler) CreateExerciseType(c *gin.Context) {
	identity := identityFromContext(c)
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.CreateExerciseType(c.Request.Context(), identity.TrainerID, req.Name)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) GetExerciseTypes(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetExerciseTypes(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateExerciseType(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateExerciseType(c.Request.Context(), identity.TrainerID, id, req.Name)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteExerciseType(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteExerciseType(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise type deleted"})
}

// --- Exercise categories ---

func (h *CatalogHandler) CreateExerciseCategory(c *gin.Context) {
	identity := identityFromContext(c)
	var req ExerciseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.CreateExerciseCategory(c.Request.Context(), identity.TrainerID, req.Name, req.TypeID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) GetExerciseCategories(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetExerciseCategories(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateExerciseCategory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ExerciseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateExerciseCategory(c.Request.Context(), identity.TrainerID, id, req.Name, req.TypeID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteExerciseCategory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteExerciseCategory(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise category deleted"})
}

// --- Exercises ---

func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	identity := identityFromContext(c)
	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise := &domain.Exercise{
		TrainerID:   identity.TrainerID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	created, err := h.catalogService.CreateExercise(c.Request.Context(), exercise)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) GetExercises(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetExercises(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var update domain.ExerciseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateExercise(c.Request.Context(), identity.TrainerID, id, update)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteExercise also removes any stored demonstration media.
func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteExercise(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise deleted"})
}

// --- Meal categories ---

func (h *CatalogHandler) CreateMealCategory(c *gin.Context) {
	identity := identityFromContext(c)
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.CreateMealCategory(c.Request.Context(), identity.TrainerID, req.Name)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) GetMealCategories(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetMealCategories(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateMealCategory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateMealCategory(c.Request.Context(), identity.TrainerID, id, req.Name)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteMealCategory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteMealCategory(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal category deleted"})
}

// --- Meals ---

func (h *CatalogHandler) CreateMeal(c *gin.Context) {
	identity := identityFromContext(c)
	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	meal := &domain.Meal{
		TrainerID:   identity.TrainerID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	created, err := h.catalogService.CreateMeal(c.Request.Context(), meal)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) GetMeals(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetMeals(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateMeal(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var update domain.MealUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateMeal(c.Request.Context(), identity.TrainerID, id, update)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteMeal(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteMeal(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// --- Supplement categories ---

func (h *CatalogHandler) CreateSupplementCategory(c *gin.Context) {
	identity := identityFromContext(c)
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.CreateSupplementCategory(c.Request.Context(), identity.TrainerID, req.Name)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) GetSupplementCategories(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetSupplementCategories(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateSupplementCategory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateSupplementCategory(c.Request.Context(), identity.TrainerID, id, req.Name)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteSupplementCategory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSupplementCategory(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supplement category deleted"})
}

// --- Supplements ---

func (h *CatalogHandler) CreateSupplement(c *gin.Context) {
	identity := identityFromContext(c)
	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	supplement := &domain.Supplement{
		TrainerID:   identity.TrainerID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	created, err := h.catalogService.CreateSupplement(c.Request.Context(), supplement)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) GetSupplements(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.catalogService.GetSupplements(c.Request.Context(), identity.TrainerID)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) UpdateSupplement(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var update domain.SupplementUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	item, err := h.catalogService.UpdateSupplement(c.Request.Context(), identity.TrainerID, id, update)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteSupplement(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSupplement(c.Request.Context(), identity.TrainerID, id); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supplement deleted"})
}
