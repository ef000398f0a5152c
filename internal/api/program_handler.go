package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves assignment routes for all three families:
// exercise programs, meal plans, supplements. Trainer routes are nested
// under /students/:id so tenancy is checked once at the student level;
// student routes under /me read the identity instead.
type ProgramHandler struct {
	programService service.ProgramService
	studentService service.StudentService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService, studentService service.StudentService) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
		studentService: studentService,
	}
}

// --- Request Structs ---

type AssignProgramRequest struct {
	ExerciseID  int64  `json:"exerciseId" binding:"required"`
	DayOfWeek   int    `json:"dayOfWeek" binding:"min=0,max=6"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Weight      string `json:"weight"`
	RestSeconds int    `json:"restSeconds"`
}

type AssignMealRequest struct {
	MealID    int64  `json:"mealId" binding:"required"`
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	MealTime  string `json:"mealTime"`
	Notes     string `json:"notes"`
}

type AssignSupplementRequest struct {
	SupplementID int64  `json:"supplementId" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions"`
}

type BulkProgramsRequest struct {
	DayOfWeek int                    `json:"dayOfWeek" binding:"min=0,max=6"`
	Items     []AssignProgramRequest `json:"items"`
}

type BulkMealPlansRequest struct {
	DayOfWeek int                 `json:"dayOfWeek" binding:"min=0,max=6"`
	Items     []AssignMealRequest `json:"items"`
}

type BulkSupplementsRequest struct {
	Items []AssignSupplementRequest `json:"items"`
}

type SetCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

func writeAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDayOfWeek), errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// ownedStudentID parses the :id path param and enforces that the
// student belongs to the calling trainer.
func (h *ProgramHandler) ownedStudentID(c *gin.Context) (int64, bool) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return 0, false
	}
	student, err := h.studentService.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load student")
		}
		return 0, false
	}
	if student.TrainerID != identity.TrainerID {
		abortWithError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
		return 0, false
	}
	return id, true
}

// dayQuery reads an optional ?day= query parameter.
func dayQuery(c *gin.Context) (int, bool, error) {
	raw := c.Query("day")
	if raw == "" {
		return 0, false, nil
	}
	day, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return day, true, nil
}

// --- Exercise programs (trainer) ---

func (h *ProgramHandler) GetPrograms(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	day, hasDay, err := dayQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid day parameter")
		return
	}

	var items []domain.ExerciseProgram
	if hasDay {
		items, err = h.programService.GetProgramsForDay(c.Request.Context(), studentID, day)
	} else {
		items, err = h.programService.GetPrograms(c.Request.Context(), studentID)
	}
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProgramHandler) AssignExercise(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	var req AssignProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	program := &domain.ExerciseProgram{
		StudentID:   studentID,
		TrainerID:   identity.TrainerID,
		ExerciseID:  req.ExerciseID,
		DayOfWeek:   req.DayOfWeek,
		Sets:        req.Sets,
		Reps:        req.Reps,
		Weight:      req.Weight,
		RestSeconds: req.RestSeconds,
	}
	created, err := h.programService.AssignExercise(c.Request.Context(), program)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProgramHandler) SetProgramCompleted(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "programId")
	if !ok {
		return
	}
	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.programService.SetProgramCompleted(c.Request.Context(), studentID, programID, *req.Completed); err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "program updated"})
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "programId")
	if !ok {
		return
	}
	if err := h.programService.DeleteProgram(c.Request.Context(), studentID, programID); err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "program deleted"})
}

// ReplacePrograms swaps the student's whole program for the given day
// with the submitted set, transactionally. Row IDs are not stable
// across bulk saves.
func (h *ProgramHandler) ReplacePrograms(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	var req BulkProgramsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	items := make([]domain.ExerciseProgram, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ExerciseID == 0 {
			abortWithError(c, http.StatusBadRequest, "exerciseId is required on every item")
			return
		}
		items = append(items, domain.ExerciseProgram{
			StudentID:   studentID,
			ExerciseID:  item.ExerciseID,
			DayOfWeek:   req.DayOfWeek,
			Sets:        item.Sets,
			Reps:        item.Reps,
			Weight:      item.Weight,
			RestSeconds: item.RestSeconds,
		})
	}

	out, err := h.programService.ReplacePrograms(c.Request.Context(), identity.TrainerID, studentID, req.DayOfWeek, items)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Meal plans (trainer) ---

func (h *ProgramHandler) GetMealPlans(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	day, hasDay, err := dayQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid day parameter")
		return
	}

	var items []domain.MealPlan
	if hasDay {
		items, err = h.programService.GetMealPlansForDay(c.Request.Context(), studentID, day)
	} else {
		items, err = h.programService.GetMealPlans(c.Request.Context(), studentID)
	}
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProgramHandler) AssignMeal(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	var req AssignMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	plan := &domain.MealPlan{
		StudentID: studentID,
		TrainerID: identity.TrainerID,
		MealID:    req.MealID,
		DayOfWeek: req.DayOfWeek,
		MealTime:  req.MealTime,
		Notes:     req.Notes,
	}
	created, err := h.programService.AssignMeal(c.Request.Context(), plan)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProgramHandler) SetMealPlanCompleted(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.programService.SetMealPlanCompleted(c.Request.Context(), studentID, planID, *req.Completed); err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan updated"})
}

func (h *ProgramHandler) DeleteMealPlan(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.programService.DeleteMealPlan(c.Request.Context(), studentID, planID); err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}

func (h *ProgramHandler) ReplaceMealPlans(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	var req BulkMealPlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	items := make([]domain.MealPlan, 0, len(req.Items))
	for _, item := range req.Items {
		if item.MealID == 0 {
			abortWithError(c, http.StatusBadRequest, "mealId is required on every item")
			return
		}
		items = append(items, domain.MealPlan{
			StudentID: studentID,
			MealID:    item.MealID,
			DayOfWeek: req.DayOfWeek,
			MealTime:  item.MealTime,
			Notes:     item.Notes,
		})
	}

	out, err := h.programService.ReplaceMealPlans(c.Request.Context(), identity.TrainerID, studentID, req.DayOfWeek, items)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Supplements (trainer) ---

func (h *ProgramHandler) GetStudentSupplements(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	items, err := h.programService.GetSupplements(c.Request.Context(), studentID)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProgramHandler) AssignSupplement(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	var req AssignSupplementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	sup := &domain.StudentSupplement{
		StudentID:    studentID,
		TrainerID:    identity.TrainerID,
		SupplementID: req.SupplementID,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Instructions: req.Instructions,
	}
	created, err := h.programService.AssignSupplement(c.Request.Context(), sup)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProgramHandler) SetSupplementCompleted(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	supID, ok := parseIDParam(c, "supplementId")
	if !ok {
		return
	}
	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.programService.SetSupplementCompleted(c.Request.Context(), studentID, supID, *req.Completed); err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supplement updated"})
}

func (h *ProgramHandler) DeleteStudentSupplement(c *gin.Context) {
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	supID, ok := parseIDParam(c, "supplementId")
	if !ok {
		return
	}
	if err := h.programService.DeleteStudentSupplement(c.Request.Context(), studentID, supID); err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "supplement deleted"})
}

// ReplaceSupplements swaps the student's entire supplement set. There
// is no day scope here; the whole set is replaced at once.
func (h *ProgramHandler) ReplaceSupplements(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := h.ownedStudentID(c)
	if !ok {
		return
	}
	var req BulkSupplementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	items := make([]domain.StudentSupplement, 0, len(req.Items))
	for _, item := range req.Items {
		if item.SupplementID == 0 {
			abortWithError(c, http.StatusBadRequest, "supplementId is required on every item")
			return
		}
		items = append(items, domain.StudentSupplement{
			StudentID:    studentID,
			SupplementID: item.SupplementID,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Instructions: item.Instructions,
		})
	}

	out, err := h.programService.ReplaceSupplements(c.Request.Context(), identity.TrainerID, studentID, items)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Student self-service views (/me) ---

func (h *ProgramHandler) GetMyPrograms(c *gin.Context) {
	identity := identityFromContext(c)
	day, hasDay, err := dayQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid day parameter")
		return
	}

	var items []domain.ExerciseProgram
	if hasDay {
		items, err = h.programService.GetProgramsForDay(c.Request.Context(), identity.StudentID, day)
	} else {
		items, err = h.programService.GetPrograms(c.Request.Context(), identity.StudentID)
	}
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProgramHandler) GetMyMealPlans(c *gin.Context) {
	identity := identityFromContext(c)
	day, hasDay, err := dayQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid day parameter")
		return
	}

	var items []domain.MealPlan
	if hasDay {
		items, err = h.programService.GetMealPlansForDay(c.Request.Context(), identity.StudentID, day)
	} else {
		items, err = h.programService.GetMealPlans(c.Request.Context(), identity.StudentID)
	}
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProgramHandler) GetMySupplements(c *gin.Context) {
	identity := identityFromContext(c)
	items, err := h.programService.GetSupplements(c.Request.Context(), identity.StudentID)
	if err != nil {
		writeAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
