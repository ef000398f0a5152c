package api

import (
	"errors"
	"fmt"
	"net/http"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// StudentHandler serves the trainer-facing student CRUD routes plus the
// student history views.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// --- Request/Response Structs ---

type CreateStudentRequest struct {
	Name              string  `json:"name" binding:"required"`
	Phone             string  `json:"phone" binding:"required"`
	Gender            string  `json:"gender"`
	Age               int     `json:"age"`
	Height            float64 `json:"height"`
	Weight            float64 `json:"weight"`
	GoalType          string  `json:"goalType"`
	ActivityLevel     string  `json:"activityLevel"`
	MedicalConditions string  `json:"medicalConditions"`
}

// --- Handler Methods ---

func (h *StudentHandler) GetStudents(c *gin.Context) {
	identity := identityFromContext(c)

	students, err := h.studentService.GetStudents(c.Request.Context(), identity.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load students")
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *StudentHandler) GetStudentByID(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := h.loadOwnedStudent(c, identity, id)
	if err != nil {
		return // loadOwnedStudent already wrote the response
	}
	c.JSON(http.StatusOK, student)
}

// CreateStudent registers a new student under the calling trainer. A
// duplicate phone within the trainer's roster yields 400 with the exact
// message the panel displays.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	identity := identityFromContext(c)

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	student := &domain.Student{
		TrainerID:         identity.TrainerID,
		Name:              req.Name,
		Phone:             req.Phone,
		Gender:            req.Gender,
		Age:               req.Age,
		Height:            req.Height,
		Weight:            req.Weight,
		GoalType:          req.GoalType,
		ActivityLevel:     req.ActivityLevel,
		MedicalConditions: req.MedicalConditions,
	}

	created, err := h.studentService.CreateStudent(c.Request.Context(), student)
	if err != nil {
		var dup *service.DuplicatePhoneError
		switch {
		case errors.As(err, &dup):
			abortWithError(c, http.StatusBadRequest, dup.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create student")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update domain.StudentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), identity.TrainerID, id, update)
	if err != nil {
		var dup *service.DuplicatePhoneError
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.As(err, &dup):
			abortWithError(c, http.StatusBadRequest, dup.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update student")
		}
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes the student and everything hanging off them in
// one transaction. Assignments, history, tickets and messages all go.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.loadOwnedStudent(c, identity, id); err != nil {
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete student")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

func (h *StudentHandler) GetStudentHistory(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.loadOwnedStudent(c, identity, id); err != nil {
		return
	}

	history, err := h.studentService.GetHistory(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// PurgeHistory deletes every history row of the calling trainer.
func (h *StudentHandler) PurgeHistory(c *gin.Context) {
	identity := identityFromContext(c)

	deleted, err := h.studentService.PurgeHistory(c.Request.Context(), identity.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to purge history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// loadOwnedStudent fetches the student and enforces tenant isolation: a
// student of another trainer is indistinguishable from a missing one.
func (h *StudentHandler) loadOwnedStudent(c *gin.Context, identity domain.Identity, id int64) (*domain.Student, error) {
	student, err := h.studentService.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load student")
		}
		return nil, err
	}
	if student.TrainerID != identity.TrainerID {
		abortWithError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
		return nil, service.ErrStudentNotFound
	}
	return student, nil
}
