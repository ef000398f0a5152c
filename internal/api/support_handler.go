package api

import (
	"errors"
	"fmt"
	"net/http"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SupportHandler serves ticket threads and the unthreaded message log.
// Students open tickets against their trainer; either side replies.
type SupportHandler struct {
	supportService service.SupportService
	studentService service.StudentService
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(supportService service.SupportService, studentService service.StudentService) *SupportHandler {
	return &SupportHandler{
		supportService: supportService,
		studentService: studentService,
	}
}

// --- Request Structs ---

type CreateTicketRequest struct {
	Subject  string                `json:"subject" binding:"required"`
	Message  string                `json:"message" binding:"required"`
	Category string                `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

type TicketResponseRequest struct {
	Message string `json:"message" binding:"required"`
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func writeSupportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound), errors.Is(err, service.ErrMessageNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// loadOwnedTicket fetches a ticket and checks the caller is a party to
// it. Foreign tickets read as missing.
func (h *SupportHandler) loadOwnedTicket(c *gin.Context, id int64) (*domain.SupportTicket, bool) {
	identity := identityFromContext(c)
	ticket, err := h.supportService.GetTicket(c.Request.Context(), id)
	if err != nil {
		writeSupportError(c, err)
		return nil, false
	}
	owned := (identity.IsTrainer() && ticket.TrainerID == identity.TrainerID) ||
		(identity.IsStudent() && ticket.StudentID == identity.StudentID)
	if !owned {
		abortWithError(c, http.StatusNotFound, service.ErrTicketNotFound.Error())
		return nil, false
	}
	return ticket, true
}

// --- Tickets ---

// CreateTicket opens a ticket from the calling student to their
// trainer.
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	identity := identityFromContext(c)
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket := &domain.SupportTicket{
		StudentID: identity.StudentID,
		TrainerID: identity.TrainerID,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Priority:  req.Priority,
	}
	created, err := h.supportService.CreateTicket(c.Request.Context(), ticket)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTickets lists the caller's tickets, whichever side they are on.
func (h *SupportHandler) GetTickets(c *gin.Context) {
	identity := identityFromContext(c)

	var (
		tickets []domain.SupportTicket
		err     error
	)
	switch {
	case identity.IsTrainer():
		tickets, err = h.supportService.GetTrainerTickets(c.Request.Context(), identity.TrainerID)
	case identity.IsStudent():
		tickets, err = h.supportService.GetStudentTickets(c.Request.Context(), identity.StudentID)
	default:
		abortWithError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *SupportHandler) GetTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ticket, ok := h.loadOwnedTicket(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// UpdateTicket changes status/priority/category. Trainer side only.
func (h *SupportHandler) UpdateTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.loadOwnedTicket(c, id); !ok {
		return
	}
	var update domain.TicketUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ticket, err := h.supportService.UpdateTicket(c.Request.Context(), id, update)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *SupportHandler) DeleteTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.loadOwnedTicket(c, id); !ok {
		return
	}
	if err := h.supportService.DeleteTicket(c.Request.Context(), id); err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted"})
}

// --- Ticket responses ---

func (h *SupportHandler) AddResponse(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.loadOwnedTicket(c, id); !ok {
		return
	}
	var req TicketResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sender := domain.SenderStudent
	if identity.IsTrainer() {
		sender = domain.SenderTrainer
	}
	resp, err := h.supportService.AddResponse(c.Request.Context(), id, sender, req.Message)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SupportHandler) GetResponses(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.loadOwnedTicket(c, id); !ok {
		return
	}
	responses, err := h.supportService.GetResponses(c.Request.Context(), id)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// --- Messages ---

// SendMessage appends to the unthreaded trainer/student message log.
// Students message their own trainer; trainers pick the student via the
// :id path param.
func (h *SupportHandler) SendStudentMessage(c *gin.Context) {
	identity := identityFromContext(c)
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	msg := &domain.SupportMessage{
		StudentID: identity.StudentID,
		TrainerID: identity.TrainerID,
		Sender:    domain.SenderStudent,
		Message:   req.Message,
	}
	created, err := h.supportService.SendMessage(c.Request.Context(), msg)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SupportHandler) SendTrainerMessage(c *gin.Context) {
	identity := identityFromContext(c)
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := h.studentService.GetStudentByID(c.Request.Context(), studentID)
	if err != nil || student.TrainerID != identity.TrainerID {
		abortWithError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	msg := &domain.SupportMessage{
		StudentID: studentID,
		TrainerID: identity.TrainerID,
		Sender:    domain.SenderTrainer,
		Message:   req.Message,
	}
	created, err := h.supportService.SendMessage(c.Request.Context(), msg)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SupportHandler) GetMessages(c *gin.Context) {
	identity := identityFromContext(c)

	var (
		messages []domain.SupportMessage
		err      error
	)
	switch {
	case identity.IsTrainer():
		messages, err = h.supportService.GetTrainerMessages(c.Request.Context(), identity.TrainerID)
	case identity.IsStudent():
		messages, err = h.supportService.GetStudentMessages(c.Request.Context(), identity.StudentID)
	default:
		abortWithError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	if err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead flags a message as read. Only a party to the
// message may flag it; foreign messages read as missing.
func (h *SupportHandler) MarkMessageRead(c *gin.Context) {
	identity := identityFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	msg, err := h.supportService.GetMessage(c.Request.Context(), id)
	if err != nil {
		writeSupportError(c, err)
		return
	}
	owned := (identity.IsTrainer() && msg.TrainerID == identity.TrainerID) ||
		(identity.IsStudent() && msg.StudentID == identity.StudentID)
	if !owned {
		abortWithError(c, http.StatusNotFound, service.ErrMessageNotFound.Error())
		return
	}
	if err := h.supportService.MarkMessageRead(c.Request.Context(), id); err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// ClearSupport wipes the calling trainer's whole support area: tickets,
// their responses, and the message log.
func (h *SupportHandler) ClearSupport(c *gin.Context) {
	identity := identityFromContext(c)
	if err := h.supportService.ClearSupport(c.Request.Context(), identity.TrainerID); err != nil {
		writeSupportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "support data cleared"})
}
