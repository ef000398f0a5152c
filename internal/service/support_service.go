package service

import (
	"context"
	"errors"
	"strings"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrTicketNotFound  = errors.New("support ticket not found")
	ErrMessageNotFound = errors.New("support message not found")
)

// SupportService owns tickets with their threaded responses and the
// unthreaded trainer/student message log.
type SupportService interface {
	CreateTicket(ctx context.Context, ticket *domain.SupportTicket) (*domain.SupportTicket, error)
	GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error)
	GetTrainerTickets(ctx context.Context, trainerID int64) ([]domain.SupportTicket, error)
	GetStudentTickets(ctx context.Context, studentID int64) ([]domain.SupportTicket, error)
	UpdateTicket(ctx context.Context, id int64, update domain.TicketUpdate) (*domain.SupportTicket, error)
	DeleteTicket(ctx context.Context, id int64) error

	AddResponse(ctx context.Context, ticketID int64, sender domain.SenderRole, message string) (*domain.TicketResponse, error)
	GetResponses(ctx context.Context, ticketID int64) ([]domain.TicketResponse, error)

	SendMessage(ctx context.Context, msg *domain.SupportMessage) (*domain.SupportMessage, error)
	GetMessage(ctx context.Context, id int64) (*domain.SupportMessage, error)
	GetTrainerMessages(ctx context.Context, trainerID int64) ([]domain.SupportMessage, error)
	GetStudentMessages(ctx context.Context, studentID int64) ([]domain.SupportMessage, error)
	MarkMessageRead(ctx context.Context, id int64) error

	// ClearSupport purges the trainer's whole support area.
	ClearSupport(ctx context.Context, trainerID int64) error
}

type supportService struct {
	supportRepo repository.SupportRepository
}

// NewSupportService creates a new instance of supportService.
func NewSupportService(supportRepo repository.SupportRepository) SupportService {
	return &supportService{supportRepo: supportRepo}
}

// newTicketNumber derives a short human-readable ticket number from a
// UUID, e.g. "TKT-9F2C41A7".
func newTicketNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TKT-" + id[:8]
}

func (s *supportService) CreateTicket(ctx context.Context, ticket *domain.SupportTicket) (*domain.SupportTicket, error) {
	if ticket.Subject == "" || ticket.StudentID == 0 || ticket.TrainerID == 0 {
		return nil, ErrValidationFailed
	}
	if ticket.Category == "" {
		ticket.Category = "general"
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.PriorityMedium
	}
	ticket.Status = domain.TicketOpen
	ticket.TicketNumber = newTicketNumber()

	if _, err := s.supportRepo.CreateTicket(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Ticket number collision; one retry with a fresh number.
			ticket.TicketNumber = newTicketNumber()
			if _, err := s.supportRepo.CreateTicket(ctx, ticket); err != nil {
				return nil, err
			}
			return ticket, nil
		}
		return nil, err
	}
	return ticket, nil
}

func (s *supportService) GetTicket(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	t, err := s.supportRepo.GetTicketByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *supportService) GetTrainerTickets(ctx context.Context, trainerID int64) ([]domain.SupportTicket, error) {
	return s.supportRepo.GetTicketsByTrainerID(ctx, trainerID)
}

func (s *supportService) GetStudentTickets(ctx context.Context, studentID int64) ([]domain.SupportTicket, error) {
	return s.supportRepo.GetTicketsByStudentID(ctx, studentID)
}

func (s *supportService) UpdateTicket(ctx context.Context, id int64, update domain.TicketUpdate) (*domain.SupportTicket, error) {
	if update.Status != nil {
		switch *update.Status {
		case domain.TicketOpen, domain.TicketInProgress, domain.TicketResolved, domain.TicketClosed:
		default:
			return nil, ErrValidationFailed
		}
	}
	if update.Priority != nil {
		switch *update.Priority {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		default:
			return nil, ErrValidationFailed
		}
	}
	t, err := s.supportRepo.UpdateTicket(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// DeleteTicket removes the ticket and its responses; the repository
// guarantees the responses go first, transactionally.
func (s *supportService) DeleteTicket(ctx context.Context, id int64) error {
	err := s.supportRepo.DeleteTicket(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTicketNotFound
	}
	return err
}

func (s *supportService) AddResponse(ctx context.Context, ticketID int64, sender domain.SenderRole, message string) (*domain.TicketResponse, error) {
	if message == "" {
		return nil, ErrValidationFailed
	}
	if _, err := s.supportRepo.GetTicketByID(ctx, ticketID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	resp := &domain.TicketResponse{
		TicketID: ticketID,
		Sender:   sender,
		Message:  message,
	}
	if _, err := s.supportRepo.CreateResponse(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *supportService) GetResponses(ctx context.Context, ticketID int64) ([]domain.TicketResponse, error) {
	return s.supportRepo.GetResponsesByTicketID(ctx, ticketID)
}

func (s *supportService) SendMessage(ctx context.Context, msg *domain.SupportMessage) (*domain.SupportMessage, error) {
	if msg.Message == "" || msg.StudentID == 0 || msg.TrainerID == 0 {
		return nil, ErrValidationFailed
	}
	if _, err := s.supportRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *supportService) GetMessage(ctx context.Context, id int64) (*domain.SupportMessage, error) {
	m, err := s.supportRepo.GetMessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *supportService) GetTrainerMessages(ctx context.Context, trainerID int64) ([]domain.SupportMessage, error) {
	return s.supportRepo.GetMessagesByTrainerID(ctx, trainerID)
}

func (s *supportService) GetStudentMessages(ctx context.Context, studentID int64) ([]domain.SupportMessage, error) {
	return s.supportRepo.GetMessagesByStudentID(ctx, studentID)
}

func (s *supportService) MarkMessageRead(ctx context.Context, id int64) error {
	err := s.supportRepo.MarkMessageRead(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMessageNotFound
	}
	return err
}

func (s *supportService) ClearSupport(ctx context.Context, trainerID int64) error {
	return s.supportRepo.ClearByTrainerID(ctx, trainerID)
}
