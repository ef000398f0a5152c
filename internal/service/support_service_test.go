package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tamrino/trainer-app/internal/domain"
)

func newTicket(studentID, trainerID int64) *domain.SupportTicket {
	return &domain.SupportTicket{
		StudentID: studentID,
		TrainerID: trainerID,
		Subject:   "مشکل در برنامه",
		Message:   "برنامه تمرینی نمایش داده نمی‌شود",
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())

	ticket, err := svc.CreateTicket(context.Background(), newTicket(5, 1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ticket.Status != domain.TicketOpen {
		t.Errorf("status = %s, want open", ticket.Status)
	}
	if ticket.Priority != domain.PriorityMedium {
		t.Errorf("priority = %s, want medium", ticket.Priority)
	}
	if ticket.Category != "general" {
		t.Errorf("category = %s, want general", ticket.Category)
	}
	if !strings.HasPrefix(ticket.TicketNumber, "TKT-") || len(ticket.TicketNumber) != 12 {
		t.Errorf("ticket number = %q", ticket.TicketNumber)
	}
}

func TestCreateTicketValidation(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())

	ticket := newTicket(5, 1)
	ticket.Subject = ""
	if _, err := svc.CreateTicket(context.Background(), ticket); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("got %v, want ErrValidationFailed", err)
	}
}

func TestUpdateTicketStatusTransitions(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())
	ctx := context.Background()

	ticket, _ := svc.CreateTicket(ctx, newTicket(5, 1))

	resolved := domain.TicketResolved
	updated, err := svc.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Status: &resolved})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.TicketResolved {
		t.Errorf("status = %s, want resolved", updated.Status)
	}

	bogus := domain.TicketStatus("reopened")
	if _, err := svc.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Status: &bogus}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("invalid status: got %v, want ErrValidationFailed", err)
	}
}

func TestAddResponseToMissingTicket(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())

	if _, err := svc.AddResponse(context.Background(), 99, domain.SenderTrainer, "hi"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("got %v, want ErrTicketNotFound", err)
	}
}

func TestDeleteTicketRemovesResponses(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := NewSupportService(repo)
	ctx := context.Background()

	ticket, _ := svc.CreateTicket(ctx, newTicket(5, 1))
	svc.AddResponse(ctx, ticket.ID, domain.SenderStudent, "پاسخ اول")
	svc.AddResponse(ctx, ticket.ID, domain.SenderTrainer, "پاسخ دوم")

	if err := svc.DeleteTicket(ctx, ticket.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(repo.responses) != 0 {
		t.Errorf("responses survived the ticket delete: %d left", len(repo.responses))
	}
}

func TestMarkMessageRead(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := NewSupportService(repo)
	ctx := context.Background()

	msg, err := svc.SendMessage(ctx, &domain.SupportMessage{
		StudentID: 5, TrainerID: 1, Sender: domain.SenderStudent, Message: "سلام",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.IsRead {
		t.Error("new messages start unread")
	}

	if err := svc.MarkMessageRead(ctx, msg.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	stored, _ := svc.GetTrainerMessages(ctx, 1)
	if !stored[0].IsRead {
		t.Error("expected the message to be read")
	}

	if err := svc.MarkMessageRead(ctx, 999); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("got %v, want ErrMessageNotFound", err)
	}
}

func TestGetMessage(t *testing.T) {
	svc := NewSupportService(newFakeSupportRepo())
	ctx := context.Background()

	sent, _ := svc.SendMessage(ctx, &domain.SupportMessage{
		StudentID: 5, TrainerID: 1, Sender: domain.SenderStudent, Message: "سلام",
	})

	got, err := svc.GetMessage(ctx, sent.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.StudentID != 5 || got.TrainerID != 1 {
		t.Errorf("unexpected message: %+v", got)
	}

	if _, err := svc.GetMessage(ctx, 999); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("got %v, want ErrMessageNotFound", err)
	}
}

func TestClearSupportScopedToTrainer(t *testing.T) {
	repo := newFakeSupportRepo()
	svc := NewSupportService(repo)
	ctx := context.Background()

	mine, _ := svc.CreateTicket(ctx, newTicket(5, 1))
	svc.AddResponse(ctx, mine.ID, domain.SenderStudent, "پاسخ")
	svc.SendMessage(ctx, &domain.SupportMessage{StudentID: 5, TrainerID: 1, Sender: domain.SenderStudent, Message: "سلام"})

	svc.CreateTicket(ctx, newTicket(8, 2))
	svc.SendMessage(ctx, &domain.SupportMessage{StudentID: 8, TrainerID: 2, Sender: domain.SenderStudent, Message: "سلام"})

	if err := svc.ClearSupport(ctx, 1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	myTickets, _ := svc.GetTrainerTickets(ctx, 1)
	myMessages, _ := svc.GetTrainerMessages(ctx, 1)
	if len(myTickets) != 0 || len(myMessages) != 0 || len(repo.responses) != 0 {
		t.Error("expected trainer 1's support data to be gone")
	}

	otherTickets, _ := svc.GetTrainerTickets(ctx, 2)
	otherMessages, _ := svc.GetTrainerMessages(ctx, 2)
	if len(otherTickets) != 1 || len(otherMessages) != 1 {
		t.Error("clear leaked into another trainer's support data")
	}
}
