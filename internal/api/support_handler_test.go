package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// stubSupportService serves canned messages keyed by ID and records
// which message got marked read.
type stubSupportService struct {
	messages map[int64]*domain.SupportMessage
	readID   int64
}

func (s *stubSupportService) CreateTicket(_ context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	return t, nil
}

func (s *stubSupportService) GetTicket(context.Context, int64) (*domain.SupportTicket, error) {
	return nil, service.ErrTicketNotFound
}

func (s *stubSupportService) GetTrainerTickets(context.Context, int64) ([]domain.SupportTicket, error) {
	return nil, nil
}

func (s *stubSupportService) GetStudentTickets(context.Context, int64) ([]domain.SupportTicket, error) {
	return nil, nil
}

func (s *stubSupportService) UpdateTicket(context.Context, int64, domain.TicketUpdate) (*domain.SupportTicket, error) {
	return nil, service.ErrTicketNotFound
}

func (s *stubSupportService) DeleteTicket(context.Context, int64) error {
	return service.ErrTicketNotFound
}

func (s *stubSupportService) AddResponse(context.Context, int64, domain.SenderRole, string) (*domain.TicketResponse, error) {
	return nil, service.ErrTicketNotFound
}

func (s *stubSupportService) GetResponses(context.Context, int64) ([]domain.TicketResponse, error) {
	return nil, nil
}

func (s *stubSupportService) SendMessage(_ context.Context, m *domain.SupportMessage) (*domain.SupportMessage, error) {
	return m, nil
}

func (s *stubSupportService) GetMessage(_ context.Context, id int64) (*domain.SupportMessage, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, service.ErrMessageNotFound
	}
	return m, nil
}

func (s *stubSupportService) GetTrainerMessages(context.Context, int64) ([]domain.SupportMessage, error) {
	return nil, nil
}

func (s *stubSupportService) GetStudentMessages(context.Context, int64) ([]domain.SupportMessage, error) {
	return nil, nil
}

func (s *stubSupportService) MarkMessageRead(_ context.Context, id int64) error {
	if _, ok := s.messages[id]; !ok {
		return service.ErrMessageNotFound
	}
	s.readID = id
	return nil
}

func (s *stubSupportService) ClearSupport(context.Context, int64) error { return nil }

func newSupportRouter(svc service.SupportService, identity domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextIdentityKey, identity)
	})

	h := NewSupportHandler(svc, &stubStudentService{students: map[int64]*domain.Student{}})
	router.PUT("/support/messages/:id/read", h.MarkMessageRead)
	return router
}

func markRead(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, nil))
	return w
}

func TestMarkMessageReadAsParty(t *testing.T) {
	stub := &stubSupportService{messages: map[int64]*domain.SupportMessage{
		7: {ID: 7, StudentID: 5, TrainerID: 1},
	}}
	router := newSupportRouter(stub, domain.Identity{Kind: domain.IdentityTrainer, TrainerID: 1})

	w := markRead(router, "/support/messages/7/read")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if stub.readID != 7 {
		t.Error("expected the message to be marked read")
	}
}

func TestMarkMessageReadForeignTrainer(t *testing.T) {
	stub := &stubSupportService{messages: map[int64]*domain.SupportMessage{
		7: {ID: 7, StudentID: 5, TrainerID: 2},
	}}
	router := newSupportRouter(stub, domain.Identity{Kind: domain.IdentityTrainer, TrainerID: 1})

	w := markRead(router, "/support/messages/7/read")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if stub.readID != 0 {
		t.Error("a foreign message must not be marked read")
	}
}

func TestMarkMessageReadForeignStudent(t *testing.T) {
	stub := &stubSupportService{messages: map[int64]*domain.SupportMessage{
		7: {ID: 7, StudentID: 5, TrainerID: 1},
	}}
	router := newSupportRouter(stub, domain.Identity{Kind: domain.IdentityStudent, StudentID: 6, TrainerID: 1})

	w := markRead(router, "/support/messages/7/read")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if stub.readID != 0 {
		t.Error("a foreign message must not be marked read")
	}
}

func TestMarkMessageReadMissing(t *testing.T) {
	stub := &stubSupportService{messages: map[int64]*domain.SupportMessage{}}
	router := newSupportRouter(stub, domain.Identity{Kind: domain.IdentityTrainer, TrainerID: 1})

	w := markRead(router, "/support/messages/99/read")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
