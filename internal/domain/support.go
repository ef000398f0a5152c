package domain

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// SenderRole identifies which side of the trainer/student conversation
// authored a response or message.
type SenderRole string

const (
	SenderTrainer SenderRole = "trainer"
	SenderStudent SenderRole = "student"
)

// SupportTicket is a threaded support request from a student to their
// trainer. Responses are ordered by creation time.
type SupportTicket struct {
	ID           int64          `json:"id"`
	TicketNumber string         `json:"ticketNumber"`
	StudentID    int64          `json:"studentId"`
	TrainerID    int64          `json:"trainerId"`
	Subject      string         `json:"subject"`
	Message      string         `json:"message"`
	Category     string         `json:"category"`
	Priority     TicketPriority `json:"priority"`
	Status       TicketStatus   `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TicketUpdate carries the fields of a partial ticket update.
type TicketUpdate struct {
	Category *string         `json:"category,omitempty"`
	Priority *TicketPriority `json:"priority,omitempty"`
	Status   *TicketStatus   `json:"status,omitempty"`
}

// TicketResponse is a single reply inside a ticket's thread.
type TicketResponse struct {
	ID        int64      `json:"id"`
	TicketID  int64      `json:"ticketId"`
	Sender    SenderRole `json:"sender"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

// SupportMessage is the simpler unthreaded message log between a
// student and their trainer.
type SupportMessage struct {
	ID        int64      `json:"id"`
	StudentID int64      `json:"studentId"`
	TrainerID int64      `json:"trainerId"`
	Sender    SenderRole `json:"sender"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
}
