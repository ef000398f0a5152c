package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `id, ticket_number, student_id, trainer_id, subject, message,
	category, priority, status, created_at, updated_at`

// pgSupportRepository implements repository.SupportRepository.
type pgSupportRepository struct {
	pool *pgxpool.Pool
}

// NewSupportRepository creates a support repository backed by Postgres.
func NewSupportRepository(pool *pgxpool.Pool) repository.SupportRepository {
	return &pgSupportRepository{pool: pool}
}

func (r *pgSupportRepository) CreateTicket(ctx context.Context, t *domain.SupportTicket) (int64, error) {
	if t.Subject == "" || t.StudentID == 0 || t.TrainerID == 0 {
		return 0, errors.New("ticket subject, student ID and trainer ID are required")
	}
	const q = `INSERT INTO support_tickets
			(ticket_number, student_id, trainer_id, subject, message, category, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, t.TicketNumber, t.StudentID, t.TrainerID,
		t.Subject, t.Message, t.Category, t.Priority, t.Status).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return t.ID, nil
}

func (r *pgSupportRepository) GetTicketByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	var t domain.SupportTicket
	err := scanTicket(r.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *pgSupportRepository) GetTicketsByTrainerID(ctx context.Context, trainerID int64) ([]domain.SupportTicket, error) {
	return r.queryTickets(ctx,
		`SELECT `+ticketColumns+` FROM support_tickets
		 WHERE trainer_id = $1 ORDER BY created_at DESC, id DESC`, trainerID)
}

func (r *pgSupportRepository) GetTicketsByStudentID(ctx context.Context, studentID int64) ([]domain.SupportTicket, error) {
	return r.queryTickets(ctx,
		`SELECT `+ticketColumns+` FROM support_tickets
		 WHERE student_id = $1 ORDER BY created_at DESC, id DESC`, studentID)
}

func (r *pgSupportRepository) queryTickets(ctx context.Context, query string, args ...any) ([]domain.SupportTicket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.SupportTicket
	for rows.Next() {
		var t domain.SupportTicket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func scanTicket(row pgx.Row, t *domain.SupportTicket) error {
	return row.Scan(&t.ID, &t.TicketNumber, &t.StudentID, &t.TrainerID, &t.Subject,
		&t.Message, &t.Category, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgSupportRepository) UpdateTicket(ctx context.Context, id int64, u domain.TicketUpdate) (*domain.SupportTicket, error) {
	const q = `UPDATE support_tickets SET
			category   = COALESCE($2, category),
			priority   = COALESCE($3, priority),
			status     = COALESCE($4, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + ticketColumns
	var t domain.SupportTicket
	err := scanTicket(r.pool.QueryRow(ctx, q, id, u.Category, u.Priority, u.Status), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// DeleteTicket removes the ticket's responses first, then the ticket,
// in one transaction.
func (r *pgSupportRepository) DeleteTicket(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ticket_responses WHERE ticket_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM support_tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *pgSupportRepository) CreateResponse(ctx context.Context, resp *domain.TicketResponse) (int64, error) {
	if resp.TicketID == 0 || resp.Message == "" {
		return 0, errors.New("ticket ID and message are required")
	}
	const q = `INSERT INTO ticket_responses (ticket_id, sender, message)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, resp.TicketID, resp.Sender, resp.Message).
		Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (r *pgSupportRepository) GetResponsesByTicketID(ctx context.Context, ticketID int64) ([]domain.TicketResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, ticket_id, sender, message, created_at FROM ticket_responses
		 WHERE ticket_id = $1 ORDER BY created_at, id`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.TicketResponse
	for rows.Next() {
		var resp domain.TicketResponse
		if err := rows.Scan(&resp.ID, &resp.TicketID, &resp.Sender, &resp.Message, &resp.CreatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *pgSupportRepository) CreateMessage(ctx context.Context, m *domain.SupportMessage) (int64, error) {
	if m.StudentID == 0 || m.TrainerID == 0 || m.Message == "" {
		return 0, errors.New("student ID, trainer ID and message are required")
	}
	const q = `INSERT INTO support_messages (student_id, trainer_id, sender, message, is_read)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, m.StudentID, m.TrainerID, m.Sender, m.Message, m.IsRead).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *pgSupportRepository) GetMessageByID(ctx context.Context, id int64) (*domain.SupportMessage, error) {
	var m domain.SupportMessage
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, trainer_id, sender, message, is_read, created_at
		 FROM support_messages WHERE id = $1`, id).
		Scan(&m.ID, &m.StudentID, &m.TrainerID, &m.Sender, &m.Message, &m.IsRead, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *pgSupportRepository) GetMessagesByStudentID(ctx context.Context, studentID int64) ([]domain.SupportMessage, error) {
	return r.queryMessages(ctx,
		`SELECT id, student_id, trainer_id, sender, message, is_read, created_at
		 FROM support_messages WHERE student_id = $1 ORDER BY created_at DESC, id DESC`, studentID)
}

func (r *pgSupportRepository) GetMessagesByTrainerID(ctx context.Context, trainerID int64) ([]domain.SupportMessage, error) {
	return r.queryMessages(ctx,
		`SELECT id, student_id, trainer_id, sender, message, is_read, created_at
		 FROM support_messages WHERE trainer_id = $1 ORDER BY created_at DESC, id DESC`, trainerID)
}

func (r *pgSupportRepository) queryMessages(ctx context.Context, query string, args ...any) ([]domain.SupportMessage, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.SupportMessage
	for rows.Next() {
		var m domain.SupportMessage
		if err := rows.Scan(&m.ID, &m.StudentID, &m.TrainerID, &m.Sender,
			&m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *pgSupportRepository) MarkMessageRead(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE support_messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearByTrainerID purges the trainer's whole support area: responses,
// tickets, and messages, in one transaction.
func (r *pgSupportRepository) ClearByTrainerID(ctx context.Context, trainerID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM ticket_responses WHERE ticket_id IN
			(SELECT id FROM support_tickets WHERE trainer_id = $1)`,
		`DELETE FROM support_tickets WHERE trainer_id = $1`,
		`DELETE FROM support_messages WHERE trainer_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, trainerID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
