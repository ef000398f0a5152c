package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `token, role, trainer_id, student_id, phone, remember_me,
	failed_attempts, locked_until, expires_at, created_at`

// pgSessionRepository implements repository.SessionRepository.
type pgSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a session repository backed by Postgres.
func NewSessionRepository(pool *pgxpool.Pool) repository.SessionRepository {
	return &pgSessionRepository{pool: pool}
}

func (r *pgSessionRepository) Create(ctx context.Context, s *domain.AuthSession) error {
	if s.Token == "" {
		return errors.New("session token is required")
	}
	const q = `INSERT INTO auth_sessions
			(token, role, trainer_id, student_id, phone, remember_me,
			 failed_attempts, locked_until, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`
	err := r.pool.QueryRow(ctx, q, s.Token, s.Role, s.TrainerID, s.StudentID,
		s.Phone, s.RememberMe, s.FailedAttempts, s.LockedUntil, s.ExpiresAt).
		Scan(&s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *pgSessionRepository) GetByToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	var s domain.AuthSession
	err := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM auth_sessions WHERE token = $1`, token).Scan(
		&s.Token, &s.Role, &s.TrainerID, &s.StudentID, &s.Phone, &s.RememberMe,
		&s.FailedAttempts, &s.LockedUntil, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Save writes the session's mutable state (lockout counters, expiry).
func (r *pgSessionRepository) Save(ctx context.Context, s *domain.AuthSession) error {
	const q = `UPDATE auth_sessions SET
			remember_me = $2, failed_attempts = $3, locked_until = $4, expires_at = $5
		WHERE token = $1`
	tag, err := r.pool.Exec(ctx, q, s.Token, s.RememberMe, s.FailedAttempts, s.LockedUntil, s.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgSessionRepository) Delete(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_sessions WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
