package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgHistoryRepository implements repository.HistoryRepository.
type pgHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a history repository backed by Postgres.
func NewHistoryRepository(pool *pgxpool.Pool) repository.HistoryRepository {
	return &pgHistoryRepository{pool: pool}
}

func (r *pgHistoryRepository) Create(ctx context.Context, entry *domain.StudentHistory) (int64, error) {
	if entry.StudentID == 0 || entry.TrainerID == 0 || entry.Action == "" {
		return 0, errors.New("student ID, trainer ID and action are required")
	}
	const q = `INSERT INTO student_history
			(student_id, trainer_id, action, entity_type, entity_id, changes, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, entry.StudentID, entry.TrainerID, entry.Action,
		entry.EntityType, entry.EntityID, entry.Changes, entry.Description).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// GetByStudentID returns the student's log, newest first.
func (r *pgHistoryRepository) GetByStudentID(ctx context.Context, studentID int64) ([]domain.StudentHistory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, trainer_id, action, entity_type, entity_id, changes, description, created_at
		 FROM student_history WHERE student_id = $1 ORDER BY created_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.StudentHistory
	for rows.Next() {
		var e domain.StudentHistory
		if err := rows.Scan(&e.ID, &e.StudentID, &e.TrainerID, &e.Action, &e.EntityType,
			&e.EntityID, &e.Changes, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteByTrainerID is the bulk trainer-scoped purge, the only way
// history rows are removed outside a student cascade delete.
func (r *pgHistoryRepository) DeleteByTrainerID(ctx context.Context, trainerID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM student_history WHERE trainer_id = $1`, trainerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
