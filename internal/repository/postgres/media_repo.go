package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgMediaRepository implements repository.MediaRepository.
type pgMediaRepository struct {
	pool *pgxpool.Pool
}

// NewMediaRepository creates an exercise media repository backed by
// Postgres.
func NewMediaRepository(pool *pgxpool.Pool) repository.MediaRepository {
	return &pgMediaRepository{pool: pool}
}

func (r *pgMediaRepository) Create(ctx context.Context, m *domain.ExerciseMedia) (int64, error) {
	if m.ExerciseID == 0 || m.ObjectKey == "" {
		return 0, errors.New("exercise ID and object key are required")
	}
	const q = `INSERT INTO exercise_media
			(exercise_id, trainer_id, object_key, file_name, content_type, size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, m.ExerciseID, m.TrainerID, m.ObjectKey,
		m.FileName, m.ContentType, m.Size).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *pgMediaRepository) GetByExerciseID(ctx context.Context, exerciseID int64) ([]domain.ExerciseMedia, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exercise_id, trainer_id, object_key, file_name, content_type, size, created_at
		 FROM exercise_media WHERE exercise_id = $1 ORDER BY id`, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []domain.ExerciseMedia
	for rows.Next() {
		var m domain.ExerciseMedia
		if err := rows.Scan(&m.ID, &m.ExerciseID, &m.TrainerID, &m.ObjectKey,
			&m.FileName, &m.ContentType, &m.Size, &m.CreatedAt); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// DeleteByExerciseID removes the metadata rows and returns them so the
// caller can clean up the backing objects.
func (r *pgMediaRepository) DeleteByExerciseID(ctx context.Context, exerciseID int64) ([]domain.ExerciseMedia, error) {
	rows, err := r.pool.Query(ctx,
		`DELETE FROM exercise_media WHERE exercise_id = $1
		 RETURNING id, exercise_id, trainer_id, object_key, file_name, content_type, size, created_at`,
		exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []domain.ExerciseMedia
	for rows.Next() {
		var m domain.ExerciseMedia
		if err := rows.Scan(&m.ID, &m.ExerciseID, &m.TrainerID, &m.ObjectKey,
			&m.FileName, &m.ContentType, &m.Size, &m.CreatedAt); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}
