package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgExerciseCatalogRepository implements
// repository.ExerciseCatalogRepository.
type pgExerciseCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseCatalogRepository creates an exercise catalog repository
// backed by Postgres.
func NewExerciseCatalogRepository(pool *pgxpool.Pool) repository.ExerciseCatalogRepository {
	return &pgExerciseCatalogRepository{pool: pool}
}

// --- Types ---

func (r *pgExerciseCatalogRepository) CreateType(ctx context.Context, t *domain.ExerciseType) (int64, error) {
	if t.Name == "" || t.TrainerID == 0 {
		return 0, errors.New("type name and trainer ID are required")
	}
	const q = `INSERT INTO exercise_types (trainer_id, name) VALUES ($1, $2)
		RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, q, t.TrainerID, t.Name).Scan(&t.ID, &t.CreatedAt); err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (r *pgExerciseCatalogRepository) GetTypeByID(ctx context.Context, id int64) (*domain.ExerciseType, error) {
	var t domain.ExerciseType
	err := r.pool.QueryRow(ctx,
		`SELECT id, trainer_id, name, created_at FROM exercise_types WHERE id = $1`, id).
		Scan(&t.ID, &t.TrainerID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *pgExerciseCatalogRepository) GetTypes(ctx context.Context, trainerID int64) ([]domain.ExerciseType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, name, created_at FROM exercise_types
		 WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.ExerciseType
	for rows.Next() {
		var t domain.ExerciseType
		if err := rows.Scan(&t.ID, &t.TrainerID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *pgExerciseCatalogRepository) UpdateType(ctx context.Context, id int64, name string) (*domain.ExerciseType, error) {
	const q = `UPDATE exercise_types SET name = $2 WHERE id = $1
		RETURNING id, trainer_id, name, created_at`
	var t domain.ExerciseType
	err := r.pool.QueryRow(ctx, q, id, name).Scan(&t.ID, &t.TrainerID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *pgExerciseCatalogRepository) DeleteType(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM exercise_types WHERE id = $1`, id)
}

// --- Categories ---

func (r *pgExerciseCatalogRepository) CreateCategory(ctx context.Context, c *domain.ExerciseCategory) (int64, error) {
	if c.Name == "" || c.TrainerID == 0 {
		return 0, errors.New("category name and trainer ID are required")
	}
	const q = `INSERT INTO exercise_categories (trainer_id, type_id, name)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, q, c.TrainerID, c.TypeID, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *pgExerciseCatalogRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.ExerciseCategory, error) {
	var c domain.ExerciseCategory
	err := r.pool.QueryRow(ctx,
		`SELECT id, trainer_id, type_id, name, created_at FROM exercise_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.TrainerID, &c.TypeID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgExerciseCatalogRepository) GetCategories(ctx context.Context, trainerID int64) ([]domain.ExerciseCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, type_id, name, created_at FROM exercise_categories
		 WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.ExerciseCategory
	for rows.Next() {
		var c domain.ExerciseCategory
		if err := rows.Scan(&c.ID, &c.TrainerID, &c.TypeID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *pgExerciseCatalogRepository) UpdateCategory(ctx context.Context, id int64, name string, typeID *int64) (*domain.ExerciseCategory, error) {
	const q = `UPDATE exercise_categories SET
			name = $2, type_id = COALESCE($3, type_id)
		WHERE id = $1
		RETURNING id, trainer_id, type_id, name, created_at`
	var c domain.ExerciseCategory
	err := r.pool.QueryRow(ctx, q, id, name, typeID).Scan(&c.ID, &c.TrainerID, &c.TypeID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgExerciseCatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM exercise_categories WHERE id = $1`, id)
}

// --- Exercises ---

func (r *pgExerciseCatalogRepository) CreateExercise(ctx context.Context, e *domain.Exercise) (int64, error) {
	if e.Name == "" || e.TrainerID == 0 {
		return 0, errors.New("exercise name and trainer ID are required")
	}
	const q = `INSERT INTO exercises (trainer_id, category_id, name, description)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, e.TrainerID, e.CategoryID, e.Name, e.Description).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (r *pgExerciseCatalogRepository) GetExerciseByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	const q = `SELECT id, trainer_id, category_id, name, description, created_at, updated_at
		FROM exercises WHERE id = $1`
	var e domain.Exercise
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&e.ID, &e.TrainerID, &e.CategoryID, &e.Name, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *pgExerciseCatalogRepository) GetExercises(ctx context.Context, trainerID int64) ([]domain.Exercise, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, category_id, name, description, created_at, updated_at
		 FROM exercises WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.ID, &e.TrainerID, &e.CategoryID, &e.Name,
			&e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *pgExerciseCatalogRepository) UpdateExercise(ctx context.Context, id int64, u domain.ExerciseUpdate) (*domain.Exercise, error) {
	const q = `UPDATE exercises SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			updated_at  = now()
		WHERE id = $1
		RETURNING id, trainer_id, category_id, name, description, created_at, updated_at`
	var e domain.Exercise
	err := r.pool.QueryRow(ctx, q, id, u.Name, u.Description, u.CategoryID).Scan(
		&e.ID, &e.TrainerID, &e.CategoryID, &e.Name, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *pgExerciseCatalogRepository) DeleteExercise(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM exercises WHERE id = $1`, id)
}

// execDelete runs a single-row delete and maps "nothing deleted" to
// ErrNotFound.
func execDelete(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) error {
	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
