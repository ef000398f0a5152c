package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgMealCatalogRepository implements repository.MealCatalogRepository.
type pgMealCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewMealCatalogRepository creates a meal catalog repository backed by
// Postgres.
func NewMealCatalogRepository(pool *pgxpool.Pool) repository.MealCatalogRepository {
	return &pgMealCatalogRepository{pool: pool}
}

func (r *pgMealCatalogRepository) CreateCategory(ctx context.Context, c *domain.MealCategory) (int64, error) {
	if c.Name == "" || c.TrainerID == 0 {
		return 0, errors.New("category name and trainer ID are required")
	}
	const q = `INSERT INTO meal_categories (trainer_id, name) VALUES ($1, $2)
		RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, q, c.TrainerID, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *pgMealCatalogRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.MealCategory, error) {
	var c domain.MealCategory
	err := r.pool.QueryRow(ctx,
		`SELECT id, trainer_id, name, created_at FROM meal_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.TrainerID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgMealCatalogRepository) GetCategories(ctx context.Context, trainerID int64) ([]domain.MealCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, name, created_at FROM meal_categories
		 WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.MealCategory
	for rows.Next() {
		var c domain.MealCategory
		if err := rows.Scan(&c.ID, &c.TrainerID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *pgMealCatalogRepository) UpdateCategory(ctx context.Context, id int64, name string) (*domain.MealCategory, error) {
	const q = `UPDATE meal_categories SET name = $2 WHERE id = $1
		RETURNING id, trainer_id, name, created_at`
	var c domain.MealCategory
	err := r.pool.QueryRow(ctx, q, id, name).Scan(&c.ID, &c.TrainerID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgMealCatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM meal_categories WHERE id = $1`, id)
}

func (r *pgMealCatalogRepository) CreateMeal(ctx context.Context, m *domain.Meal) (int64, error) {
	if m.Name == "" || m.TrainerID == 0 {
		return 0, errors.New("meal name and trainer ID are required")
	}
	const q = `INSERT INTO meals (trainer_id, category_id, name, description)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, m.TrainerID, m.CategoryID, m.Name, m.Description).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *pgMealCatalogRepository) GetMealByID(ctx context.Context, id int64) (*domain.Meal, error) {
	const q = `SELECT id, trainer_id, category_id, name, description, created_at, updated_at
		FROM meals WHERE id = $1`
	var m domain.Meal
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&m.ID, &m.TrainerID, &m.CategoryID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *pgMealCatalogRepository) GetMeals(ctx context.Context, trainerID int64) ([]domain.Meal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, category_id, name, description, created_at, updated_at
		 FROM meals WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []domain.Meal
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(&m.ID, &m.TrainerID, &m.CategoryID, &m.Name,
			&m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (r *pgMealCatalogRepository) UpdateMeal(ctx context.Context, id int64, u domain.MealUpdate) (*domain.Meal, error) {
	const q = `UPDATE meals SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			updated_at  = now()
		WHERE id = $1
		RETURNING id, trainer_id, category_id, name, description, created_at, updated_at`
	var m domain.Meal
	err := r.pool.QueryRow(ctx, q, id, u.Name, u.Description, u.CategoryID).Scan(
		&m.ID, &m.TrainerID, &m.CategoryID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *pgMealCatalogRepository) DeleteMeal(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM meals WHERE id = $1`, id)
}
