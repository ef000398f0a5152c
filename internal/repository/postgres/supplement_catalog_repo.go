package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgSupplementCatalogRepository implements
// repository.SupplementCatalogRepository.
type pgSupplementCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewSupplementCatalogRepository creates a supplement catalog
// repository backed by Postgres.
func NewSupplementCatalogRepository(pool *pgxpool.Pool) repository.SupplementCatalogRepository {
	return &pgSupplementCatalogRepository{pool: pool}
}

func (r *pgSupplementCatalogRepository) CreateCategory(ctx context.Context, c *domain.SupplementCategory) (int64, error) {
	if c.Name == "" || c.TrainerID == 0 {
		return 0, errors.New("category name and trainer ID are required")
	}
	const q = `INSERT INTO supplement_categories (trainer_id, name) VALUES ($1, $2)
		RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, q, c.TrainerID, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *pgSupplementCatalogRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.SupplementCategory, error) {
	var c domain.SupplementCategory
	err := r.pool.QueryRow(ctx,
		`SELECT id, trainer_id, name, created_at FROM supplement_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.TrainerID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgSupplementCatalogRepository) GetCategories(ctx context.Context, trainerID int64) ([]domain.SupplementCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, name, created_at FROM supplement_categories
		 WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.SupplementCategory
	for rows.Next() {
		var c domain.SupplementCategory
		if err := rows.Scan(&c.ID, &c.TrainerID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *pgSupplementCatalogRepository) UpdateCategory(ctx context.Context, id int64, name string) (*domain.SupplementCategory, error) {
	const q = `UPDATE supplement_categories SET name = $2 WHERE id = $1
		RETURNING id, trainer_id, name, created_at`
	var c domain.SupplementCategory
	err := r.pool.QueryRow(ctx, q, id, name).Scan(&c.ID, &c.TrainerID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgSupplementCatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM supplement_categories WHERE id = $1`, id)
}

func (r *pgSupplementCatalogRepository) CreateSupplement(ctx context.Context, s *domain.Supplement) (int64, error) {
	if s.Name == "" || s.TrainerID == 0 {
		return 0, errors.New("supplement name and trainer ID are required")
	}
	const q = `INSERT INTO supplements (trainer_id, category_id, name, description)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, s.TrainerID, s.CategoryID, s.Name, s.Description).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (r *pgSupplementCatalogRepository) GetSupplementByID(ctx context.Context, id int64) (*domain.Supplement, error) {
	const q = `SELECT id, trainer_id, category_id, name, description, created_at, updated_at
		FROM supplements WHERE id = $1`
	var s domain.Supplement
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.TrainerID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *pgSupplementCatalogRepository) GetSupplements(ctx context.Context, trainerID int64) ([]domain.Supplement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, trainer_id, category_id, name, description, created_at, updated_at
		 FROM supplements WHERE trainer_id = $1 ORDER BY name, id`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sups []domain.Supplement
	for rows.Next() {
		var s domain.Supplement
		if err := rows.Scan(&s.ID, &s.TrainerID, &s.CategoryID, &s.Name,
			&s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sups = append(sups, s)
	}
	return sups, rows.Err()
}

func (r *pgSupplementCatalogRepository) UpdateSupplement(ctx context.Context, id int64, u domain.SupplementUpdate) (*domain.Supplement, error) {
	const q = `UPDATE supplements SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			updated_at  = now()
		WHERE id = $1
		RETURNING id, trainer_id, category_id, name, description, created_at, updated_at`
	var s domain.Supplement
	err := r.pool.QueryRow(ctx, q, id, u.Name, u.Description, u.CategoryID).Scan(
		&s.ID, &s.TrainerID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *pgSupplementCatalogRepository) DeleteSupplement(ctx context.Context, id int64) error {
	return execDelete(ctx, r.pool, `DELETE FROM supplements WHERE id = $1`, id)
}
