package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgTrainerRepository implements repository.TrainerRepository.
type pgTrainerRepository struct {
	pool *pgxpool.Pool
}

// NewTrainerRepository creates a Trainer repository backed by Postgres.
func NewTrainerRepository(pool *pgxpool.Pool) repository.TrainerRepository {
	return &pgTrainerRepository{pool: pool}
}

func (r *pgTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (int64, error) {
	if trainer.Phone == "" || trainer.Username == "" {
		return 0, errors.New("trainer phone and username are required")
	}
	const q = `INSERT INTO trainers (phone, username, code_hash)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, trainer.Phone, trainer.Username, trainer.CodeHash).
		Scan(&trainer.ID, &trainer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return trainer.ID, nil
}

func (r *pgTrainerRepository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	const q = `SELECT id, phone, username, code_hash, created_at FROM trainers WHERE id = $1`
	return r.scanTrainer(r.pool.QueryRow(ctx, q, id))
}

func (r *pgTrainerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Trainer, error) {
	const q = `SELECT id, phone, username, code_hash, created_at FROM trainers WHERE phone = $1`
	return r.scanTrainer(r.pool.QueryRow(ctx, q, phone))
}

func (r *pgTrainerRepository) scanTrainer(row pgx.Row) (*domain.Trainer, error) {
	var t domain.Trainer
	err := row.Scan(&t.ID, &t.Phone, &t.Username, &t.CodeHash, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *pgTrainerRepository) CreateProfile(ctx context.Context, profile *domain.TrainerProfile) (int64, error) {
	const q = `INSERT INTO trainer_profiles (trainer_id, gym_name, bio, address, instagram, telegram, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, updated_at`
	err := r.pool.QueryRow(ctx, q,
		profile.TrainerID, profile.GymName, profile.Bio, profile.Address,
		profile.Instagram, profile.Telegram, profile.Website).
		Scan(&profile.ID, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return profile.ID, nil
}

func (r *pgTrainerRepository) GetProfile(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error) {
	const q = `SELECT id, trainer_id, gym_name, bio, address, instagram, telegram, website, updated_at
		FROM trainer_profiles WHERE trainer_id = $1`
	var p domain.TrainerProfile
	err := r.pool.QueryRow(ctx, q, trainerID).Scan(
		&p.ID, &p.TrainerID, &p.GymName, &p.Bio, &p.Address,
		&p.Instagram, &p.Telegram, &p.Website, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProfile merges only the supplied fields; COALESCE keeps the
// stored value for every nil argument.
func (r *pgTrainerRepository) UpdateProfile(ctx context.Context, trainerID int64, update domain.TrainerProfileUpdate) (*domain.TrainerProfile, error) {
	const q = `UPDATE trainer_profiles SET
			gym_name  = COALESCE($2, gym_name),
			bio       = COALESCE($3, bio),
			address   = COALESCE($4, address),
			instagram = COALESCE($5, instagram),
			telegram  = COALESCE($6, telegram),
			website   = COALESCE($7, website),
			updated_at = now()
		WHERE trainer_id = $1
		RETURNING id, trainer_id, gym_name, bio, address, instagram, telegram, website, updated_at`
	var p domain.TrainerProfile
	err := r.pool.QueryRow(ctx, q, trainerID,
		update.GymName, update.Bio, update.Address,
		update.Instagram, update.Telegram, update.Website).Scan(
		&p.ID, &p.TrainerID, &p.GymName, &p.Bio, &p.Address,
		&p.Instagram, &p.Telegram, &p.Website, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
