package service

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound = errors.New("default trainer is not provisioned")
	ErrProfileNotFound = errors.New("trainer profile not found")
)

// TenantService resolves authenticated phone numbers to stable trainer
// IDs, provisioning the trainer and a default profile on first contact.
type TenantService interface {
	EnsureTrainerExists(ctx context.Context, phone string) (*domain.Trainer, error)
	// DefaultTrainerID returns the bootstrap trainer used by student
	// endpoints that have not been migrated to per-student tenancy.
	DefaultTrainerID(ctx context.Context) (int64, error)
	GetProfile(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error)
	UpdateProfile(ctx context.Context, trainerID int64, update domain.TrainerProfileUpdate) (*domain.TrainerProfile, error)
}

type tenantService struct {
	trainerRepo         repository.TrainerRepository
	trainerCode         string
	defaultTrainerPhone string
}

// NewTenantService creates a new instance of tenantService. trainerCode
// is the login code hashed onto newly provisioned trainers.
func NewTenantService(trainerRepo repository.TrainerRepository, trainerCode, defaultTrainerPhone string) TenantService {
	return &tenantService{
		trainerRepo:         trainerRepo,
		trainerCode:         trainerCode,
		defaultTrainerPhone: defaultTrainerPhone,
	}
}

// EnsureTrainerExists is an idempotent getOrCreate. It relies on the
// unique phone constraint rather than check-then-insert: a concurrent
// provision loses the insert race, hits the constraint, and re-fetches
// the winner's row.
func (s *tenantService) EnsureTrainerExists(ctx context.Context, phone string) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByPhone(ctx, phone)
	if err == nil {
		return trainer, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(s.trainerCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	trainer = &domain.Trainer{
		Phone:    phone,
		Username: "trainer_" + phone,
		CodeHash: string(codeHash),
	}
	if _, err := s.trainerRepo.Create(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the provision race; the row exists now.
			return s.trainerRepo.GetByPhone(ctx, phone)
		}
		return nil, err
	}

	// First-time provisioning also writes the 1:1 profile with
	// placeholder display text.
	profile := &domain.TrainerProfile{
		TrainerID: trainer.ID,
		GymName:   "باشگاه من",
	}
	if _, err := s.trainerRepo.CreateProfile(ctx, profile); err != nil &&
		!errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}
	return trainer, nil
}

// DefaultTrainerID fails loudly when the bootstrap trainer is missing:
// that means the system was never initialized, not a per-request
// problem.
func (s *tenantService) DefaultTrainerID(ctx context.Context) (int64, error) {
	if s.defaultTrainerPhone == "" {
		return 0, ErrTrainerNotFound
	}
	trainer, err := s.trainerRepo.GetByPhone(ctx, s.defaultTrainerPhone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrTrainerNotFound
		}
		return 0, err
	}
	return trainer.ID, nil
}

func (s *tenantService) GetProfile(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error) {
	profile, err := s.trainerRepo.GetProfile(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *tenantService) UpdateProfile(ctx context.Context, trainerID int64, update domain.TrainerProfileUpdate) (*domain.TrainerProfile, error) {
	profile, err := s.trainerRepo.UpdateProfile(ctx, trainerID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
