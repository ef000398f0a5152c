package service

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"
)

// ErrPreferenceNotFound signals a missing (identity, key) pair.
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceService is the generic key/value store replacing client
// local storage. The repository enforces upsert semantics; this layer
// only adds validation and error mapping.
type PreferenceService interface {
	Get(ctx context.Context, id domain.PrefIdentity, key string) (*domain.UserPreference, error)
	Set(ctx context.Context, id domain.PrefIdentity, key, value string) (*domain.UserPreference, error)
	Remove(ctx context.Context, id domain.PrefIdentity, key string) error
	List(ctx context.Context, id domain.PrefIdentity) ([]domain.UserPreference, error)
	// Reset removes the named keys, or every key when the list is
	// empty.
	Reset(ctx context.Context, id domain.PrefIdentity, keys []string) error
}

type preferenceService struct {
	prefRepo repository.PreferenceRepository
}

// NewPreferenceService creates a new instance of preferenceService.
func NewPreferenceService(prefRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{prefRepo: prefRepo}
}

func validIdentity(id domain.PrefIdentity) bool {
	return id.SessionID != "" || id.UserID != nil
}

func (s *preferenceService) Get(ctx context.Context, id domain.PrefIdentity, key string) (*domain.UserPreference, error) {
	if !validIdentity(id) || key == "" {
		return nil, ErrValidationFailed
	}
	pref, err := s.prefRepo.Get(ctx, id, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, err
	}
	return pref, nil
}

func (s *preferenceService) Set(ctx context.Context, id domain.PrefIdentity, key, value string) (*domain.UserPreference, error) {
	if !validIdentity(id) || key == "" {
		return nil, ErrValidationFailed
	}
	return s.prefRepo.Set(ctx, id, key, value)
}

func (s *preferenceService) Remove(ctx context.Context, id domain.PrefIdentity, key string) error {
	if !validIdentity(id) || key == "" {
		return ErrValidationFailed
	}
	err := s.prefRepo.Remove(ctx, id, key)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPreferenceNotFound
	}
	return err
}

func (s *preferenceService) List(ctx context.Context, id domain.PrefIdentity) ([]domain.UserPreference, error) {
	if !validIdentity(id) {
		return nil, ErrValidationFailed
	}
	return s.prefRepo.List(ctx, id)
}

func (s *preferenceService) Reset(ctx context.Context, id domain.PrefIdentity, keys []string) error {
	if !validIdentity(id) {
		return ErrValidationFailed
	}
	if len(keys) == 0 {
		return s.prefRepo.RemoveAll(ctx, id)
	}
	for _, key := range keys {
		if err := s.prefRepo.Remove(ctx, id, key); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return nil
}
