package service

import (
	"context"
	"errors"
	"io"
	"path"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"
	"tamrino/trainer-app/internal/storage"

	"github.com/google/uuid"
)

// ErrMediaNotFound signals that an exercise has no stored media.
var ErrMediaNotFound = errors.New("exercise media not found")

// MediaItem pairs stored metadata with a presigned download URL.
type MediaItem struct {
	Media domain.ExerciseMedia `json:"media"`
	URL   string               `json:"url"`
}

// MediaService stores exercise demonstration files in object storage
// and their metadata in the relational store.
type MediaService interface {
	Upload(ctx context.Context, trainerID, exerciseID int64, fileName, contentType string, body io.Reader, size int64) (*domain.ExerciseMedia, error)
	List(ctx context.Context, exerciseID int64) ([]MediaItem, error)
}

type mediaService struct {
	mediaRepo    repository.MediaRepository
	exerciseRepo repository.ExerciseCatalogRepository
	files        storage.FileStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(mediaRepo repository.MediaRepository, exerciseRepo repository.ExerciseCatalogRepository, files storage.FileStorage) MediaService {
	return &mediaService{
		mediaRepo:    mediaRepo,
		exerciseRepo: exerciseRepo,
		files:        files,
	}
}

// Upload streams the file to object storage under a UUID key, then
// records the metadata row. The exercise must belong to the caller.
func (s *mediaService) Upload(ctx context.Context, trainerID, exerciseID int64, fileName, contentType string, body io.Reader, size int64) (*domain.ExerciseMedia, error) {
	exercise, err := s.exerciseRepo.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, err
	}
	if exercise.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}

	objectKey := "exercise-media/" + uuid.NewString() + path.Ext(fileName)
	if err := s.files.PutObject(ctx, objectKey, contentType, body, size); err != nil {
		return nil, err
	}

	media := &domain.ExerciseMedia{
		ExerciseID:  exerciseID,
		TrainerID:   trainerID,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	if _, err := s.mediaRepo.Create(ctx, media); err != nil {
		// The object is orphaned if this fails; try to clean it up.
		_ = s.files.DeleteObject(ctx, objectKey)
		return nil, err
	}
	return media, nil
}

func (s *mediaService) List(ctx context.Context, exerciseID int64) ([]MediaItem, error) {
	media, err := s.mediaRepo.GetByExerciseID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	items := make([]MediaItem, 0, len(media))
	for _, m := range media {
		url, err := s.files.GeneratePresignedDownloadURL(ctx, m.ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		items = append(items, MediaItem{Media: m, URL: url})
	}
	return items, nil
}
