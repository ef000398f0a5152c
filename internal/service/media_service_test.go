package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tamrino/trainer-app/internal/domain"
)

func newTestMediaService() (MediaService, *fakeExerciseCatalogRepo, *fakeMediaRepo, *fakeFileStorage) {
	exerciseRepo := newFakeExerciseCatalogRepo()
	mediaRepo := newFakeMediaRepo()
	files := newFakeFileStorage()
	return NewMediaService(mediaRepo, exerciseRepo, files), exerciseRepo, mediaRepo, files
}

func TestMediaUpload(t *testing.T) {
	svc, exerciseRepo, mediaRepo, files := newTestMediaService()
	ctx := context.Background()

	exercise := &domain.Exercise{TrainerID: 1, Name: "پرس سینه"}
	exerciseRepo.CreateExercise(ctx, exercise)

	body := strings.NewReader("video-bytes")
	media, err := svc.Upload(ctx, 1, exercise.ID, "demo.mp4", "video/mp4", body, int64(body.Len()))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if media.ObjectKey == "" || !strings.HasSuffix(media.ObjectKey, ".mp4") {
		t.Errorf("object key = %q", media.ObjectKey)
	}
	if _, ok := files.objects[media.ObjectKey]; !ok {
		t.Error("object was not stored")
	}
	if len(mediaRepo.media) != 1 {
		t.Error("metadata row was not stored")
	}
}

func TestMediaUploadOwnership(t *testing.T) {
	svc, exerciseRepo, _, _ := newTestMediaService()
	ctx := context.Background()

	exercise := &domain.Exercise{TrainerID: 1, Name: "پرس سینه"}
	exerciseRepo.CreateExercise(ctx, exercise)

	_, err := svc.Upload(ctx, 2, exercise.ID, "demo.mp4", "video/mp4", strings.NewReader("x"), 1)
	if !errors.Is(err, ErrCatalogAccessDenied) {
		t.Errorf("got %v, want ErrCatalogAccessDenied", err)
	}
}

func TestMediaUploadMissingExercise(t *testing.T) {
	svc, _, _, _ := newTestMediaService()

	_, err := svc.Upload(context.Background(), 1, 99, "demo.mp4", "video/mp4", strings.NewReader("x"), 1)
	if !errors.Is(err, ErrCatalogItemNotFound) {
		t.Errorf("got %v, want ErrCatalogItemNotFound", err)
	}
}

func TestMediaList(t *testing.T) {
	svc, exerciseRepo, _, _ := newTestMediaService()
	ctx := context.Background()

	exercise := &domain.Exercise{TrainerID: 1, Name: "پرس سینه"}
	exerciseRepo.CreateExercise(ctx, exercise)
	svc.Upload(ctx, 1, exercise.ID, "demo.mp4", "video/mp4", strings.NewReader("x"), 1)

	items, err := svc.List(ctx, exercise.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if !strings.HasPrefix(items[0].URL, "https://storage.test/") {
		t.Errorf("presigned URL = %q", items[0].URL)
	}
}
