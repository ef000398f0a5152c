package service

import (
	"context"
	"io"
	"time"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"
)

// --- fakeExerciseCatalogRepo ---

type fakeExerciseCatalogRepo struct {
	nextID     int64
	types      map[int64]*domain.ExerciseType
	categories map[int64]*domain.ExerciseCategory
	exercises  map[int64]*domain.Exercise
}

func newFakeExerciseCatalogRepo() *fakeExerciseCatalogRepo {
	return &fakeExerciseCatalogRepo{
		types:      make(map[int64]*domain.ExerciseType),
		categories: make(map[int64]*domain.ExerciseCategory),
		exercises:  make(map[int64]*domain.Exercise),
	}
}

func (r *fakeExerciseCatalogRepo) CreateType(_ context.Context, t *domain.ExerciseType) (int64, error) {
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	cp := *t
	r.types[t.ID] = &cp
	return t.ID, nil
}

func (r *fakeExerciseCatalogRepo) GetTypes(_ context.Context, trainerID int64) ([]domain.ExerciseType, error) {
	var out []domain.ExerciseType
	for _, t := range r.types {
		if t.TrainerID == trainerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeExerciseCatalogRepo) GetTypeByID(_ context.Context, id int64) (*domain.ExerciseType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeExerciseCatalogRepo) UpdateType(_ context.Context, id int64, name string) (*domain.ExerciseType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Name = name
	cp := *t
	return &cp, nil
}

func (r *fakeExerciseCatalogRepo) DeleteType(_ context.Context, id int64) error {
	if _, ok := r.types[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.types, id)
	return nil
}

func (r *fakeExerciseCatalogRepo) CreateCategory(_ context.Context, c *domain.ExerciseCategory) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	cp := *c
	r.categories[c.ID] = &cp
	return c.ID, nil
}

func (r *fakeExerciseCatalogRepo) GetCategories(_ context.Context, trainerID int64) ([]domain.ExerciseCategory, error) {
	var out []domain.ExerciseCategory
	for _, c := range r.categories {
		if c.TrainerID == trainerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeExerciseCatalogRepo) GetCategoryByID(_ context.Context, id int64) (*domain.ExerciseCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeExerciseCatalogRepo) UpdateCategory(_ context.Context, id int64, name string, typeID *int64) (*domain.ExerciseCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = name
	if typeID != nil {
		c.TypeID = typeID
	}
	cp := *c
	return &cp, nil
}

func (r *fakeExerciseCatalogRepo) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeExerciseCatalogRepo) CreateExercise(_ context.Context, e *domain.Exercise) (int64, error) {
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	cp := *e
	r.exercises[e.ID] = &cp
	return e.ID, nil
}

func (r *fakeExerciseCatalogRepo) GetExerciseByID(_ context.Context, id int64) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExerciseCatalogRepo) GetExercises(_ context.Context, trainerID int64) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.TrainerID == trainerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExerciseCatalogRepo) UpdateExercise(_ context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		e.Name = *update.Name
	}
	if update.Description != nil {
		e.Description = *update.Description
	}
	if update.CategoryID != nil {
		e.CategoryID = update.CategoryID
	}
	e.UpdatedAt = time.Now()
	cp := *e
	return &cp, nil
}

func (r *fakeExerciseCatalogRepo) DeleteExercise(_ context.Context, id int64) error {
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

// --- fakeMealCatalogRepo ---

type fakeMealCatalogRepo struct {
	nextID     int64
	categories map[int64]*domain.MealCategory
	meals      map[int64]*domain.Meal
}

func newFakeMealCatalogRepo() *fakeMealCatalogRepo {
	return &fakeMealCatalogRepo{
		categories: make(map[int64]*domain.MealCategory),
		meals:      make(map[int64]*domain.Meal),
	}
}

func (r *fakeMealCatalogRepo) CreateCategory(_ context.Context, c *domain.MealCategory) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	cp := *c
	r.categories[c.ID] = &cp
	return c.ID, nil
}

func (r *fakeMealCatalogRepo) GetCategories(_ context.Context, trainerID int64) ([]domain.MealCategory, error) {
	var out []domain.MealCategory
	for _, c := range r.categories {
		if c.TrainerID == trainerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeMealCatalogRepo) GetCategoryByID(_ context.Context, id int64) (*domain.MealCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeMealCatalogRepo) UpdateCategory(_ context.Context, id int64, name string) (*domain.MealCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = name
	cp := *c
	return &cp, nil
}

func (r *fakeMealCatalogRepo) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeMealCatalogRepo) CreateMeal(_ context.Context, m *domain.Meal) (int64, error) {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	cp := *m
	r.meals[m.ID] = &cp
	return m.ID, nil
}

func (r *fakeMealCatalogRepo) GetMealByID(_ context.Context, id int64) (*domain.Meal, error) {
	m, ok := r.meals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMealCatalogRepo) GetMeals(_ context.Context, trainerID int64) ([]domain.Meal, error) {
	var out []domain.Meal
	for _, m := range r.meals {
		if m.TrainerID == trainerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMealCatalogRepo) UpdateMeal(_ context.Context, id int64, update domain.MealUpdate) (*domain.Meal, error) {
	m, ok := r.meals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Description != nil {
		m.Description = *update.Description
	}
	if update.CategoryID != nil {
		m.CategoryID = update.CategoryID
	}
	m.UpdatedAt = time.Now()
	cp := *m
	return &cp, nil
}

func (r *fakeMealCatalogRepo) DeleteMeal(_ context.Context, id int64) error {
	if _, ok := r.meals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.meals, id)
	return nil
}

// --- fakeSupplementCatalogRepo ---

type fakeSupplementCatalogRepo struct {
	nextID      int64
	categories  map[int64]*domain.SupplementCategory
	supplements map[int64]*domain.Supplement
}

func newFakeSupplementCatalogRepo() *fakeSupplementCatalogRepo {
	return &fakeSupplementCatalogRepo{
		categories:  make(map[int64]*domain.SupplementCategory),
		supplements: make(map[int64]*domain.Supplement),
	}
}

func (r *fakeSupplementCatalogRepo) CreateCategory(_ context.Context, c *domain.SupplementCategory) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	cp := *c
	r.categories[c.ID] = &cp
	return c.ID, nil
}

func (r *fakeSupplementCatalogRepo) GetCategories(_ context.Context, trainerID int64) ([]domain.SupplementCategory, error) {
	var out []domain.SupplementCategory
	for _, c := range r.categories {
		if c.TrainerID == trainerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeSupplementCatalogRepo) GetCategoryByID(_ context.Context, id int64) (*domain.SupplementCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeSupplementCatalogRepo) UpdateCategory(_ context.Context, id int64, name string) (*domain.SupplementCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = name
	cp := *c
	return &cp, nil
}

func (r *fakeSupplementCatalogRepo) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeSupplementCatalogRepo) CreateSupplement(_ context.Context, s *domain.Supplement) (int64, error) {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	cp := *s
	r.supplements[s.ID] = &cp
	return s.ID, nil
}

func (r *fakeSupplementCatalogRepo) GetSupplementByID(_ context.Context, id int64) (*domain.Supplement, error) {
	s, ok := r.supplements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplementCatalogRepo) GetSupplements(_ context.Context, trainerID int64) ([]domain.Supplement, error) {
	var out []domain.Supplement
	for _, s := range r.supplements {
		if s.TrainerID == trainerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSupplementCatalogRepo) UpdateSupplement(_ context.Context, id int64, update domain.SupplementUpdate) (*domain.Supplement, error) {
	s, ok := r.supplements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Description != nil {
		s.Description = *update.Description
	}
	if update.CategoryID != nil {
		s.CategoryID = update.CategoryID
	}
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (r *fakeSupplementCatalogRepo) DeleteSupplement(_ context.Context, id int64) error {
	if _, ok := r.supplements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.supplements, id)
	return nil
}

// --- fakeMediaRepo ---

type fakeMediaRepo struct {
	nextID int64
	media  map[int64]*domain.ExerciseMedia
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: make(map[int64]*domain.ExerciseMedia)}
}

func (r *fakeMediaRepo) Create(_ context.Context, m *domain.ExerciseMedia) (int64, error) {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	cp := *m
	r.media[m.ID] = &cp
	return m.ID, nil
}

func (r *fakeMediaRepo) GetByExerciseID(_ context.Context, exerciseID int64) ([]domain.ExerciseMedia, error) {
	var out []domain.ExerciseMedia
	for _, m := range r.media {
		if m.ExerciseID == exerciseID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMediaRepo) DeleteByExerciseID(_ context.Context, exerciseID int64) ([]domain.ExerciseMedia, error) {
	var out []domain.ExerciseMedia
	for id, m := range r.media {
		if m.ExerciseID == exerciseID {
			out = append(out, *m)
			delete(r.media, id)
		}
	}
	return out, nil
}

// --- fakeFileStorage ---

type fakeFileStorage struct {
	objects map[string][]byte
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: make(map[string][]byte)}
}

func (f *fakeFileStorage) PutObject(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}
