package service

import (
	"context"
	"errors"
	"log"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"
	"tamrino/trainer-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrCatalogAccessDenied = errors.New("access denied to modify this catalog item")
)

// CatalogService is the single CRUD surface over all template
// catalogs: the exercise hierarchy, meals, and supplements. Callers
// cannot observe which entities were raw-SQL and which were ORM-mapped
// in earlier incarnations; it is all one store now. Every update and
// delete loads the row and checks ownership before touching it.
type CatalogService interface {
	// Exercise hierarchy
	CreateExerciseType(ctx context.Context, trainerID int64, name string) (*domain.ExerciseType, error)
	GetExerciseTypes(ctx context.Context, trainerID int64) ([]domain.ExerciseType, error)
	UpdateExerciseType(ctx context.Context, trainerID, id int64, name string) (*domain.ExerciseType, error)
	DeleteExerciseType(ctx context.Context, trainerID, id int64) error

	CreateExerciseCategory(ctx context.Context, trainerID int64, name string, typeID *int64) (*domain.ExerciseCategory, error)
	GetExerciseCategories(ctx context.Context, trainerID int64) ([]domain.ExerciseCategory, error)
	UpdateExerciseCategory(ctx context.Context, trainerID, id int64, name string, typeID *int64) (*domain.ExerciseCategory, error)
	DeleteExerciseCategory(ctx context.Context, trainerID, id int64) error

	CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExercises(ctx context.Context, trainerID int64) ([]domain.Exercise, error)
	GetExerciseByID(ctx context.Context, id int64) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, trainerID, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, trainerID, id int64) error

	// Meals
	CreateMealCategory(ctx context.Context, trainerID int64, name string) (*domain.MealCategory, error)
	GetMealCategories(ctx context.Context, trainerID int64) ([]domain.MealCategory, error)
	UpdateMealCategory(ctx context.Context, trainerID, id int64, name string) (*domain.MealCategory, error)
	DeleteMealCategory(ctx context.Context, trainerID, id int64) error

	CreateMeal(ctx context.Context, meal *domain.Meal) (*domain.Meal, error)
	GetMeals(ctx context.Context, trainerID int64) ([]domain.Meal, error)
	UpdateMeal(ctx context.Context, trainerID, id int64, update domain.MealUpdate) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, trainerID, id int64) error

	// Supplements
	CreateSupplementCategory(ctx context.Context, trainerID int64, name string) (*domain.SupplementCategory, error)
	GetSupplementCategories(ctx context.Context, trainerID int64) ([]domain.SupplementCategory, error)
	UpdateSupplementCategory(ctx context.Context, trainerID, id int64, name string) (*domain.SupplementCategory, error)
	DeleteSupplementCategory(ctx context.Context, trainerID, id int64) error

	CreateSupplement(ctx context.Context, supplement *domain.Supplement) (*domain.Supplement, error)
	GetSupplements(ctx context.Context, trainerID int64) ([]domain.Supplement, error)
	UpdateSupplement(ctx context.Context, trainerID, id int64, update domain.SupplementUpdate) (*domain.Supplement, error)
	DeleteSupplement(ctx context.Context, trainerID, id int64) error
}

type catalogService struct {
	exerciseRepo   repository.ExerciseCatalogRepository
	mealRepo       repository.MealCatalogRepository
	supplementRepo repository.SupplementCatalogRepository
	mediaRepo      repository.MediaRepository
	files          storage.FileStorage
}

// NewCatalogService creates a new instance of catalogService. mediaRepo
// and files may be nil when media support is disabled.
func NewCatalogService(
	exerciseRepo repository.ExerciseCatalogRepository,
	mealRepo repository.MealCatalogRepository,
	supplementRepo repository.SupplementCatalogRepository,
	mediaRepo repository.MediaRepository,
	files storage.FileStorage,
) CatalogService {
	return &catalogService{
		exerciseRepo:   exerciseRepo,
		mealRepo:       mealRepo,
		supplementRepo: supplementRepo,
		mediaRepo:      mediaRepo,
		files:          files,
	}
}

// --- Exercise hierarchy ---

func (s *catalogService) CreateExerciseType(ctx context.Context, trainerID int64, name string) (*domain.ExerciseType, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	t := &domain.ExerciseType{TrainerID: trainerID, Name: name}
	if _, err := s.exerciseRepo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *catalogService) GetExerciseTypes(ctx context.Context, trainerID int64) ([]domain.ExerciseType, error) {
	return s.exerciseRepo.GetTypes(ctx, trainerID)
}

func (s *catalogService) UpdateExerciseType(ctx context.Context, trainerID, id int64, name string) (*domain.ExerciseType, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	existing, err := s.exerciseRepo.GetTypeByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	t, err := s.exerciseRepo.UpdateType(ctx, id, name)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return t, nil
}

func (s *catalogService) DeleteExerciseType(ctx context.Context, trainerID, id int64) error {
	existing, err := s.exerciseRepo.GetTypeByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}
	return mapCatalogErr(s.exerciseRepo.DeleteType(ctx, id))
}

func (s *catalogService) CreateExerciseCategory(ctx context.Context, trainerID int64, name string, typeID *int64) (*domain.ExerciseCategory, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	c := &domain.ExerciseCategory{TrainerID: trainerID, Name: name, TypeID: typeID}
	if _, err := s.exerciseRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) GetExerciseCategories(ctx context.Context, trainerID int64) ([]domain.ExerciseCategory, error) {
	return s.exerciseRepo.GetCategories(ctx, trainerID)
}

func (s *catalogService) UpdateExerciseCategory(ctx context.Context, trainerID, id int64, name string, typeID *int64) (*domain.ExerciseCategory, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	existing, err := s.exerciseRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	c, err := s.exerciseRepo.UpdateCategory(ctx, id, name, typeID)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return c, nil
}

func (s *catalogService) DeleteExerciseCategory(ctx context.Context, trainerID, id int64) error {
	existing, err := s.exerciseRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}
	return mapCatalogErr(s.exerciseRepo.DeleteCategory(ctx, id))
}

func (s *catalogService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, ErrValidationFailed
	}
	if exercise.TrainerID == 0 {
		return nil, errors.New("trainer ID is required to create an exercise")
	}
	if _, err := s.exerciseRepo.CreateExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) GetExercises(ctx context.Context, trainerID int64) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetExercises(ctx, trainerID)
}

func (s *catalogService) GetExerciseByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	e, err := s.exerciseRepo.GetExerciseByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return e, nil
}

func (s *catalogService) UpdateExercise(ctx context.Context, trainerID, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	existing, err := s.exerciseRepo.GetExerciseByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	e, err := s.exerciseRepo.UpdateExercise(ctx, id, update)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return e, nil
}

// DeleteExercise removes the exercise row, then its media metadata and
// backing objects. Object deletion is best-effort: an unreachable
// bucket must not resurrect a deleted exercise.
func (s *catalogService) DeleteExercise(ctx context.Context, trainerID, id int64) error {
	existing, err := s.exerciseRepo.GetExerciseByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}

	if s.mediaRepo != nil {
		media, err := s.mediaRepo.DeleteByExerciseID(ctx, id)
		if err != nil {
			return err
		}
		if s.files != nil {
			for _, m := range media {
				if err := s.files.DeleteObject(ctx, m.ObjectKey); err != nil {
					log.Printf("ERROR: failed to delete media object %s: %v", m.ObjectKey, err)
				}
			}
		}
	}
	return mapCatalogErr(s.exerciseRepo.DeleteExercise(ctx, id))
}

// --- Meals ---

func (s *catalogService) CreateMealCategory(ctx context.Context, trainerID int64, name string) (*domain.MealCategory, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	c := &domain.MealCategory{TrainerID: trainerID, Name: name}
	if _, err := s.mealRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) GetMealCategories(ctx context.Context, trainerID int64) ([]domain.MealCategory, error) {
	return s.mealRepo.GetCategories(ctx, trainerID)
}

func (s *catalogService) UpdateMealCategory(ctx context.Context, trainerID, id int64, name string) (*domain.MealCategory, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	existing, err := s.mealRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	c, err := s.mealRepo.UpdateCategory(ctx, id, name)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return c, nil
}

func (s *catalogService) DeleteMealCategory(ctx context.Context, trainerID, id int64) error {
	existing, err := s.mealRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}
	return mapCatalogErr(s.mealRepo.DeleteCategory(ctx, id))
}

func (s *catalogService) CreateMeal(ctx context.Context, meal *domain.Meal) (*domain.Meal, error) {
	if meal.Name == "" {
		return nil, ErrValidationFailed
	}
	if meal.TrainerID == 0 {
		return nil, errors.New("trainer ID is required to create a meal")
	}
	if _, err := s.mealRepo.CreateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *catalogService) GetMeals(ctx context.Context, trainerID int64) ([]domain.Meal, error) {
	return s.mealRepo.GetMeals(ctx, trainerID)
}

func (s *catalogService) UpdateMeal(ctx context.Context, trainerID, id int64, update domain.MealUpdate) (*domain.Meal, error) {
	existing, err := s.mealRepo.GetMealByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	m, err := s.mealRepo.UpdateMeal(ctx, id, update)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return m, nil
}

func (s *catalogService) DeleteMeal(ctx context.Context, trainerID, id int64) error {
	existing, err := s.mealRepo.GetMealByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}
	return mapCatalogErr(s.mealRepo.DeleteMeal(ctx, id))
}

// --- Supplements ---

func (s *catalogService) CreateSupplementCategory(ctx context.Context, trainerID int64, name string) (*domain.SupplementCategory, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	c := &domain.SupplementCategory{TrainerID: trainerID, Name: name}
	if _, err := s.supplementRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) GetSupplementCategories(ctx context.Context, trainerID int64) ([]domain.SupplementCategory, error) {
	return s.supplementRepo.GetCategories(ctx, trainerID)
}

func (s *catalogService) UpdateSupplementCategory(ctx context.Context, trainerID, id int64, name string) (*domain.SupplementCategory, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	existing, err := s.supplementRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	c, err := s.supplementRepo.UpdateCategory(ctx, id, name)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return c, nil
}

func (s *catalogService) DeleteSupplementCategory(ctx context.Context, trainerID, id int64) error {
	existing, err := s.supplementRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}
	return mapCatalogErr(s.supplementRepo.DeleteCategory(ctx, id))
}

func (s *catalogService) CreateSupplement(ctx context.Context, supplement *domain.Supplement) (*domain.Supplement, error) {
	if supplement.Name == "" {
		return nil, ErrValidationFailed
	}
	if supplement.TrainerID == 0 {
		return nil, errors.New("trainer ID is required to create a supplement")
	}
	if _, err := s.supplementRepo.CreateSupplement(ctx, supplement); err != nil {
		return nil, err
	}
	return supplement, nil
}

func (s *catalogService) GetSupplements(ctx context.Context, trainerID int64) ([]domain.Supplement, error) {
	return s.supplementRepo.GetSupplements(ctx, trainerID)
}

func (s *catalogService) UpdateSupplement(ctx context.Context, trainerID, id int64, update domain.SupplementUpdate) (*domain.Supplement, error) {
	existing, err := s.supplementRepo.GetSupplementByID(ctx, id)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return nil, ErrCatalogAccessDenied
	}
	sp, err := s.supplementRepo.UpdateSupplement(ctx, id, update)
	if err != nil {
		return nil, mapCatalogErr(err)
	}
	return sp, nil
}

func (s *catalogService) DeleteSupplement(ctx context.Context, trainerID, id int64) error {
	existing, err := s.supplementRepo.GetSupplementByID(ctx, id)
	if err != nil {
		return mapCatalogErr(err)
	}
	if existing.TrainerID != trainerID {
		return ErrCatalogAccessDenied
	}
	return mapCatalogErr(s.supplementRepo.DeleteSupplement(ctx, id))
}

func mapCatalogErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCatalogItemNotFound
	}
	return err
}
