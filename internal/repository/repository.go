package repository

import (
	"context"

	"tamrino/trainer-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrDuplicate    = RepositoryError("duplicate row")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainerRepository manages trainers and their 1:1 profiles.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Trainer, error)
	CreateProfile(ctx context.Context, profile *domain.TrainerProfile) (int64, error)
	GetProfile(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error)
	UpdateProfile(ctx context.Context, trainerID int64, update domain.TrainerProfileUpdate) (*domain.TrainerProfile, error)
}

// StudentRepository manages students. Delete runs the full cascade
// (history, programs, meal plans, supplements, tickets with their
// responses) in one transaction before removing the student row.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Student, error)
	GetByPhoneAndTrainer(ctx context.Context, phone string, trainerID int64) (*domain.Student, error)
	GetByTrainerID(ctx context.Context, trainerID int64) ([]domain.Student, error)
	Update(ctx context.Context, id int64, update domain.StudentUpdate) (*domain.Student, error)
	Delete(ctx context.Context, id int64) error
}

// ExerciseCatalogRepository manages the exercise template hierarchy
// (types, categories, exercises).
type ExerciseCatalogRepository interface {
	CreateType(ctx context.Context, t *domain.ExerciseType) (int64, error)
	GetTypeByID(ctx context.Context, id int64) (*domain.ExerciseType, error)
	GetTypes(ctx context.Context, trainerID int64) ([]domain.ExerciseType, error)
	UpdateType(ctx context.Context, id int64, name string) (*domain.ExerciseType, error)
	DeleteType(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c *domain.ExerciseCategory) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.ExerciseCategory, error)
	GetCategories(ctx context.Context, trainerID int64) ([]domain.ExerciseCategory, error)
	UpdateCategory(ctx context.Context, id int64, name string, typeID *int64) (*domain.ExerciseCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateExercise(ctx context.Context, e *domain.Exercise) (int64, error)
	GetExerciseByID(ctx context.Context, id int64) (*domain.Exercise, error)
	GetExercises(ctx context.Context, trainerID int64) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
}

// MealCatalogRepository manages meal categories and meals.
type MealCatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.MealCategory) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.MealCategory, error)
	GetCategories(ctx context.Context, trainerID int64) ([]domain.MealCategory, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*domain.MealCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateMeal(ctx context.Context, m *domain.Meal) (int64, error)
	GetMealByID(ctx context.Context, id int64) (*domain.Meal, error)
	GetMeals(ctx context.Context, trainerID int64) ([]domain.Meal, error)
	UpdateMeal(ctx context.Context, id int64, update domain.MealUpdate) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, id int64) error
}

// SupplementCatalogRepository manages supplement categories and
// supplements.
type SupplementCatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.SupplementCategory) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.SupplementCategory, error)
	GetCategories(ctx context.Context, trainerID int64) ([]domain.SupplementCategory, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*domain.SupplementCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateSupplement(ctx context.Context, s *domain.Supplement) (int64, error)
	GetSupplementByID(ctx context.Context, id int64) (*domain.Supplement, error)
	GetSupplements(ctx context.Context, trainerID int64) ([]domain.Supplement, error)
	UpdateSupplement(ctx context.Context, id int64, update domain.SupplementUpdate) (*domain.Supplement, error)
	DeleteSupplement(ctx context.Context, id int64) error
}

// AssignmentRepository manages the join rows binding students to
// catalog entities. The Replace methods implement bulk-save as a
// transactional delete-then-insert: all rows for the scope are removed
// and the new set inserted fresh, so row IDs do not survive a bulk
// save. Supplements replace the student's whole set (no day scope).
// Row-level mutations take the owning student ID and treat a row
// belonging to a different student as missing.
type AssignmentRepository interface {
	CreateProgram(ctx context.Context, p *domain.ExerciseProgram) (int64, error)
	GetProgramsByStudent(ctx context.Context, studentID int64) ([]domain.ExerciseProgram, error)
	GetProgramsByStudentAndDay(ctx context.Context, studentID int64, day int) ([]domain.ExerciseProgram, error)
	SetProgramCompleted(ctx context.Context, studentID, id int64, completed bool) error
	DeleteProgram(ctx context.Context, studentID, id int64) error
	ReplacePrograms(ctx context.Context, studentID int64, day int, items []domain.ExerciseProgram) ([]domain.ExerciseProgram, error)

	CreateMealPlan(ctx context.Context, p *domain.MealPlan) (int64, error)
	GetMealPlansByStudent(ctx context.Context, studentID int64) ([]domain.MealPlan, error)
	GetMealPlansByStudentAndDay(ctx context.Context, studentID int64, day int) ([]domain.MealPlan, error)
	SetMealPlanCompleted(ctx context.Context, studentID, id int64, completed bool) error
	DeleteMealPlan(ctx context.Context, studentID, id int64) error
	ReplaceMealPlans(ctx context.Context, studentID int64, day int, items []domain.MealPlan) ([]domain.MealPlan, error)

	CreateSupplement(ctx context.Context, s *domain.StudentSupplement) (int64, error)
	GetSupplementsByStudent(ctx context.Context, studentID int64) ([]domain.StudentSupplement, error)
	SetSupplementCompleted(ctx context.Context, studentID, id int64, completed bool) error
	DeleteSupplement(ctx context.Context, studentID, id int64) error
	ReplaceSupplements(ctx context.Context, studentID int64, items []domain.StudentSupplement) ([]domain.StudentSupplement, error)
}

// HistoryRepository manages the append-only student audit log.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.StudentHistory) (int64, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]domain.StudentHistory, error)
	DeleteByTrainerID(ctx context.Context, trainerID int64) (int64, error)
}

// SupportRepository manages tickets, their threaded responses, and the
// unthreaded message log. DeleteTicket removes the ticket's responses
// first, in the same transaction.
type SupportRepository interface {
	CreateTicket(ctx context.Context, t *domain.SupportTicket) (int64, error)
	GetTicketByID(ctx context.Context, id int64) (*domain.SupportTicket, error)
	GetTicketsByTrainerID(ctx context.Context, trainerID int64) ([]domain.SupportTicket, error)
	GetTicketsByStudentID(ctx context.Context, studentID int64) ([]domain.SupportTicket, error)
	UpdateTicket(ctx context.Context, id int64, update domain.TicketUpdate) (*domain.SupportTicket, error)
	DeleteTicket(ctx context.Context, id int64) error

	CreateResponse(ctx context.Context, r *domain.TicketResponse) (int64, error)
	GetResponsesByTicketID(ctx context.Context, ticketID int64) ([]domain.TicketResponse, error)

	CreateMessage(ctx context.Context, m *domain.SupportMessage) (int64, error)
	GetMessageByID(ctx context.Context, id int64) (*domain.SupportMessage, error)
	GetMessagesByStudentID(ctx context.Context, studentID int64) ([]domain.SupportMessage, error)
	GetMessagesByTrainerID(ctx context.Context, trainerID int64) ([]domain.SupportMessage, error)
	MarkMessageRead(ctx context.Context, id int64) error
	ClearByTrainerID(ctx context.Context, trainerID int64) error
}

// PreferenceRepository manages the generic key/value store. Set is an
// upsert implemented as fetch-then-update-else-insert; the identity
// columns are nullable, so uniqueness is enforced by two partial
// indexes rather than one composite constraint.
type PreferenceRepository interface {
	Get(ctx context.Context, id domain.PrefIdentity, key string) (*domain.UserPreference, error)
	Set(ctx context.Context, id domain.PrefIdentity, key, value string) (*domain.UserPreference, error)
	Remove(ctx context.Context, id domain.PrefIdentity, key string) error
	List(ctx context.Context, id domain.PrefIdentity) ([]domain.UserPreference, error)
	RemoveAll(ctx context.Context, id domain.PrefIdentity) error
}

// SessionRepository manages server-side auth sessions by token.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.AuthSession) error
	GetByToken(ctx context.Context, token string) (*domain.AuthSession, error)
	Save(ctx context.Context, s *domain.AuthSession) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// MediaRepository manages exercise demo-media metadata.
type MediaRepository interface {
	Create(ctx context.Context, m *domain.ExerciseMedia) (int64, error)
	GetByExerciseID(ctx context.Context, exerciseID int64) ([]domain.ExerciseMedia, error)
	DeleteByExerciseID(ctx context.Context, exerciseID int64) ([]domain.ExerciseMedia, error)
}
