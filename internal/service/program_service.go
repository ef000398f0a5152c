package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidDayOfWeek   = errors.New("day of week must be between 0 and 6")
)

// ProgramService manages per-student assignments: exercise programs,
// meal plans and supplements. Bulk saves are full replacements of the
// scoped set, not diffs. Row-level mutations are scoped to the owning
// student; a row belonging to another student reads as missing.
type ProgramService interface {
	GetPrograms(ctx context.Context, studentID int64) ([]domain.ExerciseProgram, error)
	GetProgramsForDay(ctx context.Context, studentID int64, day int) ([]domain.ExerciseProgram, error)
	AssignExercise(ctx context.Context, program *domain.ExerciseProgram) (*domain.ExerciseProgram, error)
	SetProgramCompleted(ctx context.Context, studentID, id int64, completed bool) error
	DeleteProgram(ctx context.Context, studentID, id int64) error
	ReplacePrograms(ctx context.Context, trainerID, studentID int64, day int, items []domain.ExerciseProgram) ([]domain.ExerciseProgram, error)

	GetMealPlans(ctx context.Context, studentID int64) ([]domain.MealPlan, error)
	GetMealPlansForDay(ctx context.Context, studentID int64, day int) ([]domain.MealPlan, error)
	AssignMeal(ctx context.Context, plan *domain.MealPlan) (*domain.MealPlan, error)
	SetMealPlanCompleted(ctx context.Context, studentID, id int64, completed bool) error
	DeleteMealPlan(ctx context.Context, studentID, id int64) error
	ReplaceMealPlans(ctx context.Context, trainerID, studentID int64, day int, items []domain.MealPlan) ([]domain.MealPlan, error)

	GetSupplements(ctx context.Context, studentID int64) ([]domain.StudentSupplement, error)
	AssignSupplement(ctx context.Context, sup *domain.StudentSupplement) (*domain.StudentSupplement, error)
	SetSupplementCompleted(ctx context.Context, studentID, id int64, completed bool) error
	DeleteStudentSupplement(ctx context.Context, studentID, id int64) error
	// ReplaceSupplements replaces the student's whole supplement set;
	// unlike the other two it is not scoped by day. Observed behavior
	// of the product, kept as-is.
	ReplaceSupplements(ctx context.Context, trainerID, studentID int64, items []domain.StudentSupplement) ([]domain.StudentSupplement, error)
}

type programService struct {
	assignmentRepo repository.AssignmentRepository
	historyRepo    repository.HistoryRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(assignmentRepo repository.AssignmentRepository, historyRepo repository.HistoryRepository) ProgramService {
	return &programService{
		assignmentRepo: assignmentRepo,
		historyRepo:    historyRepo,
	}
}

func validDay(day int) bool { return day >= 0 && day <= 6 }

// --- Exercise programs ---

func (s *programService) GetPrograms(ctx context.Context, studentID int64) ([]domain.ExerciseProgram, error) {
	return s.assignmentRepo.GetProgramsByStudent(ctx, studentID)
}

func (s *programService) GetProgramsForDay(ctx context.Context, studentID int64, day int) ([]domain.ExerciseProgram, error) {
	if !validDay(day) {
		return nil, ErrInvalidDayOfWeek
	}
	return s.assignmentRepo.GetProgramsByStudentAndDay(ctx, studentID, day)
}

func (s *programService) AssignExercise(ctx context.Context, program *domain.ExerciseProgram) (*domain.ExerciseProgram, error) {
	if !validDay(program.DayOfWeek) {
		return nil, ErrInvalidDayOfWeek
	}
	if program.StudentID == 0 || program.ExerciseID == 0 {
		return nil, ErrValidationFailed
	}
	if _, err := s.assignmentRepo.CreateProgram(ctx, program); err != nil {
		return nil, err
	}
	s.logHistory(ctx, program.TrainerID, program.StudentID, "create", "exercise_program", &program.ID,
		fmt.Sprintf("تمرین برای روز %d اختصاص یافت", program.DayOfWeek))
	return program, nil
}

func (s *programService) SetProgramCompleted(ctx context.Context, studentID, id int64, completed bool) error {
	return mapAssignmentErr(s.assignmentRepo.SetProgramCompleted(ctx, studentID, id, completed))
}

func (s *programService) DeleteProgram(ctx context.Context, studentID, id int64) error {
	return mapAssignmentErr(s.assignmentRepo.DeleteProgram(ctx, studentID, id))
}

func (s *programService) ReplacePrograms(ctx context.Context, trainerID, studentID int64, day int, items []domain.ExerciseProgram) ([]domain.ExerciseProgram, error) {
	if !validDay(day) {
		return nil, ErrInvalidDayOfWeek
	}
	for i := range items {
		items[i].TrainerID = trainerID
	}
	out, err := s.assignmentRepo.ReplacePrograms(ctx, studentID, day, items)
	if err != nil {
		return nil, err
	}
	s.logHistory(ctx, trainerID, studentID, "bulk_replace", "exercise_program", nil,
		fmt.Sprintf("برنامه تمرینی روز %d بازنویسی شد (%d مورد)", day, len(out)))
	return out, nil
}

// --- Meal plans ---

func (s *programService) GetMealPlans(ctx context.Context, studentID int64) ([]domain.MealPlan, error) {
	return s.assignmentRepo.GetMealPlansByStudent(ctx, studentID)
}

func (s *programService) GetMealPlansForDay(ctx context.Context, studentID int64, day int) ([]domain.MealPlan, error) {
	if !validDay(day) {
		return nil, ErrInvalidDayOfWeek
	}
	return s.assignmentRepo.GetMealPlansByStudentAndDay(ctx, studentID, day)
}

func (s *programService) AssignMeal(ctx context.Context, plan *domain.MealPlan) (*domain.MealPlan, error) {
	if !validDay(plan.DayOfWeek) {
		return nil, ErrInvalidDayOfWeek
	}
	if plan.StudentID == 0 || plan.MealID == 0 {
		return nil, ErrValidationFailed
	}
	if _, err := s.assignmentRepo.CreateMealPlan(ctx, plan); err != nil {
		return nil, err
	}
	s.logHistory(ctx, plan.TrainerID, plan.StudentID, "create", "meal_plan", &plan.ID,
		fmt.Sprintf("وعده غذایی برای روز %d اختصاص یافت", plan.DayOfWeek))
	return plan, nil
}

func (s *programService) SetMealPlanCompleted(ctx context.Context, studentID, id int64, completed bool) error {
	return mapAssignmentErr(s.assignmentRepo.SetMealPlanCompleted(ctx, studentID, id, completed))
}

func (s *programService) DeleteMealPlan(ctx context.Context, studentID, id int64) error {
	return mapAssignmentErr(s.assignmentRepo.DeleteMealPlan(ctx, studentID, id))
}

func (s *programService) ReplaceMealPlans(ctx context.Context, trainerID, studentID int64, day int, items []domain.MealPlan) ([]domain.MealPlan, error) {
	if !validDay(day) {
		return nil, ErrInvalidDayOfWeek
	}
	for i := range items {
		items[i].TrainerID = trainerID
	}
	out, err := s.assignmentRepo.ReplaceMealPlans(ctx, studentID, day, items)
	if err != nil {
		return nil, err
	}
	s.logHistory(ctx, trainerID, studentID, "bulk_replace", "meal_plan", nil,
		fmt.Sprintf("برنامه غذایی روز %d بازنویسی شد (%d مورد)", day, len(out)))
	return out, nil
}

// --- Supplements ---

func (s *programService) GetSupplements(ctx context.Context, studentID int64) ([]domain.StudentSupplement, error) {
	return s.assignmentRepo.GetSupplementsByStudent(ctx, studentID)
}

func (s *programService) AssignSupplement(ctx context.Context, sup *domain.StudentSupplement) (*domain.StudentSupplement, error) {
	if sup.StudentID == 0 || sup.SupplementID == 0 {
		return nil, ErrValidationFailed
	}
	if _, err := s.assignmentRepo.CreateSupplement(ctx, sup); err != nil {
		return nil, err
	}
	s.logHistory(ctx, sup.TrainerID, sup.StudentID, "create", "student_supplement", &sup.ID,
		"مکمل اختصاص یافت")
	return sup, nil
}

func (s *programService) SetSupplementCompleted(ctx context.Context, studentID, id int64, completed bool) error {
	return mapAssignmentErr(s.assignmentRepo.SetSupplementCompleted(ctx, studentID, id, completed))
}

func (s *programService) DeleteStudentSupplement(ctx context.Context, studentID, id int64) error {
	return mapAssignmentErr(s.assignmentRepo.DeleteSupplement(ctx, studentID, id))
}

func (s *programService) ReplaceSupplements(ctx context.Context, trainerID, studentID int64, items []domain.StudentSupplement) ([]domain.StudentSupplement, error) {
	for i := range items {
		items[i].TrainerID = trainerID
	}
	out, err := s.assignmentRepo.ReplaceSupplements(ctx, studentID, items)
	if err != nil {
		return nil, err
	}
	s.logHistory(ctx, trainerID, studentID, "bulk_replace", "student_supplement", nil,
		fmt.Sprintf("مکمل‌های شاگرد بازنویسی شد (%d مورد)", len(out)))
	return out, nil
}

func (s *programService) logHistory(ctx context.Context, trainerID, studentID int64, action, entityType string, entityID *int64, description string) {
	entry := &domain.StudentHistory{
		StudentID:   studentID,
		TrainerID:   trainerID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	}
	if _, err := s.historyRepo.Create(ctx, entry); err != nil {
		log.Printf("ERROR: failed to write history entry (%s %s): %v", action, entityType, err)
	}
}

func mapAssignmentErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAssignmentNotFound
	}
	return err
}
