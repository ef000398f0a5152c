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
	ErrStudentNotFound  = errors.New("student not found")
	ErrValidationFailed = errors.New("validation failed")
)

// DuplicatePhoneError signals a student-create collision on
// (phone, trainerId). The message is what the panel shows verbatim.
type DuplicatePhoneError struct {
	Phone string
}

func (e *DuplicatePhoneError) Error() string {
	return fmt.Sprintf("شاگردی با شماره %s قبلا ثبت شده است", e.Phone)
}

// StudentService owns the student lifecycle, including the ordered
// cascade on delete and best-effort history logging.
type StudentService interface {
	GetStudents(ctx context.Context, trainerID int64) ([]domain.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*domain.Student, error)
	CreateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error)
	UpdateStudent(ctx context.Context, trainerID, id int64, update domain.StudentUpdate) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	GetHistory(ctx context.Context, studentID int64) ([]domain.StudentHistory, error)
	PurgeHistory(ctx context.Context, trainerID int64) (int64, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	historyRepo repository.HistoryRepository
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(studentRepo repository.StudentRepository, historyRepo repository.HistoryRepository) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		historyRepo: historyRepo,
	}
}

func (s *studentService) GetStudents(ctx context.Context, trainerID int64) ([]domain.Student, error) {
	if trainerID == 0 {
		return nil, errors.New("trainer ID cannot be zero")
	}
	return s.studentRepo.GetByTrainerID(ctx, trainerID)
}

func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*domain.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// CreateStudent checks the duplicate-phone rule before insert: the same
// phone under the same trainer fails, the same phone under a different
// trainer is a different student. The unique constraint backs the check
// up against races.
func (s *studentService) CreateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if student.Name == "" || student.Phone == "" {
		return nil, ErrValidationFailed
	}
	if student.TrainerID == 0 {
		return nil, errors.New("trainer ID is required to create a student")
	}

	_, err := s.studentRepo.GetByPhoneAndTrainer(ctx, student.Phone, student.TrainerID)
	if err == nil {
		return nil, &DuplicatePhoneError{Phone: student.Phone}
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	student.IsActive = true
	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &DuplicatePhoneError{Phone: student.Phone}
		}
		return nil, err
	}

	s.logHistory(ctx, student.TrainerID, student.ID, "create", "student", &student.ID,
		fmt.Sprintf("شاگرد %s اضافه شد", student.Name))
	return student, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, trainerID, id int64, update domain.StudentUpdate) (*domain.Student, error) {
	student, err := s.studentRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			phone := ""
			if update.Phone != nil {
				phone = *update.Phone
			}
			return nil, &DuplicatePhoneError{Phone: phone}
		}
		return nil, err
	}

	s.logHistory(ctx, trainerID, id, "update", "student", &id,
		fmt.Sprintf("اطلاعات شاگرد %s ویرایش شد", student.Name))
	return student, nil
}

// DeleteStudent removes the student and everything referencing them.
// The repository runs the cascade in a single transaction; a failed
// step fails the whole delete. No history entry is written: the
// student's log is part of what the cascade removes.
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	err := s.studentRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

func (s *studentService) GetHistory(ctx context.Context, studentID int64) ([]domain.StudentHistory, error) {
	return s.historyRepo.GetByStudentID(ctx, studentID)
}

func (s *studentService) PurgeHistory(ctx context.Context, trainerID int64) (int64, error) {
	return s.historyRepo.DeleteByTrainerID(ctx, trainerID)
}

// logHistory appends an audit entry and swallows failures. The primary
// mutation is the source of truth; a missing audit line must never roll
// it back or surface as an error.
func (s *studentService) logHistory(ctx context.Context, trainerID, studentID int64, action, entityType string, entityID *int64, description string) {
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
