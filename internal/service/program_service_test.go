package service

import (
	"context"
	"errors"
	"testing"

	"tamrino/trainer-app/internal/domain"
)

func TestAssignExercise(t *testing.T) {
	repo := newFakeAssignmentRepo()
	history := newFakeHistoryRepo()
	svc := NewProgramService(repo, history)
	ctx := context.Background()

	program, err := svc.AssignExercise(ctx, &domain.ExerciseProgram{
		StudentID:  5,
		TrainerID:  1,
		ExerciseID: 10,
		DayOfWeek:  2,
		Sets:       4,
		Reps:       "8-12",
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if program.ID == 0 {
		t.Error("expected an assigned program ID")
	}
	if len(history.entries) != 1 {
		t.Errorf("expected a history entry, got %d", len(history.entries))
	}
}

func TestAssignExerciseInvalidDay(t *testing.T) {
	svc := NewProgramService(newFakeAssignmentRepo(), newFakeHistoryRepo())

	_, err := svc.AssignExercise(context.Background(), &domain.ExerciseProgram{
		StudentID: 5, ExerciseID: 10, DayOfWeek: 7,
	})
	if !errors.Is(err, ErrInvalidDayOfWeek) {
		t.Errorf("got %v, want ErrInvalidDayOfWeek", err)
	}
}

func TestReplaceProgramsIsFullReplacement(t *testing.T) {
	repo := newFakeAssignmentRepo()
	svc := NewProgramService(repo, newFakeHistoryRepo())
	ctx := context.Background()

	// Seed day 1 with two rows and day 2 with one.
	svc.AssignExercise(ctx, &domain.ExerciseProgram{StudentID: 5, TrainerID: 1, ExerciseID: 10, DayOfWeek: 1})
	svc.AssignExercise(ctx, &domain.ExerciseProgram{StudentID: 5, TrainerID: 1, ExerciseID: 11, DayOfWeek: 1})
	svc.AssignExercise(ctx, &domain.ExerciseProgram{StudentID: 5, TrainerID: 1, ExerciseID: 12, DayOfWeek: 2})

	out, err := svc.ReplacePrograms(ctx, 1, 5, 1, []domain.ExerciseProgram{
		{StudentID: 5, ExerciseID: 20, DayOfWeek: 1, Sets: 3, Reps: "10"},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("returned %d rows, want 1", len(out))
	}
	if out[0].TrainerID != 1 {
		t.Error("trainer ID was not stamped onto the replacement rows")
	}

	day1, _ := svc.GetProgramsForDay(ctx, 5, 1)
	if len(day1) != 1 || day1[0].ExerciseID != 20 {
		t.Errorf("day 1 after replace = %+v, want only exercise 20", day1)
	}
	// Day 2 is outside the scope and must survive.
	day2, _ := svc.GetProgramsForDay(ctx, 5, 2)
	if len(day2) != 1 || day2[0].ExerciseID != 12 {
		t.Error("replace leaked outside its day scope")
	}
}

func TestReplaceProgramsEmptyClearsDay(t *testing.T) {
	svc := NewProgramService(newFakeAssignmentRepo(), newFakeHistoryRepo())
	ctx := context.Background()

	svc.AssignExercise(ctx, &domain.ExerciseProgram{StudentID: 5, TrainerID: 1, ExerciseID: 10, DayOfWeek: 3})

	out, err := svc.ReplacePrograms(ctx, 1, 5, 3, nil)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("empty replace returned %d rows", len(out))
	}
	day3, _ := svc.GetProgramsForDay(ctx, 5, 3)
	if len(day3) != 0 {
		t.Error("empty bulk save must clear the day")
	}
}

func TestReplaceSupplementsIgnoresDay(t *testing.T) {
	svc := NewProgramService(newFakeAssignmentRepo(), newFakeHistoryRepo())
	ctx := context.Background()

	svc.AssignSupplement(ctx, &domain.StudentSupplement{StudentID: 5, TrainerID: 1, SupplementID: 1})
	svc.AssignSupplement(ctx, &domain.StudentSupplement{StudentID: 5, TrainerID: 1, SupplementID: 2})
	svc.AssignSupplement(ctx, &domain.StudentSupplement{StudentID: 6, TrainerID: 1, SupplementID: 3})

	out, err := svc.ReplaceSupplements(ctx, 1, 5, []domain.StudentSupplement{
		{StudentID: 5, SupplementID: 9, Dosage: "5g"},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("returned %d rows, want 1", len(out))
	}

	// The student's whole set was replaced, not a day slice.
	mine, _ := svc.GetSupplements(ctx, 5)
	if len(mine) != 1 || mine[0].SupplementID != 9 {
		t.Errorf("supplements after replace = %+v", mine)
	}
	// Another student's rows are untouched.
	other, _ := svc.GetSupplements(ctx, 6)
	if len(other) != 1 {
		t.Error("replace leaked into another student's supplements")
	}
}

func TestSetProgramCompleted(t *testing.T) {
	svc := NewProgramService(newFakeAssignmentRepo(), newFakeHistoryRepo())
	ctx := context.Background()

	program, _ := svc.AssignExercise(ctx, &domain.ExerciseProgram{StudentID: 5, TrainerID: 1, ExerciseID: 10, DayOfWeek: 0})

	if err := svc.SetProgramCompleted(ctx, 5, program.ID, true); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	rows, _ := svc.GetPrograms(ctx, 5)
	if !rows[0].IsCompleted {
		t.Error("expected the program to be marked completed")
	}

	if err := svc.SetProgramCompleted(ctx, 5, 999, true); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("got %v, want ErrAssignmentNotFound", err)
	}
}

func TestAssignmentRowOpsScopedToStudent(t *testing.T) {
	svc := NewProgramService(newFakeAssignmentRepo(), newFakeHistoryRepo())
	ctx := context.Background()

	program, _ := svc.AssignExercise(ctx, &domain.ExerciseProgram{StudentID: 5, TrainerID: 1, ExerciseID: 10, DayOfWeek: 1})
	plan, _ := svc.AssignMeal(ctx, &domain.MealPlan{StudentID: 5, TrainerID: 1, MealID: 20, DayOfWeek: 1})
	sup, _ := svc.AssignSupplement(ctx, &domain.StudentSupplement{StudentID: 5, TrainerID: 1, SupplementID: 30})

	// A different student cannot touch student 5's rows.
	if err := svc.SetProgramCompleted(ctx, 6, program.ID, true); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("foreign complete: got %v, want ErrAssignmentNotFound", err)
	}
	if err := svc.DeleteProgram(ctx, 6, program.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("foreign program delete: got %v, want ErrAssignmentNotFound", err)
	}
	if err := svc.SetMealPlanCompleted(ctx, 6, plan.ID, true); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("foreign meal complete: got %v, want ErrAssignmentNotFound", err)
	}
	if err := svc.DeleteMealPlan(ctx, 6, plan.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("foreign meal delete: got %v, want ErrAssignmentNotFound", err)
	}
	if err := svc.SetSupplementCompleted(ctx, 6, sup.ID, true); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("foreign supplement complete: got %v, want ErrAssignmentNotFound", err)
	}
	if err := svc.DeleteStudentSupplement(ctx, 6, sup.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("foreign supplement delete: got %v, want ErrAssignmentNotFound", err)
	}

	// The rows survive untouched.
	programs, _ := svc.GetPrograms(ctx, 5)
	if len(programs) != 1 || programs[0].IsCompleted {
		t.Errorf("programs after foreign ops = %+v", programs)
	}
	plans, _ := svc.GetMealPlans(ctx, 5)
	if len(plans) != 1 || plans[0].IsCompleted {
		t.Errorf("meal plans after foreign ops = %+v", plans)
	}
	sups, _ := svc.GetSupplements(ctx, 5)
	if len(sups) != 1 || sups[0].IsCompleted {
		t.Errorf("supplements after foreign ops = %+v", sups)
	}

	// The owner still can.
	if err := svc.DeleteProgram(ctx, 5, program.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestGetProgramsForDayValidation(t *testing.T) {
	svc := NewProgramService(newFakeAssignmentRepo(), newFakeHistoryRepo())

	if _, err := svc.GetProgramsForDay(context.Background(), 5, -1); !errors.Is(err, ErrInvalidDayOfWeek) {
		t.Errorf("got %v, want ErrInvalidDayOfWeek", err)
	}
	if _, err := svc.GetProgramsForDay(context.Background(), 5, 7); !errors.Is(err, ErrInvalidDayOfWeek) {
		t.Errorf("got %v, want ErrInvalidDayOfWeek", err)
	}
}
