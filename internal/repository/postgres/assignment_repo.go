package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

const programColumns = `id, student_id, trainer_id, exercise_id, day_of_week,
	sets, reps, weight, rest_seconds, is_completed, created_at`

const mealPlanColumns = `id, student_id, trainer_id, meal_id, day_of_week,
	meal_time, notes, is_completed, created_at`

const studentSupplementColumns = `id, student_id, trainer_id, supplement_id,
	dosage, frequency, instructions, is_completed, created_at`

// pgAssignmentRepository implements repository.AssignmentRepository.
type pgAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates an assignment repository backed by
// Postgres.
func NewAssignmentRepository(pool *pgxpool.Pool) repository.AssignmentRepository {
	return &pgAssignmentRepository{pool: pool}
}

// --- Exercise programs ---

func (r *pgAssignmentRepository) CreateProgram(ctx context.Context, p *domain.ExerciseProgram) (int64, error) {
	if p.StudentID == 0 || p.ExerciseID == 0 {
		return 0, errors.New("student ID and exercise ID are required")
	}
	const q = `INSERT INTO student_exercise_programs
			(student_id, trainer_id, exercise_id, day_of_week, sets, reps, weight, rest_seconds, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, p.StudentID, p.TrainerID, p.ExerciseID, p.DayOfWeek,
		p.Sets, p.Reps, p.Weight, p.RestSeconds, p.IsCompleted).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *pgAssignmentRepository) GetProgramsByStudent(ctx context.Context, studentID int64) ([]domain.ExerciseProgram, error) {
	return r.queryPrograms(ctx,
		`SELECT `+programColumns+` FROM student_exercise_programs
		 WHERE student_id = $1 ORDER BY day_of_week, id`, studentID)
}

func (r *pgAssignmentRepository) GetProgramsByStudentAndDay(ctx context.Context, studentID int64, day int) ([]domain.ExerciseProgram, error) {
	return r.queryPrograms(ctx,
		`SELECT `+programColumns+` FROM student_exercise_programs
		 WHERE student_id = $1 AND day_of_week = $2 ORDER BY id`, studentID, day)
}

func (r *pgAssignmentRepository) queryPrograms(ctx context.Context, query string, args ...any) ([]domain.ExerciseProgram, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []domain.ExerciseProgram
	for rows.Next() {
		var p domain.ExerciseProgram
		if err := rows.Scan(&p.ID, &p.StudentID, &p.TrainerID, &p.ExerciseID, &p.DayOfWeek,
			&p.Sets, &p.Reps, &p.Weight, &p.RestSeconds, &p.IsCompleted, &p.CreatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// SetProgramCompleted flips the flag only when the row belongs to the
// given student; a foreign row reads as missing.
func (r *pgAssignmentRepository) SetProgramCompleted(ctx context.Context, studentID, id int64, completed bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE student_exercise_programs SET is_completed = $3
		 WHERE id = $1 AND student_id = $2`, id, studentID, completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAssignmentRepository) DeleteProgram(ctx context.Context, studentID, id int64) error {
	return execDelete(ctx, r.pool,
		`DELETE FROM student_exercise_programs WHERE id = $1 AND student_id = $2`, id, studentID)
}

// ReplacePrograms is the bulk-save for a (student, day) scope: it
// removes the day's rows and inserts the new set in one transaction, so
// a crash can never leave the student with a half-written day.
func (r *pgAssignmentRepository) ReplacePrograms(ctx context.Context, studentID int64, day int, items []domain.ExerciseProgram) ([]domain.ExerciseProgram, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM student_exercise_programs WHERE student_id = $1 AND day_of_week = $2`,
		studentID, day); err != nil {
		return nil, err
	}

	out := make([]domain.ExerciseProgram, 0, len(items))
	const q = `INSERT INTO student_exercise_programs
			(student_id, trainer_id, exercise_id, day_of_week, sets, reps, weight, rest_seconds, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	for _, p := range items {
		p.StudentID = studentID
		p.DayOfWeek = day
		if err := tx.QueryRow(ctx, q, p.StudentID, p.TrainerID, p.ExerciseID, p.DayOfWeek,
			p.Sets, p.Reps, p.Weight, p.RestSeconds, p.IsCompleted).Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Meal plans ---

func (r *pgAssignmentRepository) CreateMealPlan(ctx context.Context, p *domain.MealPlan) (int64, error) {
	if p.StudentID == 0 || p.MealID == 0 {
		return 0, errors.New("student ID and meal ID are required")
	}
	const q = `INSERT INTO student_meal_plans
			(student_id, trainer_id, meal_id, day_of_week, meal_time, notes, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, p.StudentID, p.TrainerID, p.MealID, p.DayOfWeek,
		p.MealTime, p.Notes, p.IsCompleted).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *pgAssignmentRepository) GetMealPlansByStudent(ctx context.Context, studentID int64) ([]domain.MealPlan, error) {
	return r.queryMealPlans(ctx,
		`SELECT `+mealPlanColumns+` FROM student_meal_plans
		 WHERE student_id = $1 ORDER BY day_of_week, id`, studentID)
}

func (r *pgAssignmentRepository) GetMealPlansByStudentAndDay(ctx context.Context, studentID int64, day int) ([]domain.MealPlan, error) {
	return r.queryMealPlans(ctx,
		`SELECT `+mealPlanColumns+` FROM student_meal_plans
		 WHERE student_id = $1 AND day_of_week = $2 ORDER BY id`, studentID, day)
}

func (r *pgAssignmentRepository) queryMealPlans(ctx context.Context, query string, args ...any) ([]domain.MealPlan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.MealPlan
	for rows.Next() {
		var p domain.MealPlan
		if err := rows.Scan(&p.ID, &p.StudentID, &p.TrainerID, &p.MealID, &p.DayOfWeek,
			&p.MealTime, &p.Notes, &p.IsCompleted, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *pgAssignmentRepository) SetMealPlanCompleted(ctx context.Context, studentID, id int64, completed bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE student_meal_plans SET is_completed = $3
		 WHERE id = $1 AND student_id = $2`, id, studentID, completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAssignmentRepository) DeleteMealPlan(ctx context.Context, studentID, id int64) error {
	return execDelete(ctx, r.pool,
		`DELETE FROM student_meal_plans WHERE id = $1 AND student_id = $2`, id, studentID)
}

func (r *pgAssignmentRepository) ReplaceMealPlans(ctx context.Context, studentID int64, day int, items []domain.MealPlan) ([]domain.MealPlan, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM student_meal_plans WHERE student_id = $1 AND day_of_week = $2`,
		studentID, day); err != nil {
		return nil, err
	}

	out := make([]domain.MealPlan, 0, len(items))
	const q = `INSERT INTO student_meal_plans
			(student_id, trainer_id, meal_id, day_of_week, meal_time, notes, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	for _, p := range items {
		p.StudentID = studentID
		p.DayOfWeek = day
		if err := tx.QueryRow(ctx, q, p.StudentID, p.TrainerID, p.MealID, p.DayOfWeek,
			p.MealTime, p.Notes, p.IsCompleted).Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Student supplements ---

func (r *pgAssignmentRepository) CreateSupplement(ctx context.Context, s *domain.StudentSupplement) (int64, error) {
	if s.StudentID == 0 || s.SupplementID == 0 {
		return 0, errors.New("student ID and supplement ID are required")
	}
	const q = `INSERT INTO student_supplements
			(student_id, trainer_id, supplement_id, dosage, frequency, instructions, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, s.StudentID, s.TrainerID, s.SupplementID,
		s.Dosage, s.Frequency, s.Instructions, s.IsCompleted).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (r *pgAssignmentRepository) GetSupplementsByStudent(ctx context.Context, studentID int64) ([]domain.StudentSupplement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentSupplementColumns+` FROM student_supplements
		 WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sups []domain.StudentSupplement
	for rows.Next() {
		var s domain.StudentSupplement
		if err := rows.Scan(&s.ID, &s.StudentID, &s.TrainerID, &s.SupplementID,
			&s.Dosage, &s.Frequency, &s.Instructions, &s.IsCompleted, &s.CreatedAt); err != nil {
			return nil, err
		}
		sups = append(sups, s)
	}
	return sups, rows.Err()
}

func (r *pgAssignmentRepository) SetSupplementCompleted(ctx context.Context, studentID, id int64, completed bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE student_supplements SET is_completed = $3
		 WHERE id = $1 AND student_id = $2`, id, studentID, completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAssignmentRepository) DeleteSupplement(ctx context.Context, studentID, id int64) error {
	return execDelete(ctx, r.pool,
		`DELETE FROM student_supplements WHERE id = $1 AND student_id = $2`, id, studentID)
}

// ReplaceSupplements replaces the student's entire supplement set.
// Unlike programs and meal plans there is no day scope.
func (r *pgAssignmentRepository) ReplaceSupplements(ctx context.Context, studentID int64, items []domain.StudentSupplement) ([]domain.StudentSupplement, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM student_supplements WHERE student_id = $1`, studentID); err != nil {
		return nil, err
	}

	out := make([]domain.StudentSupplement, 0, len(items))
	const q = `INSERT INTO student_supplements
			(student_id, trainer_id, supplement_id, dosage, frequency, instructions, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	for _, s := range items {
		s.StudentID = studentID
		if err := tx.QueryRow(ctx, q, s.StudentID, s.TrainerID, s.SupplementID,
			s.Dosage, s.Frequency, s.Instructions, s.IsCompleted).Scan(&s.ID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}
