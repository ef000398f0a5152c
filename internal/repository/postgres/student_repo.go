package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `id, trainer_id, name, phone, gender, age, height, weight,
	goal_type, activity_level, medical_conditions, is_active, created_at, updated_at`

// pgStudentRepository implements repository.StudentRepository.
type pgStudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a Student repository backed by Postgres.
func NewStudentRepository(pool *pgxpool.Pool) repository.StudentRepository {
	return &pgStudentRepository{pool: pool}
}

func (r *pgStudentRepository) Create(ctx context.Context, s *domain.Student) (int64, error) {
	if s.Name == "" || s.Phone == "" || s.TrainerID == 0 {
		return 0, errors.New("student name, phone and trainer ID are required")
	}
	const q = `INSERT INTO students
			(trainer_id, name, phone, gender, age, height, weight, goal_type,
			 activity_level, medical_conditions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		s.TrainerID, s.Name, s.Phone, s.Gender, s.Age, s.Height, s.Weight,
		s.GoalType, s.ActivityLevel, s.MedicalConditions, s.IsActive).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return s.ID, nil
}

func (r *pgStudentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	return r.scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

func (r *pgStudentRepository) GetByPhone(ctx context.Context, phone string) (*domain.Student, error) {
	// Phone is unique per trainer and a phone belongs to at most one
	// trainer at a time, so a global lookup is well defined.
	return r.scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE phone = $1 ORDER BY id LIMIT 1`, phone))
}

func (r *pgStudentRepository) GetByPhoneAndTrainer(ctx context.Context, phone string, trainerID int64) (*domain.Student, error) {
	return r.scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE phone = $1 AND trainer_id = $2`,
		phone, trainerID))
}

func (r *pgStudentRepository) GetByTrainerID(ctx context.Context, trainerID int64) ([]domain.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE trainer_id = $1 ORDER BY name, id`,
		trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var s domain.Student
		if err := scanStudentFields(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Update merges only the supplied fields.
func (r *pgStudentRepository) Update(ctx context.Context, id int64, u domain.StudentUpdate) (*domain.Student, error) {
	const q = `UPDATE students SET
			name               = COALESCE($2, name),
			phone              = COALESCE($3, phone),
			gender             = COALESCE($4, gender),
			age                = COALESCE($5, age),
			height             = COALESCE($6, height),
			weight             = COALESCE($7, weight),
			goal_type          = COALESCE($8, goal_type),
			activity_level     = COALESCE($9, activity_level),
			medical_conditions = COALESCE($10, medical_conditions),
			is_active          = COALESCE($11, is_active),
			updated_at         = now()
		WHERE id = $1
		RETURNING ` + studentColumns
	s, err := r.scanStudent(r.pool.QueryRow(ctx, q, id,
		u.Name, u.Phone, u.Gender, u.Age, u.Height, u.Weight,
		u.GoalType, u.ActivityLevel, u.MedicalConditions, u.IsActive))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return s, nil
}

// Delete removes the student and every dependent row in one
// transaction. The order matters: ticket responses go before their
// tickets, and everything goes before the student row. A failure at any
// step rolls the whole delete back.
func (r *pgStudentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM student_history WHERE student_id = $1`,
		`DELETE FROM student_exercise_programs WHERE student_id = $1`,
		`DELETE FROM student_meal_plans WHERE student_id = $1`,
		`DELETE FROM student_supplements WHERE student_id = $1`,
		`DELETE FROM ticket_responses WHERE ticket_id IN
			(SELECT id FROM support_tickets WHERE student_id = $1)`,
		`DELETE FROM support_tickets WHERE student_id = $1`,
		`DELETE FROM support_messages WHERE student_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *pgStudentRepository) scanStudent(row pgx.Row) (*domain.Student, error) {
	var s domain.Student
	if err := scanStudentFields(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanStudentFields(row pgx.Row, s *domain.Student) error {
	return row.Scan(&s.ID, &s.TrainerID, &s.Name, &s.Phone, &s.Gender,
		&s.Age, &s.Height, &s.Weight, &s.GoalType, &s.ActivityLevel,
		&s.MedicalConditions, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}
