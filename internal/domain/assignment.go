package domain

import "time"

// Assignment rows bind a student to a catalog entity plus the
// per-assignment parameters. Bulk saves replace the whole set for a
// (student, day) scope, so clients must not assume row IDs are stable
// across saves.

// ExerciseProgram assigns an exercise to a student for a day of week.
type ExerciseProgram struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	TrainerID   int64     `json:"trainerId"`
	ExerciseID  int64     `json:"exerciseId"`
	DayOfWeek   int       `json:"dayOfWeek"` // 0..6
	Sets        int       `json:"sets"`
	Reps        string    `json:"reps"` // free-form, e.g. "10" or "8-12"
	Weight      string    `json:"weight,omitempty"`
	RestSeconds int       `json:"restSeconds,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MealPlan assigns a meal to a student for a day of week.
type MealPlan struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	TrainerID   int64     `json:"trainerId"`
	MealID      int64     `json:"mealId"`
	DayOfWeek   int       `json:"dayOfWeek"`
	MealTime    string    `json:"mealTime,omitempty"` // e.g. "breakfast"
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StudentSupplement assigns a supplement to a student. Unlike programs
// and meal plans there is no day dimension; bulk saves replace the
// student's entire supplement set.
type StudentSupplement struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"studentId"`
	TrainerID    int64     `json:"trainerId"`
	SupplementID int64     `json:"supplementId"`
	Dosage       string    `json:"dosage,omitempty"`
	Frequency    string    `json:"frequency,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	IsCompleted  bool      `json:"isCompleted"`
	CreatedAt    time.Time `json:"createdAt"`
}
