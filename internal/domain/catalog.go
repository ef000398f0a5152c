package domain

import "time"

// Catalog entities are reusable per-trainer templates. They are never
// tied to a specific student; assignments (see assignment.go) bind them
// to students with per-assignment parameters.

// ExerciseType is the top level of the exercise hierarchy
// (e.g. "Strength", "Cardio").
type ExerciseType struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExerciseCategory groups exercises, optionally under a type.
type ExerciseCategory struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	TypeID    *int64    `json:"typeId,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Exercise is a single exercise template in the trainer's library.
type Exercise struct {
	ID          int64     `json:"id"`
	TrainerID   int64     `json:"trainerId"`
	CategoryID  *int64    `json:"categoryId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ExerciseUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
}

// MealCategory groups meals (e.g. "Breakfast", "Pre-workout").
type MealCategory struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Meal is a meal template in the trainer's library.
type Meal struct {
	ID          int64     `json:"id"`
	TrainerID   int64     `json:"trainerId"`
	CategoryID  *int64    `json:"categoryId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MealUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
}

// SupplementCategory groups supplements.
type SupplementCategory struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Supplement is a supplement template in the trainer's library.
type Supplement struct {
	ID          int64     `json:"id"`
	TrainerID   int64     `json:"trainerId"`
	CategoryID  *int64    `json:"categoryId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SupplementUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
}
