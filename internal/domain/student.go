package domain

import "time"

// Student belongs to exactly one trainer. A phone number may be a
// student of only one trainer at a time (unique on phone+trainerId).
type Student struct {
	ID                int64     `json:"id"`
	TrainerID         int64     `json:"trainerId"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Gender            string    `json:"gender,omitempty"`
	Age               int       `json:"age,omitempty"`
	Height            float64   `json:"height,omitempty"`
	Weight            float64   `json:"weight,omitempty"`
	GoalType          string    `json:"goalType,omitempty"`
	ActivityLevel     string    `json:"activityLevel,omitempty"`
	MedicalConditions string    `json:"medicalConditions,omitempty"`
	// IsActive gates the student's own panel access. Setting it false
	// revokes login without touching any of the student's data.
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StudentUpdate carries the fields of a partial student update.
// Nil fields are left untouched.
type StudentUpdate struct {
	Name              *string  `json:"name,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	Age               *int     `json:"age,omitempty"`
	Height            *float64 `json:"height,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	GoalType          *string  `json:"goalType,omitempty"`
	ActivityLevel     *string  `json:"activityLevel,omitempty"`
	MedicalConditions *string  `json:"medicalConditions,omitempty"`
	IsActive          *bool    `json:"isActive,omitempty"`
}
