package domain

import "time"

// StudentHistory is an append-only audit entry describing a change made
// to a student's data. Entries are never updated; they are removed only
// by the student cascade delete or the trainer-scoped purge.
type StudentHistory struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	TrainerID   int64     `json:"trainerId"`
	Action      string    `json:"action"`     // "create", "update", "delete", ...
	EntityType  string    `json:"entityType"` // "student", "exercise_program", ...
	EntityID    *int64    `json:"entityId,omitempty"`
	Changes     string    `json:"changes,omitempty"` // free-form JSON blob
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
