package domain

import "time"

// ExerciseMedia stores metadata about a demonstration file a trainer
// attached to an exercise. The file itself lives in S3 under ObjectKey.
type ExerciseMedia struct {
	ID          int64     `json:"id"`
	ExerciseID  int64     `json:"exerciseId"`
	TrainerID   int64     `json:"trainerId"`
	ObjectKey   string    `json:"-"` // S3 key, internal use only
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
