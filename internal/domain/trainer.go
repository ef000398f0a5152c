package domain

import "time"

// Trainer is the tenant unit of the system. Every other entity is owned
// by exactly one trainer via its TrainerID.
type Trainer struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Username  string    `json:"username"`
	CodeHash  string    `json:"-"` // bcrypt hash of the login code, never exposed
	CreatedAt time.Time `json:"createdAt"`
}

// TrainerProfile holds display/business metadata, 1:1 with Trainer.
// Created lazily alongside the trainer on first contact.
type TrainerProfile struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	GymName   string    `json:"gymName"`
	Bio       string    `json:"bio,omitempty"`
	Address   string    `json:"address,omitempty"`
	Instagram string    `json:"instagram,omitempty"`
	Telegram  string    `json:"telegram,omitempty"`
	Website   string    `json:"website,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TrainerProfileUpdate carries the fields of a partial profile update.
// Nil fields are left untouched.
type TrainerProfileUpdate struct {
	GymName   *string `json:"gymName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Address   *string `json:"address,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Telegram  *string `json:"telegram,omitempty"`
	Website   *string `json:"website,omitempty"`
}
