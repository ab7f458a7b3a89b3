package models

import "time"

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	TotalScore   int    `json:"totalScore"`
	PasswordHash string `json:"-"`
}

// Profile is the part of a user that is shown to the user after authentication.
type Profile struct {
	Email      string `json:"email"`
	TotalScore int    `json:"totalScore"`
}

// Save is a snapshot of engine state. The payload is opaque to everything
// except the engine that produced it.
type Save struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		Email:      u.Email,
		TotalScore: u.TotalScore,
	}
}
