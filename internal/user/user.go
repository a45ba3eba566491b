package user

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "team_member"

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Role       string    `json:"role"`
	JoinedDate time.Time `json:"joined_date"`
}

func New(name, email, avatarURL string) User {
	return User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		AvatarURL:  avatarURL,
		Role:       DefaultRole,
		JoinedDate: time.Now().UTC(),
	}
}
