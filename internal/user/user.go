package users

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const UserKey ContextKey = "user"

// User is a participant profile. Local accounts carry a password hash, OAuth accounts a provider.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	FullName     string    `db:"full_name"`
	IsAdmin      bool      `db:"is_admin"`
	PasswordHash *string   `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	Provider     *string   `db:"provider"`
	ProviderID   *string   `db:"provider_id"`
	AvatarURL    *string   `db:"avatar_url"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
