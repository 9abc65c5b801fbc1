package store

import (
	"context"

	users "github.com/AdamBeresnev/afcon-predictor/internal/user"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery           = "SELECT * FROM users WHERE id = ?"
	getUserByUsernameQuery = "SELECT * FROM users WHERE username = ?"
	getUserByProviderQuery = `
		SELECT * FROM users
		WHERE provider = ? AND provider_id = ?
	`
	createUserQuery = `
		INSERT INTO users (id, email, username, full_name, is_admin, password_hash, provider, provider_id, avatar_url) VALUES
		(:id, :email, :username, :full_name, :is_admin, :password_hash, :provider, :provider_id, :avatar_url)
	`
	updateUserNameAndAvatarQuery = `
		UPDATE users SET
		full_name = :full_name,
		avatar_url = :avatar_url
		WHERE id = :id
	`
	setAdminByUsernameQuery = "UPDATE users SET is_admin = ? WHERE username = ? AND provider IS NULL"
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUserByProvider(ctx context.Context, provider string, providerID string) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserByProviderQuery, provider, providerID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) GetUser(ctx context.Context, id interface{}) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserQuery, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserByUsernameQuery, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return err
}

func (s *UserStore) UpdateUserNameAndAvatar(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, updateUserNameAndAvatarQuery, user)
	return err
}

// Only local accounts can be flagged. Returns the number of profiles changed, 0 if the username is unknown.
func (s *UserStore) SetAdmin(ctx context.Context, username string, isAdmin bool) (int64, error) {
	res, err := s.db.ExecContext(ctx, setAdminByUsernameQuery, isAdmin, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
