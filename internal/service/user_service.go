package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	users "github.com/AdamBeresnev/afcon-predictor/internal/user"
	"github.com/AdamBeresnev/afcon-predictor/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db       *sqlx.DB
	store    *store.UserStore
	admins   []string
	validate *validator.Validate
}

func NewUserService(db *sqlx.DB, store *store.UserStore, admins []string) *UserService {
	normalized := make([]string, 0, len(admins))
	for _, name := range admins {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(name)))
	}
	return &UserService{db: db, store: store, admins: normalized, validate: validator.New()}
}

type SignupInput struct {
	FullName string `validate:"required,max=80"`
	Username string `validate:"required,alphanum,min=3,max=30"`
	Password string `validate:"required,min=8,max=72"`
}

const localEmailDomain = "@afcon.local"

// Local accounts have no email, one is derived from the username
func usernameToEmail(username string) string {
	return username + localEmailDomain
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (*users.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:           uuid.New(),
		Email:        usernameToEmail(input.Username),
		Username:     input.Username,
		FullName:     input.FullName,
		IsAdmin:      slices.Contains(s.admins, input.Username),
		PasswordHash: utils.Ptr(string(hash)),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth accounts have no password
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// OAuth accounts get a "<provider>-<id>" username. Local usernames are alphanumeric, so the two
// never collide, and OAuth accounts are never admins.
func oauthUsername(gothUser goth.User) string {
	return strings.ToLower(gothUser.Provider + "-" + gothUser.UserID)
}

// The provider's email is kept unless it is missing or inside the local account domain
func oauthEmail(gothUser goth.User) string {
	email := strings.ToLower(strings.TrimSpace(gothUser.Email))
	if email == "" || strings.HasSuffix(email, localEmailDomain) {
		return usernameToEmail(oauthUsername(gothUser))
	}
	return email
}

func oauthFullName(gothUser goth.User) string {
	if gothUser.Name != "" {
		return gothUser.Name
	}
	if gothUser.NickName != "" {
		return gothUser.NickName
	}
	return oauthUsername(gothUser)
}

func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)

	if err == nil {
		fullName := oauthFullName(gothUser)
		if utils.OrZero(user.AvatarURL) != gothUser.AvatarURL || user.FullName != fullName {
			user.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			user.FullName = fullName
			if err := s.store.UpdateUserNameAndAvatar(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		newUser := &users.User{
			ID:         uuid.New(),
			Email:      oauthEmail(gothUser),
			Username:   oauthUsername(gothUser),
			FullName:   oauthFullName(gothUser),
			Provider:   &gothUser.Provider,
			ProviderID: &gothUser.UserID,
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
		}
		if err := s.store.CreateUser(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return newUser, nil
	}

	return nil, err
}

// PromoteAdmins flags the configured usernames that already have a local profile
func (s *UserService) PromoteAdmins(ctx context.Context) error {
	for _, username := range s.admins {
		n, err := s.store.SetAdmin(ctx, username, true)
		if err != nil {
			return fmt.Errorf("failed to promote %s: %w", username, err)
		}
		if n == 0 {
			log.Printf("Admin %s has no profile yet, will be promoted on signup", username)
		}
	}
	return nil
}
