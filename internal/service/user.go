package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"washbay/internal/auth"
	"washbay/internal/database"
	"washbay/internal/models"

	"github.com/rs/zerolog"
)

// UserService handles registration, login and profile access.
type UserService struct {
	db         *database.DB
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zerolog.Logger
}

func NewUserService(db *database.DB, tokens *auth.TokenManager, bcryptCost int, logger *zerolog.Logger) *UserService {
	return &UserService{db: db, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Register creates a customer account and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, name, email, password, phone string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: name and valid email are required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         models.RoleCustomer,
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

// Login checks credentials and returns the user with a fresh token. Unknown
// email and wrong password are indistinguishable for the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.db.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.db.GetUserByID(ctx, userID)
}

func (s *UserService) UpdatePhone(ctx context.Context, userID int64, phone string) error {
	return s.db.UpdateUserPhone(ctx, userID, phone)
}
