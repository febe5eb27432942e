// Package auth регистрирует пользователей dev API и выполняет вход.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/teamsync/internal/lib/jwt"
	"github.com/magabrotheeeer/teamsync/internal/lib/password"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
	"github.com/magabrotheeeer/teamsync/internal/storage"
)

// TokenType тип токена в ответе на вход.
const TokenType = "Bearer"

// Accounts — хранилище учётных записей.
type Accounts interface {
	CreateAccount(ctx context.Context, acc storage.Account) (*models.User, error)
	AccountByUsername(ctx context.Context, username string) (*storage.Account, error)
}

// Service регистрирует пользователей, выдаёт и проверяет JWT.
type Service struct {
	accounts Accounts
	tokens   jwt.Maker
	now      func() time.Time
}

// New создаёт сервис аутентификации поверх хранилища учётных записей.
func New(accounts Accounts, tokens jwt.Maker) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Register создаёт пользователя с ролью USER и сразу выполняет вход.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	const op = "services.auth.Register"

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now().UTC()
	user, err := s.accounts.CreateAccount(ctx, storage.Account{
		User: models.User{
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      models.RoleUser,
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrUserExists) {
		return nil, fmt.Errorf("%s: %w", op, services.ErrUsernameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.issue(op, *user)
}

// Login проверяет пароль. Неизвестный пользователь, отключённая запись
// и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	const op = "services.auth.Login"

	acc, err := s.accounts.AccountByUsername(ctx, req.Username)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !acc.User.Enabled || !password.Matches(acc.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
	}
	return s.issue(op, acc.User)
}

// ValidateToken разбирает bearer-токен. Токен с неизвестной ролью
// считается недействительным.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	const op = "auth.ValidateToken"
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if !models.Role(claims.Role).Valid() {
		return nil, fmt.Errorf("%s: unknown role %q: %w", op, claims.Role, jwt.ErrInvalidToken)
	}
	return claims, nil
}

func (s *Service) issue(op string, user models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthResponse{
		Token:     token,
		Type:      TokenType,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}
