package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Totarae/linkshortener/internal/auth"
	"github.com/Totarae/linkshortener/internal/model"
	"github.com/Totarae/linkshortener/internal/repositories"
	"github.com/Totarae/linkshortener/internal/util"
	"go.uber.org/zap"
)

// AuthService вход по email и паролю.
type AuthService struct {
	users  UserRepository
	auth   *auth.Auth
	logger *zap.Logger
}

// NewAuthService создаёт AuthService.
func NewAuthService(users UserRepository, a *auth.Auth, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, auth: a, logger: logger}
}

// Login проверяет пару email/пароль и выпускает токен.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = util.NormalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.auth.CheckPassword(user.Password, req.Password) {
		s.logger.Info("login rejected", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{User: user, Token: token}, nil
}
