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

// UserService регистрация и поиск пользователей.
type UserService struct {
	users  UserRepository
	cache  Cache
	auth   *auth.Auth
	logger *zap.Logger
}

// NewUserService создаёт UserService.
func NewUserService(users UserRepository, c Cache, a *auth.Auth, logger *zap.Logger) *UserService {
	return &UserService{users: users, cache: c, auth: a, logger: logger}
}

// Create регистрирует пользователя. Email нормализуется до проверки уникальности,
// пароль сохраняется только в виде bcrypt-хэша. Успешная вставка сбрасывает кэш списка.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Email = util.NormalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		// max=72 считает руны, а bcrypt байты
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, invalid("field password: must be at most %d bytes", auth.MaxPasswordBytes)
		}
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	invalidate(ctx, s.cache, s.logger, UsersCacheKey)
	s.logger.Info("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "get user")
	}
	return user, nil
}

// ExistsByEmail только сообщает, зарегистрирован ли email.
func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetUserByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup user by email: %w", err)
	}
	return true, nil
}

// List отдаёт всех пользователей через read-through кэш.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := readThrough(ctx, s.cache, s.logger, UsersCacheKey, s.users.ListUsers)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
