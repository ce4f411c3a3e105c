package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// MaxPasswordBytes предел bcrypt на длину пароля в байтах.
const MaxPasswordBytes = 72

var (
	// ErrInvalidToken токен не прошёл проверку подписи, срока или формата.
	ErrInvalidToken = errors.New("invalid token")
	// ErrPasswordTooLong пароль длиннее MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password is longer than 72 bytes")
)

// Auth выпускает сессионные токены и хэширует пароли.
type Auth struct {
	SecretKey string
	TokenTTL  time.Duration
	// HashCost стоимость bcrypt; в тестах ставится bcrypt.MinCost.
	HashCost int
	now      func() time.Time
}

func New(secret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Auth{
		SecretKey: secret,
		TokenTTL:  ttl,
		HashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// IssueToken подписывает HS256 токен с id пользователя в sub.
func (a *Auth) IssueToken(userID int64) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет токен и возвращает id пользователя.
func (a *Auth) ParseToken(tokenStr string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.SecretKey), nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// HashPassword возвращает соленый bcrypt-хэш.
func (a *Auth) HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хэшем, открытый текст не сравнивается никогда.
func (a *Auth) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
