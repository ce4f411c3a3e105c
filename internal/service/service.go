package service

import (
	"context"

	"github.com/Totarae/linkshortener/internal/auth"
	"github.com/Totarae/linkshortener/internal/metrics"
	"github.com/Totarae/linkshortener/internal/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks

// LinkRepository хранилище ссылок.
type LinkRepository interface {
	CreateLink(ctx context.Context, link *model.Link) error
	GetLinkByID(ctx context.Context, id int64) (*model.Link, error)
	GetLinkByShortURL(ctx context.Context, shortURL string) (*model.Link, error)
	IncrementAccessCount(ctx context.Context, id int64) error
	UpdateLink(ctx context.Context, id int64, patch model.LinkPatch) (*model.Link, error)
	DeleteLink(ctx context.Context, id int64) error
	GetLinksByUserID(ctx context.Context, userID int64) ([]*model.Link, error)
}

// UserRepository хранилище пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// ArtistRepository хранилище артистов.
type ArtistRepository interface {
	CreateArtist(ctx context.Context, a *model.Artist) error
	ListArtists(ctx context.Context) ([]*model.Artist, error)
}

// Cache key-value хранилище снапшотов списков. Get возвращает cache.ErrMiss при промахе.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger проверка доступности основного хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps зависимости, из которых собираются сервисы.
type Deps struct {
	Links    LinkRepository
	Users    UserRepository
	Artists  ArtistRepository
	Health   Pinger
	Cache    Cache
	Auth     *auth.Auth
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	BaseURL  string
	Strategy LookupStrategy

	// ReservedCodes коды, совпадающие со статическими маршрутами.
	ReservedCodes []string
}

// Services набор сервисов, который получает HTTP-слой.
type Services struct {
	Resolver *Resolver
	Links    *LinkService
	Users    *UserService
	Auth     *AuthService
	Artists  *ArtistService
	Health   Pinger
}

// New собирает все сервисы из общих зависимостей.
func New(d Deps) *Services {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Services{
		Resolver: NewResolver(d.Links, d.BaseURL, d.Strategy, d.Logger, d.Metrics),
		Links:    NewLinkService(d.Links, d.Users, d.BaseURL, d.ReservedCodes, d.Logger),
		Users:    NewUserService(d.Users, d.Cache, d.Auth, d.Logger),
		Auth:     NewAuthService(d.Users, d.Auth, d.Logger),
		Artists:  NewArtistService(d.Artists, d.Cache, d.Logger),
		Health:   d.Health,
	}
}
