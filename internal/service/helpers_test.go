package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Totarae/linkshortener/internal/auth"
	"github.com/Totarae/linkshortener/internal/cache"
	"github.com/Totarae/linkshortener/internal/metrics"
	"github.com/Totarae/linkshortener/internal/model"
	"github.com/Totarae/linkshortener/internal/service"
	"github.com/Totarae/linkshortener/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "http://localhost:8080"

var reservedCodes = []string{"ping", "metrics"}

type testEnv struct {
	svc     *service.Services
	store   *storage.MemoryStore
	cache   *cache.Memory
	metrics *metrics.Metrics
	auth    *auth.Auth
}

func newTestAuth() *auth.Auth {
	a := auth.New("test-secret", time.Hour)
	a.HashCost = bcrypt.MinCost
	return a
}

func newTestEnv(t *testing.T, strategy service.LookupStrategy) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	c := cache.NewMemory()
	m := metrics.New()
	a := newTestAuth()

	svc := service.New(service.Deps{
		Links:         store,
		Users:         store,
		Artists:       store,
		Health:        store,
		Cache:         c,
		Auth:          a,
		Logger:        zap.NewNop(),
		Metrics:       m,
		BaseURL:       testBaseURL,
		Strategy:      strategy,
		ReservedCodes: reservedCodes,
	})
	return &testEnv{svc: svc, store: store, cache: c, metrics: m, auth: a}
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := e.svc.Users.Create(context.Background(), model.CreateUserRequest{
		Username: "john",
		Email:    email,
		Password: "secret-password",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createLink(t *testing.T, userID int64, original, code string) *model.Link {
	t.Helper()
	link, err := e.svc.Links.Create(context.Background(), model.CreateLinkRequest{
		OriginalURL: original,
		Code:        code,
		UserID:      userID,
	})
	require.NoError(t, err)
	return link
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
