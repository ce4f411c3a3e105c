package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Totarae/linkshortener/internal/auth"
	"github.com/Totarae/linkshortener/internal/cache"
	"github.com/Totarae/linkshortener/internal/handlers"
	"github.com/Totarae/linkshortener/internal/metrics"
	"github.com/Totarae/linkshortener/internal/router"
	"github.com/Totarae/linkshortener/internal/service"
	"github.com/Totarae/linkshortener/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "http://localhost:8080"

type testServer struct {
	router  *chi.Mux
	store   *storage.MemoryStore
	metrics *metrics.Metrics
}

func newTestServer(t testing.TB, strategy service.LookupStrategy) *testServer {
	t.Helper()

	store := storage.NewMemoryStore()
	m := metrics.New()
	a := auth.New("test-secret", time.Hour)
	a.HashCost = bcrypt.MinCost
	logger := zap.NewNop()

	svc := service.New(service.Deps{
		Links:         store,
		Users:         store,
		Artists:       store,
		Health:        store,
		Cache:         cache.NewMemory(),
		Auth:          a,
		Logger:        logger,
		Metrics:       m,
		BaseURL:       testBaseURL,
		Strategy:      strategy,
		ReservedCodes: router.ReservedCodes,
	})
	h := handlers.NewHandler(svc, logger, m)
	return &testServer{router: router.NewRouter(h, logger), store: store, metrics: m}
}

func (s *testServer) do(t testing.TB, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// createUser регистрирует пользователя через API и возвращает его id.
func (s *testServer) createUser(t testing.TB, email string) int64 {
	t.Helper()

	w := s.do(t, http.MethodPost, "/user", map[string]string{
		"username": "john",
		"email":    email,
		"password": "secret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user struct {
		ID int64 `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user.ID
}

type linkBody struct {
	ID          int64  `json:"link_id"`
	OriginalURL string `json:"original_url"`
	ShortURL    string `json:"short_url"`
	UserID      *int64 `json:"user_id"`
	AccessCount int64  `json:"access_count"`
	IsFavorite  bool   `json:"is_favorite"`
	Description string `json:"description"`
}

func (s *testServer) createLink(t testing.TB, userID int64, original, code string) linkBody {
	t.Helper()

	w := s.do(t, http.MethodPost, "/shortUrl", map[string]any{
		"original_url": original,
		"code":         code,
		"user_id":      userID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message string   `json:"message"`
		Link    linkBody `json:"link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "link created", resp.Message)
	return resp.Link
}

func decodeError(t testing.TB, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}
