package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/Totarae/linkshortener/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)

	w := srv.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API running", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)

	w := srv.do(t, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResponseURL_RedirectsAndCounts(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com/very/long/path", "abc")

	for i := 0; i < 3; i++ {
		w := srv.do(t, http.MethodGet, "/abc", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://example.com/very/long/path", w.Header().Get("Location"))
	}

	stored, err := srv.store.GetLinkByID(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.AccessCount)
}

func TestResponseURL_NotFound(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com", "abc")

	w := srv.do(t, http.MethodGet, "/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", strings.TrimSpace(w.Body.String()))

	stored, err := srv.store.GetLinkByID(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.AccessCount)
}

func TestResponseURL_ByID(t *testing.T) {
	srv := newTestServer(t, service.LookupByID)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com/by-id", "whatever")

	w := srv.do(t, http.MethodGet, "/"+strconv.FormatInt(link.ID, 10), nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/by-id", w.Header().Get("Location"))

	w = srv.do(t, http.MethodGet, "/not-a-number", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResponseURL_ConcurrentResolutions(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com", "hot")

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			w := srv.do(t, http.MethodGet, "/hot", nil)
			assert.Equal(t, http.StatusFound, w.Code)
		}()
	}
	wg.Wait()

	stored, err := srv.store.GetLinkByID(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), stored.AccessCount)
}

func TestCreateLink(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")

	link := srv.createLink(t, userID, "https://example.com", "abc")

	assert.Equal(t, testBaseURL+"/abc", link.ShortURL)
	assert.Equal(t, "https://example.com", link.OriginalURL)
	require.NotNil(t, link.UserID)
	assert.Equal(t, userID, *link.UserID)
	assert.Zero(t, link.AccessCount)
	assert.False(t, link.IsFavorite)
	assert.Empty(t, link.Description)
}

func TestCreateLink_Alias(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")

	w := srv.do(t, http.MethodPost, "/newShortUrl", map[string]any{
		"original_url": "https://example.com",
		"code":         "alias",
		"user_id":      userID,
		"is_favorite":  true,
		"description":  "mine",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Link linkBody `json:"link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Link.IsFavorite)
	assert.Equal(t, "mine", resp.Link.Description)
}

func TestCreateLink_Rejected(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")

	tests := []struct {
		name string
		body any
	}{
		{name: "broken json", body: "{not json"},
		{name: "relative url", body: map[string]any{"original_url": "/path", "code": "a", "user_id": userID}},
		{name: "missing code", body: map[string]any{"original_url": "https://example.com", "user_id": userID}},
		{name: "slash in code", body: map[string]any{"original_url": "https://example.com", "code": "a/b", "user_id": userID}},
		{name: "missing user", body: map[string]any{"original_url": "https://example.com", "code": "a"}},
		{name: "unknown user", body: map[string]any{"original_url": "https://example.com", "code": "a", "user_id": userID + 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/shortUrl", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeError(t, w))
		})
	}

	links, err := srv.store.GetLinksByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestUpdateLink(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com", "abc")
	target := "/shortUrl/" + strconv.FormatInt(link.ID, 10)

	w := srv.do(t, http.MethodPut, target, map[string]any{"is_favorite": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated linkBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.IsFavorite)
	assert.Empty(t, updated.Description)
	assert.Equal(t, link.ShortURL, updated.ShortURL)

	w = srv.do(t, http.MethodPut, target, map[string]any{"description": "notes"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "notes", updated.Description)
}

func TestUpdateLink_Errors(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com", "abc")

	w := srv.do(t, http.MethodPut, "/shortUrl/"+strconv.FormatInt(link.ID, 10), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/shortUrl/999", map[string]any{"is_favorite": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPut, "/shortUrl/abc", map[string]any{"is_favorite": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLink(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com", "abc")
	target := "/shortUrl/" + strconv.FormatInt(link.ID, 10)

	w := srv.do(t, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = srv.do(t, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserLinks(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	john := srv.createUser(t, "john@example.com")
	jane := srv.createUser(t, "jane@example.com")
	srv.createLink(t, john, "https://example.com/1", "one")
	srv.createLink(t, john, "https://example.com/2", "two")
	srv.createLink(t, jane, "https://example.com/3", "three")

	w := srv.do(t, http.MethodGet, "/shortUrl/"+strconv.FormatInt(john, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var links []linkBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.Len(t, links, 2)

	w = srv.do(t, http.MethodGet, "/shortUrl/777", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = srv.do(t, http.MethodGet, "/shortUrl/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)

	w := srv.do(t, http.MethodPost, "/user", map[string]string{
		"username": "john",
		"email":    "John@Example.COM",
		"password": "secret-password",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	var user map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "john@example.com", user["email"])
	assert.Equal(t, "john", user["username"])
}

func TestCreateUser_Errors(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	srv.createUser(t, "john@example.com")

	w := srv.do(t, http.MethodPost, "/user", map[string]string{
		"username": "other",
		"email":    "JOHN@example.com",
		"password": "another-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, "/user", map[string]string{
		"username": "short",
		"email":    "short@example.com",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/user", map[string]string{
		"username": "bad",
		"email":    "not-an-email",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserLookups(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	id := srv.createUser(t, "john@example.com")

	w := srv.do(t, http.MethodGet, "/user/"+strconv.FormatInt(id, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "john@example.com")

	w = srv.do(t, http.MethodGet, "/user/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/user/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodGet, "/user/email/JOHN@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user found", w.Body.String())

	w = srv.do(t, http.MethodGet, "/user/email/nobody@example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user not found", w.Body.String())
}

func TestListUsers_SeesNewUsers(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)

	w := srv.do(t, http.MethodGet, "/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	srv.createUser(t, "john@example.com")

	w = srv.do(t, http.MethodGet, "/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	srv.createUser(t, "john@example.com")

	for _, path := range []string{"/auth/login", "/login"} {
		w := srv.do(t, http.MethodPost, path, map[string]string{
			"email":    "John@example.com",
			"password": "secret-password",
		})
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp struct {
			User  map[string]any `json:"user"`
			Token string         `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "john@example.com", resp.User["email"])
		assert.NotContains(t, w.Body.String(), "$2a$")
	}
}

func TestLogin_Rejected(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	srv.createUser(t, "john@example.com")

	wrongPassword := srv.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "john@example.com",
		"password": "wrong-password",
	})
	unknownEmail := srv.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "invalid credentials", decodeError(t, wrongPassword))

	w := srv.do(t, http.MethodPost, "/auth/login", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArtists(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)

	w := srv.do(t, http.MethodGet, "/artists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = srv.do(t, http.MethodPost, "/artist", map[string]string{"name": "Nina Simone"})
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/artists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var artists []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &artists))
	require.Len(t, artists, 1)
	assert.Equal(t, "Nina Simone", artists[0]["name"])

	w = srv.do(t, http.MethodPost, "/artist", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")
	srv.createLink(t, userID, "https://example.com", "abc")
	srv.do(t, http.MethodGet, "/abc", nil)
	srv.do(t, http.MethodGet, "/nope", nil)

	w := srv.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `linkshortener_resolutions_total{outcome="found"} 1`)
	assert.Contains(t, body, `linkshortener_resolutions_total{outcome="not_found"} 1`)
	assert.Contains(t, body, `route="/{code}"`)
}

func TestCreateUser_PasswordTooLong(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)

	w := srv.do(t, http.MethodPost, "/user", map[string]string{
		"username": "john",
		"email":    "john@example.com",
		"password": strings.Repeat("p", 73),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "password")
}

func TestCreateLink_ReservedCodeIsRejected(t *testing.T) {
	srv := newTestServer(t, service.LookupByShortURL)
	userID := srv.createUser(t, "john@example.com")

	for _, code := range []string{"ping", "user", "artists", "metrics"} {
		w := srv.do(t, http.MethodPost, "/shortUrl", map[string]any{
			"original_url": "https://example.com",
			"code":         code,
			"user_id":      userID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, code)
	}

	// код, которому не мешает ни один маршрут, создаётся и открывается
	srv.createLink(t, userID, "https://example.com/pp", "pingpong")
	w := srv.do(t, http.MethodGet, "/pingpong", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/pp", w.Header().Get("Location"))
}

func TestResponseURL_ByIDSignedCode(t *testing.T) {
	srv := newTestServer(t, service.LookupByID)
	userID := srv.createUser(t, "john@example.com")
	link := srv.createLink(t, userID, "https://example.com", "whatever")

	w := srv.do(t, http.MethodGet, "/+"+strconv.FormatInt(link.ID, 10), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
