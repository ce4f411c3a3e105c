package handlers

import (
	"net/http"

	"github.com/Totarae/linkshortener/internal/model"
	"github.com/go-chi/chi/v5"
)

// CreateUser POST /user
func (h *Handler) CreateUser(res http.ResponseWriter, req *http.Request) {
	var body model.CreateUserRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(res, http.StatusBadRequest, badJSONMessage)
		return
	}

	user, err := h.Services.Users.Create(req.Context(), body)
	if err != nil {
		h.writeServiceError(res, err, "create user")
		return
	}
	writeJSON(res, http.StatusCreated, user)
}

// ListUsers GET /user
func (h *Handler) ListUsers(res http.ResponseWriter, req *http.Request) {
	users, err := h.Services.Users.List(req.Context())
	if err != nil {
		h.writeServiceError(res, err, "list users")
		return
	}
	writeJSON(res, http.StatusOK, users)
}

// GetUser GET /user/{id}
func (h *Handler) GetUser(res http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		writeError(res, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.Services.Users.Get(req.Context(), id)
	if err != nil {
		h.writeServiceError(res, err, "get user")
		return
	}
	writeJSON(res, http.StatusOK, user)
}

// UserExists GET /user/email/{email}. Сама запись не возвращается.
func (h *Handler) UserExists(res http.ResponseWriter, req *http.Request) {
	exists, err := h.Services.Users.ExistsByEmail(req.Context(), chi.URLParam(req, "email"))
	if err != nil {
		h.writeServiceError(res, err, "lookup user by email")
		return
	}

	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !exists {
		res.WriteHeader(http.StatusNotFound)
		_, _ = res.Write([]byte("user not found"))
		return
	}
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write([]byte("user found"))
}

// Login POST /auth/login
func (h *Handler) Login(res http.ResponseWriter, req *http.Request) {
	var body model.LoginRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(res, http.StatusBadRequest, badJSONMessage)
		return
	}

	resp, err := h.Services.Auth.Login(req.Context(), body)
	if err != nil {
		h.writeServiceError(res, err, "login")
		return
	}
	writeJSON(res, http.StatusOK, resp)
}
