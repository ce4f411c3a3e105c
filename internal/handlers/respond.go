package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Totarae/linkshortener/internal/service"
	"go.uber.org/zap"
)

const (
	internalErrorMessage = "internal server error"
	badJSONMessage       = "bad json request"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(v)
}

func writeError(res http.ResponseWriter, status int, msg string) {
	writeJSON(res, status, errorResponse{Error: msg})
}

// writeServiceError отображает ошибку сервиса в код ответа.
// Причина внутренних ошибок только логируется и в тело не попадает.
func (h *Handler) writeServiceError(res http.ResponseWriter, err error, op string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(res, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrValidation):
		writeError(res, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidReference):
		writeError(res, http.StatusBadRequest, "user not found")
	case errors.Is(err, service.ErrNotFound):
		writeError(res, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(res, http.StatusConflict, "email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(res, http.StatusUnauthorized, "invalid credentials")
	default:
		h.Logger.Error(op+" failed", zap.Error(err))
		writeError(res, http.StatusInternalServerError, internalErrorMessage)
	}
}

// decodeJSON читает тело запроса в v. Ошибка означает 400.
func decodeJSON(req *http.Request, v any) error {
	defer req.Body.Close()
	return json.NewDecoder(req.Body).Decode(v)
}
