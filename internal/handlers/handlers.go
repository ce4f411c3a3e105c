package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Totarae/linkshortener/internal/metrics"
	"github.com/Totarae/linkshortener/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const statusBanner = "API running"

// Handler держит сервисы, которые обслуживают HTTP-маршруты.
type Handler struct {
	Services *service.Services
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// NewHandler создаёт Handler.
func NewHandler(services *service.Services, logger *zap.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		Services: services,
		Logger:   logger,
		Metrics:  m,
	}
}

// Status отвечает текстовым баннером.
func (h *Handler) Status(res http.ResponseWriter, _ *http.Request) {
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write([]byte(statusBanner))
}

// Ping проверяет доступность хранилища.
func (h *Handler) Ping(res http.ResponseWriter, req *http.Request) {
	if h.Services.Health != nil {
		if err := h.Services.Health.Ping(req.Context()); err != nil {
			h.Logger.Error("store ping failed", zap.Error(err))
			http.Error(res, "store unavailable", http.StatusInternalServerError)
			return
		}
	}
	res.WriteHeader(http.StatusOK)
}

// ResponseURL резолвит короткий код и отвечает редиректом 302.
func (h *Handler) ResponseURL(res http.ResponseWriter, req *http.Request) {
	code := chi.URLParam(req, "code")
	if code == "" {
		http.Error(res, "not found", http.StatusNotFound)
		return
	}

	originalURL, err := h.Services.Resolver.Resolve(req.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(res, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to resolve short code", zap.String("code", code), zap.Error(err))
		http.Error(res, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	http.Redirect(res, req, originalURL, http.StatusFound)
}

// pathID разбирает числовой параметр пути.
func pathID(req *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
