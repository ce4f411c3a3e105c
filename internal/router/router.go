package router

import (
	"github.com/Totarae/linkshortener/internal/handlers"
	"github.com/Totarae/linkshortener/internal/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReservedCodes коды, которые chi сопоставляет статическим GET-маршрутам раньше /{code}.
// Ссылку с таким кодом нельзя было бы открыть, поэтому сервис их отклоняет.
// Новый статический GET-маршрут из одного сегмента должен попасть сюда.
var ReservedCodes = []string{"ping", "metrics", "user", "artists"}

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger, handler.Metrics)) // Логирование и метрики
	r.Use(middleware.GzipMiddleware)                             // Gzip-сжатие

	r.Get("/", handler.Status)
	r.Get("/ping", handler.Ping)
	if handler.Metrics != nil {
		r.Handle("/metrics", handler.Metrics.Handler())
	}

	// Ссылки
	r.Post("/shortUrl", handler.CreateLink)
	r.Post("/newShortUrl", handler.CreateLink)
	r.Get("/shortUrl/{id}", handler.GetUserLinks)
	r.Put("/shortUrl/{id}", handler.UpdateLink)
	r.Delete("/shortUrl/{id}", handler.DeleteLink)

	// Пользователи
	r.Post("/user", handler.CreateUser)
	r.Get("/user", handler.ListUsers)
	r.Get("/user/{id}", handler.GetUser)
	r.Get("/user/email/{email}", handler.UserExists)

	r.Post("/auth/login", handler.Login)
	r.Post("/login", handler.Login)

	r.Get("/artists", handler.ListArtists)
	r.Post("/artist", handler.CreateArtist)

	// Статические пути chi матчит раньше параметра, так что /ping и /user не считаются кодами
	r.Get("/{code}", handler.ResponseURL)
	return r
}
