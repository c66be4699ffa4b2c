// http собирает REST-поверхность stories-service: роутер chi, цепочка
// middleware (recover -> request id -> logging -> auth -> timeout) и
// регистрация маршрутов.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/service"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/transport/http/handlers"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, cfg *config.Config, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Auth(cfg.Auth),       // устанавливаем идентичность запроса (JWT или dev-режим)
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc, cfg)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// stories
	r.Post("/stories", h.CreateStory)
	r.Get("/stories", h.ListStories)
	r.Get("/stories/{id}", h.StoryByID)
	r.Delete("/stories/{id}", h.DeleteStory)

	// engagement
	r.Post("/stories/{id}/view", h.RecordView)
	r.Post("/stories/{id}/like", h.ToggleLike)
	r.Get("/stories/{id}/viewers", h.Viewers)

	// owner feeds
	r.Get("/users/{user_id}/stories", h.StoriesByOwner)
}
