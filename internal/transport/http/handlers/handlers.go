package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/service"
)

// Handlers агрегирует зависимости REST-слоя.
type Handlers struct {
	Service *service.Service
	Cfg     *config.Config
}

func New(s *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{Service: s, Cfg: cfg}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// errInvalidArgument — вспомогалка: локальная ошибка парсинга -> 400.
func errInvalidArgument() error {
	return fmt.Errorf("parse request: %w", service.ErrInvalidArgument)
}
