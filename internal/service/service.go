// service содержит бизнес-логику stories-сервиса: создание историй с
// вычислением срока жизни, идемпотентную вовлечённость (просмотры/лайки),
// проверки владения и фоновый проход по истёкшим историям.
package service

import (
	"errors"

	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — история или пользователь отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied — запрашивающий не владелец истории.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUpstream — сбой обязательного вызова внешнего медиа-хранилища.
	ErrUpstream = errors.New("media upstream failure")
	// ErrConflict — конфликт уникальности.
	ErrConflict = errors.New("conflict")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — бизнес-логика stories-service.
type Service struct {
	stories storage.Stories
	users   storage.Users
	media   storage.Media
	cfg     config.Config
}

// New создаёт новый экземпляр Service.
func New(stories storage.Stories, users storage.Users, media storage.Media, cfg config.Config) *Service {
	return &Service{
		stories: stories,
		users:   users,
		media:   media,
		cfg:     cfg,
	}
}
