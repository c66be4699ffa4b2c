package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
)

// ErrNotFoundUser — пользователь не найден.
var ErrNotFoundUser = errors.New("user not found")

// Users — контракт проекций пользователей и счётчика историй.
// Счётчик обновляется best-effort: его сбой не откатывает запись истории,
// сервисный слой лишь логирует ошибку.
type Users interface {
	// UserByID возвращает проекцию пользователя.
	// Если запись не найдена — ErrNotFoundUser.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UsersByIDs возвращает найденные проекции по списку идентификаторов.
	// Отсутствующие пользователи в карту не попадают, это не ошибка.
	UsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)

	// IncrementStoriesCount увеличивает stories_count владельца на 1.
	IncrementStoriesCount(ctx context.Context, id uuid.UUID) error

	// DecrementStoriesCount уменьшает stories_count владельца на 1 с нижней
	// границей 0 (декремент на нулевом счётчике — no-op, не ошибка).
	DecrementStoriesCount(ctx context.Context, id uuid.UUID) error
}
