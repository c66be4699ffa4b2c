// Package storage содержит контракты слоя хранилищ stories-service.
//
// stories.go — репозиторий историй в БД (создание/чтение/выборки/удаление)
// и атомарные мутации вовлечённости (просмотры/лайки) на уровне одного
// документа — сервисный слой не делает собственных блокировок и полагается
// на эту атомарность.
// users.go — чтение проекций пользователей и best-effort счётчик историй.
// media.go — контракт внешнего хранилища медиа (S3/MinIO).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
)

var (
	// ErrNotFound — история отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности при вставке.
	ErrConflict = errors.New("conflict")
)

// Stories — контракт репозитория историй.
type Stories interface {
	// CreateStory сохраняет новую историю. Временные поля (CreatedAt/ExpiresAt)
	// приходят заполненными от сервисного слоя и не пересчитываются.
	// Возможные ошибки: ErrConflict.
	CreateStory(ctx context.Context, story models.Story) (*models.Story, error)

	// StoryByID возвращает историю по строковому идентификатору.
	// Если запись не найдена (включая неверный формат id) — ErrNotFound.
	StoryByID(ctx context.Context, id string) (*models.Story, error)

	// ListActive возвращает страницу активных историй: is_expired=false и
	// expires_at > now, с учётом фильтров p (см. models.ListParams).
	// Сортировка: created_at DESC, _id DESC. Пагинация offset-based.
	ListActive(ctx context.Context, now time.Time, p models.ListParams) (*models.StoryPage, error)

	// ActiveByOwner возвращает все активные истории владельца, сначала новые.
	ActiveByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]models.Story, error)

	// AddView идемпотентно добавляет просмотр: повторный просмотр того же
	// пользователя не порождает записи в БД. Возвращает историю после операции.
	// Если запись не найдена — ErrNotFound.
	AddView(ctx context.Context, id string, view models.View) (*models.Story, error)

	// ToggleLike атомарно переключает лайк по текущему членству пользователя
	// во множестве лайков. Возвращает историю после операции и итоговое
	// состояние liked. Если запись не найдена — ErrNotFound.
	ToggleLike(ctx context.Context, id string, like models.Like) (*models.Story, bool, error)

	// ListUnsweptExpired возвращает истории с expires_at < now, ещё не
	// помеченные is_expired=true (кандидаты на проход свипера).
	ListUnsweptExpired(ctx context.Context, now time.Time) ([]models.Story, error)

	// MarkExpired выставляет is_expired=true не более одного раза
	// (guard по текущему значению флага). Возвращает true, если флаг
	// был выставлен этим вызовом.
	MarkExpired(ctx context.Context, id string) (bool, error)

	// DeleteStory удаляет запись. Если запись не найдена — ErrNotFound.
	DeleteStory(ctx context.Context, id string) error
}

// StoriesStorage — верхнеуровневый интерфейс хранилища историй.
type StoriesStorage interface {
	Stories
	Users
	Close(ctx context.Context) error
}
