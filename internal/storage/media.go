package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
)

var (
	// ErrNotFoundMedia — объект (ключ) отсутствует в бакете.
	ErrNotFoundMedia = errors.New("media not found")
	// ErrInvalidMedia — нарушены ограничения загрузки (тип/размер).
	ErrInvalidMedia = errors.New("invalid media")
)

// UploadMediaInput — параметры обязательной загрузки медиа при создании истории.
type UploadMediaInput struct {
	OwnerID     uuid.UUID
	Kind        models.Kind
	ContentType string
	Data        []byte
}

// UploadedMedia — результат успешной загрузки.
//   - URL: публичная ссылка на объект;
//   - Key: непрозрачный идентификатор для последующего удаления;
//   - UploadedAt: момент фиксации объекта в бакете.
type UploadedMedia struct {
	URL        string
	Key        string
	UploadedAt time.Time
}

// Media — контракт внешнего хранилища бинарных медиа (S3/MinIO).
//
// Upload — обязательный вызов на пути создания истории: его ошибка
// пробрасывается вызывающему и прерывает создание до какой-либо записи.
// Remove — используется только в best-effort дисциплине (удаление истории,
// проход свипера): ошибка логируется и никогда не блокирует вызывающего.
type Media interface {
	Upload(ctx context.Context, in UploadMediaInput) (*UploadedMedia, error)
	Remove(ctx context.Context, key string, kind models.Kind) error
}
