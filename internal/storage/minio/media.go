package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"
)

// Upload кладёт бинарный объект в бакет и возвращает публичный URL плюс
// непрозрачный ключ удаления. Вызов обязателен на пути создания истории:
// ошибка здесь прерывает создание до какой-либо записи в БД.
// Валидирует размер и content-type согласно конфигу, формирует ключ вида
// "stories/<ownerID>/<uuid>.<ext>".
func (s *MediaStorage) Upload(ctx context.Context, in storage.UploadMediaInput) (*storage.UploadedMedia, error) {
	const op = "storage/minio/Upload"

	size := int64(len(in.Data))
	if size <= 0 || size > s.cfg.Media.MaxSizeBytes {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidMedia)
	}

	if !s.allowedContentType(in.Kind, in.ContentType) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidMedia)
	}

	key := path.Join("stories", in.OwnerID.String(), uuid.NewString()+extByContentType(in.ContentType))

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, bytes.NewReader(in.Data), size,
		mclient.PutObjectOptions{ContentType: in.ContentType})
	if err != nil {
		return nil, fmt.Errorf("%s: put object: %w", op, err)
	}

	return &storage.UploadedMedia{
		URL:        s.publicURL(key),
		Key:        key,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Remove удаляет объект по ключу. Отсутствие объекта не считается ошибкой:
// повторный проход свипера по той же истории не должен падать.
func (s *MediaStorage) Remove(ctx context.Context, key string, _ models.Kind) error {
	const op = "storage/minio/Remove"

	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundMedia)
	}

	err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil
		}

		return fmt.Errorf("%s: remove object: %w", op, err)
	}

	return nil
}

// publicURL собирает внешнюю ссылку на объект. Если PublicBaseURL не задан,
// используется endpoint/bucket самого хранилища.
func (s *MediaStorage) publicURL(key string) string {
	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(s.cfg.S3.Endpoint, "/") + "/" + s.cfg.S3.Bucket
	}

	return base + "/" + key
}

// allowedContentType проверяет тип содержимого по allow-list для данного kind.
func (s *MediaStorage) allowedContentType(kind models.Kind, contentType string) bool {
	var allow []string
	switch kind {
	case models.KindImage:
		allow = s.cfg.Media.AllowedImageTypes
	case models.KindVideo:
		allow = s.cfg.Media.AllowedVideoTypes
	default:
		return false
	}

	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}

// extByContentType — расширение файла по типу содержимого.
func extByContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}
