package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/pkg/log"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"
)

const (
	// DefaultDurationHours — срок жизни истории по умолчанию.
	DefaultDurationHours = 24
	// MaxDurationHours — верхняя граница срока жизни (7 суток); проверяется
	// на границе запроса, не здесь.
	MaxDurationHours = 168
)

// Входные структуры сервисного слоя.

// CreateStoryInput — создание истории.
//   - Kind обязателен: image/video/text;
//   - для text обязателен TextContent, Payload игнорируется;
//   - для image/video обязателен Payload (+ PayloadType), TextContent игнорируется;
//   - Duration — сырое строковое значение часов из запроса, нормализуется
//     таблицей подстановок (см. normalizeDurationHours);
//   - пустой Visibility означает public.
type CreateStoryInput struct {
	OwnerID         uuid.UUID
	Kind            string
	TextContent     string
	Caption         string
	BackgroundColor string
	Duration        string
	Visibility      string
	Payload         []byte
	PayloadType     string
}

// ListStoriesInput — параметры постраничной выдачи активных историй.
// Невалидные Visibility/Kind не являются ошибкой: такие значения просто
// не сужают выдачу (для visibility действует предикат по умолчанию
// «все публичные плюс свои»).
type ListStoriesInput struct {
	RequesterID uuid.UUID
	Visibility  string
	Kind        string
	Page        int64
	Limit       int64
}

// normalizeDurationHours приводит сырое значение часов к числу.
// Таблица подстановок: отсутствие значения, не-число, ноль и отрицательные
// значения дают DefaultDurationHours. Валидные числа вне диапазона 1..168
// здесь сознательно не обрезаются — эта проверка принадлежит границе
// запроса, а не движку.
func normalizeDurationHours(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultDurationHours
	}

	return n
}

// CreateStory — бизнес-операция создания истории.
//
// Валидация:
//   - OwnerID обязателен (uuid.Nil -> ErrInvalidArgument);
//   - Kind ∈ {image, video, text};
//   - для text — непустой TextContent; для image/video — непустой Payload;
//   - Caption не длиннее models.MaxCaptionLen;
//   - непустой Visibility обязан быть валидным значением перечисления.
//
// Поведение/ошибки:
//   - для image/video медиа загружается синхронно до какой-либо записи в БД;
//     сбой или таймаут загрузки — ErrUpstream, история не создаётся;
//   - ExpiresAt = CreatedAt + duration часов, вычисляется ровно один раз;
//   - инкремент stories_count владельца — best-effort после успешной записи:
//     его сбой логируется и не откатывает историю.
func (s *Service) CreateStory(ctx context.Context, in CreateStoryInput) (*models.Story, error) {
	const op = "service/stories/CreateStory"

	lg := log.From(ctx).With("op", op, "owner_id", in.OwnerID.String(), "kind", in.Kind)

	if in.OwnerID == uuid.Nil {
		lg.Warn("invalid argument: empty owner_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	kind := models.Kind(strings.TrimSpace(in.Kind))
	if !kind.Valid() {
		lg.Warn("invalid argument: bad kind")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if utf8.RuneCountInString(in.Caption) > models.MaxCaptionLen {
		lg.Warn("invalid argument: caption too long")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	visibility := models.VisibilityPublic
	if v := models.Visibility(strings.TrimSpace(in.Visibility)); v != "" {
		if !v.Valid() {
			lg.Warn("invalid argument: bad visibility")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		visibility = v
	}

	background := strings.TrimSpace(in.BackgroundColor)
	if background == "" {
		background = models.DefaultBackgroundColor
	}

	story := models.Story{
		OwnerID:         in.OwnerID,
		Kind:            kind,
		Caption:         strings.TrimSpace(in.Caption),
		BackgroundColor: background,
		DurationHours:   normalizeDurationHours(in.Duration),
		Visibility:      visibility,
	}

	switch {
	case kind == models.KindText:
		story.TextContent = strings.TrimSpace(in.TextContent)
		if story.TextContent == "" {
			lg.Warn("invalid argument: empty text_content for text story")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	default:
		if len(in.Payload) == 0 {
			lg.Warn("invalid argument: empty payload for media story")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		uploaded, err := s.uploadMedia(ctx, storage.UploadMediaInput{
			OwnerID:     in.OwnerID,
			Kind:        kind,
			ContentType: in.PayloadType,
			Data:        in.Payload,
		})
		if err != nil {
			return nil, err
		}

		story.MediaURL = uploaded.URL
		story.MediaKey = uploaded.Key
	}

	// Срок жизни вычисляется ровно один раз и далее не пересчитывается.
	now := time.Now().UTC()
	story.CreatedAt = now
	story.UpdatedAt = now
	story.ExpiresAt = now.Add(time.Duration(story.DurationHours) * time.Hour)

	created, err := s.stories.CreateStory(ctx, story)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on CreateStory", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	// Счётчик историй владельца вне транзакционной границы создания.
	if err := s.users.IncrementStoriesCount(ctx, in.OwnerID); err != nil {
		lg.Warn("stories_count increment failed", "err", err)
	}

	return created, nil
}

// ListStories — страница активных историй для запрашивающего.
//
// Предикат: is_expired=false И expires_at > now; затем либо явный валидный
// visibility-фильтр, либо «все публичные плюс свои»; опциональный kind.
// Сортировка: сначала новые, tie-break по id. Пагинация offset-based.
func (s *Service) ListStories(ctx context.Context, in ListStoriesInput) (*models.StoryPage, error) {
	const op = "service/stories/ListStories"

	lg := log.From(ctx).With("op", op, "requester_id", in.RequesterID.String())

	params := models.ListParams{
		RequesterID: in.RequesterID,
		Page:        in.Page,
		Limit:       in.Limit,
	}

	if v := models.Visibility(strings.TrimSpace(in.Visibility)); v.Valid() {
		params.Visibility = v
	}

	if k := models.Kind(strings.TrimSpace(in.Kind)); k.Valid() {
		params.Kind = k
	}

	page, err := s.stories.ListActive(ctx, time.Now().UTC(), params)
	if err != nil {
		lg.Error("storage error on ListActive", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}

// StoryByID — получить историю по ID.
//
// Поведение/ошибки:
//   - ErrNotFound — если история не найдена (включая неверный формат id);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) StoryByID(ctx context.Context, id string) (*models.Story, error) {
	const op = "service/stories/StoryByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	story, err := s.stories.StoryByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("story not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on StoryByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return story, nil
}

// StoriesByOwner — все активные истории владельца, сначала новые.
//
// Поведение/ошибки:
//   - ErrNotFound — владелец отсутствует в проекции пользователей;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) StoriesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Story, error) {
	const op = "service/stories/StoriesByOwner"

	lg := log.From(ctx).With("op", op, "owner_id", ownerID.String())

	if ownerID == uuid.Nil {
		lg.Warn("invalid argument: empty owner_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.users.UserByID(ctx, ownerID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundUser):
			lg.Warn("owner not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UserByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	items, err := s.stories.ActiveByOwner(ctx, ownerID, time.Now().UTC())
	if err != nil {
		lg.Error("storage error on ActiveByOwner", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return items, nil
}

// DeleteStory — удаление истории владельцем.
//
// Поведение/ошибки:
//   - ErrNotFound — история отсутствует;
//   - ErrPermissionDenied — запрашивающий не владелец; запись и счётчик
//     владельца не меняются;
//   - удаление медиа-объекта выполняется best-effort ДО удаления записи,
//     но его сбой никогда не блокирует удаление записи;
//   - декремент stories_count — best-effort, с нижней границей 0.
func (s *Service) DeleteStory(ctx context.Context, id string, requesterID uuid.UUID) error {
	const op = "service/stories/DeleteStory"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id, "requester_id", requesterID.String())

	if id == "" || requesterID == uuid.Nil {
		lg.Warn("invalid argument")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	story, err := s.stories.StoryByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("story not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on StoryByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if story.OwnerID != requesterID {
		lg.Warn("permission denied: not an owner")
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	s.removeMediaBestEffort(ctx, story)

	if err := s.stories.DeleteStory(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("story already deleted")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteStory", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if err := s.users.DecrementStoriesCount(ctx, story.OwnerID); err != nil {
		lg.Warn("stories_count decrement failed", "err", err)
	}

	return nil
}

// uploadMedia — обязательный вызов медиа-хранилища с ограниченным таймаутом.
// Любой сбой (включая таймаут) пробрасывается вызывающему: ErrInvalidArgument
// для нарушений ограничений загрузки, иначе ErrUpstream.
func (s *Service) uploadMedia(ctx context.Context, in storage.UploadMediaInput) (*storage.UploadedMedia, error) {
	const op = "service/stories/uploadMedia"

	ctx, cancel := context.WithTimeout(ctx, s.cfg.S3.UploadTimeout)
	defer cancel()

	uploaded, err := s.media.Upload(ctx, in)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidMedia) {
			log.From(ctx).Warn("media rejected", "op", op, "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		log.From(ctx).Error("media upload failed", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrUpstream)
	}

	return uploaded, nil
}

// removeMediaBestEffort — best-effort удаление медиа-объекта: ошибка (включая
// таймаут) логируется и никогда не пробрасывается вызывающему. Для историй
// без медиа — no-op.
func (s *Service) removeMediaBestEffort(ctx context.Context, story *models.Story) {
	const op = "service/stories/removeMediaBestEffort"

	if story.MediaKey == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.S3.UploadTimeout)
	defer cancel()

	if err := s.media.Remove(ctx, story.MediaKey, story.Kind); err != nil {
		mediaRemoveErrors.Inc()
		log.From(ctx).Warn("media remove failed",
			"op", op,
			"story_id", story.ID,
			"media_key", story.MediaKey,
			"err", err,
		)
	}
}
