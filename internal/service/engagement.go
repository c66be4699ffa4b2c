package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/pkg/log"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"
)

// LikeResult — итог переключения лайка.
type LikeResult struct {
	LikesCount int
	IsLiked    bool
}

// RecordView фиксирует просмотр истории зрителем и возвращает актуальное
// число просмотров.
//
// Идемпотентность обеспечивается условным обновлением в хранилище: повторный
// просмотр тем же пользователем не меняет запись и не является ошибкой.
// Просмотр собственной истории допустим и учитывается наравне с остальными.
func (s *Service) RecordView(ctx context.Context, storyID string, viewerID uuid.UUID) (int, error) {
	const op = "service/engagement/RecordView"

	storyID = strings.TrimSpace(storyID)
	lg := log.From(ctx).With("op", op, "story_id", storyID, "viewer_id", viewerID.String())

	if storyID == "" || viewerID == uuid.Nil {
		lg.Warn("invalid argument")
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	story, err := s.stories.AddView(ctx, storyID, models.View{
		UserID:   viewerID,
		ViewedAt: time.Now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("story not found")
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on AddView", "err", err)
			return 0, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return story.ViewsCount(), nil
}

// ToggleLike переключает лайк пользователя: первый вызов добавляет,
// повторный — снимает. Возвращает актуальное число лайков и состояние
// после переключения.
func (s *Service) ToggleLike(ctx context.Context, storyID string, userID uuid.UUID) (*LikeResult, error) {
	const op = "service/engagement/ToggleLike"

	storyID = strings.TrimSpace(storyID)
	lg := log.From(ctx).With("op", op, "story_id", storyID, "user_id", userID.String())

	if storyID == "" || userID == uuid.Nil {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	story, liked, err := s.stories.ToggleLike(ctx, storyID, models.Like{
		UserID:  userID,
		LikedAt: time.Now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("story not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ToggleLike", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return &LikeResult{
		LikesCount: story.LikesCount(),
		IsLiked:    liked,
	}, nil
}

// Viewers — список зрителей истории, доступен только её владельцу.
//
// Профили зрителей подтягиваются пачкой из коллекции users; зритель без
// профиля не выбрасывается из ответа — отдаётся с пустыми username/avatar.
func (s *Service) Viewers(ctx context.Context, storyID string, requesterID uuid.UUID) ([]models.Viewer, error) {
	const op = "service/engagement/Viewers"

	storyID = strings.TrimSpace(storyID)
	lg := log.From(ctx).With("op", op, "story_id", storyID, "requester_id", requesterID.String())

	if storyID == "" || requesterID == uuid.Nil {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	story, err := s.stories.StoryByID(ctx, storyID)
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

	if story.OwnerID != requesterID {
		lg.Warn("permission denied: not an owner")
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	ids := make([]uuid.UUID, 0, len(story.Views))
	for _, v := range story.Views {
		ids = append(ids, v.UserID)
	}

	profiles, err := s.users.UsersByIDs(ctx, ids)
	if err != nil {
		lg.Error("storage error on UsersByIDs", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	viewers := make([]models.Viewer, 0, len(story.Views))
	for _, v := range story.Views {
		viewer := models.Viewer{
			UserID:   v.UserID,
			ViewedAt: v.ViewedAt,
		}

		if u, ok := profiles[v.UserID]; ok {
			viewer.Username = u.Username
			viewer.AvatarURL = u.AvatarURL
		}

		viewers = append(viewers, viewer)
	}

	return viewers, nil
}
