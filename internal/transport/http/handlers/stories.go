package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-news-aggregator/stories-service/internal/errors"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/service"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/transport/http/middleware"
)

// DTO REST-слоя: доменные модели наружу не отдаются.

type storyResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Kind            string    `json:"kind"`
	MediaURL        string    `json:"media_url,omitempty"`
	TextContent     string    `json:"text_content,omitempty"`
	Caption         string    `json:"caption,omitempty"`
	BackgroundColor string    `json:"background_color,omitempty"`
	DurationHours   int       `json:"duration_hours"`
	Visibility      string    `json:"visibility"`
	ViewsCount      int       `json:"views_count"`
	LikesCount      int       `json:"likes_count"`
	ViewedByMe      bool      `json:"viewed_by_me"`
	LikedByMe       bool      `json:"liked_by_me"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type storyPageResponse struct {
	Items      []storyResponse `json:"items"`
	Page       int64           `json:"page"`
	Limit      int64           `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int64           `json:"total_pages"`
}

type storyListResponse struct {
	Items []storyResponse `json:"items"`
}

type viewResponse struct {
	ViewsCount int `json:"views_count"`
}

type likeResponse struct {
	LikesCount int  `json:"likes_count"`
	IsLiked    bool `json:"is_liked"`
}

type viewerResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	ViewedAt  time.Time `json:"viewed_at"`
}

type viewersResponse struct {
	ViewsCount int              `json:"views_count"`
	Viewers    []viewerResponse `json:"viewers"`
}

func storyToResponse(s *models.Story, requester uuid.UUID) storyResponse {
	return storyResponse{
		ID:              s.ID,
		OwnerID:         s.OwnerID.String(),
		Kind:            string(s.Kind),
		MediaURL:        s.MediaURL,
		TextContent:     s.TextContent,
		Caption:         s.Caption,
		BackgroundColor: s.BackgroundColor,
		DurationHours:   s.DurationHours,
		Visibility:      string(s.Visibility),
		ViewsCount:      s.ViewsCount(),
		LikesCount:      s.LikesCount(),
		ViewedByMe:      s.ViewedBy(requester),
		LikedByMe:       s.LikedBy(requester),
		CreatedAt:       s.CreatedAt,
		ExpiresAt:       s.ExpiresAt,
	}
}

func storiesToResponse(items []models.Story, requester uuid.UUID) []storyResponse {
	out := make([]storyResponse, 0, len(items))
	for i := range items {
		out = append(out, storyToResponse(&items[i], requester))
	}

	return out
}

// CreateStory — POST /stories (multipart/form-data).
//
// Поля формы: kind, text_content, caption, background_color, duration_hours,
// visibility; файл — в части "media" (обязателен для image/video).
// duration_hours с валидным числом вне 1..168 отклоняется здесь; не-числа и
// отсутствие значения уходят в сервис и заменяются значением по умолчанию.
func (h *Handlers) CreateStory(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	// Запас поверх лимита медиа — на текстовые поля формы.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Media.MaxSizeBytes+1<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	duration := r.FormValue("duration_hours")
	if n, err := strconv.Atoi(duration); err == nil {
		if n < 1 || n > service.MaxDurationHours {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
	}

	in := service.CreateStoryInput{
		OwnerID:         requester,
		Kind:            r.FormValue("kind"),
		TextContent:     r.FormValue("text_content"),
		Caption:         r.FormValue("caption"),
		BackgroundColor: r.FormValue("background_color"),
		Duration:        duration,
		Visibility:      r.FormValue("visibility"),
	}

	payload, payloadType, err := readMediaPart(r)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	in.Payload = payload
	in.PayloadType = payloadType

	story, err := h.Service.CreateStory(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, storyToResponse(story, requester))
}

// readMediaPart читает файловую часть "media", если она есть.
// Отсутствие части не является ошибкой: обязательность медиа для image/video
// проверяет сервисный слой.
func readMediaPart(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("media")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}

		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return data, mediaContentType(header), nil
}

func mediaContentType(h *multipart.FileHeader) string {
	if h == nil {
		return ""
	}

	return h.Header.Get("Content-Type")
}

// ListStories — GET /stories.
// Параметры: page, limit, visibility, kind.
func (h *Handlers) ListStories(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	in := service.ListStoriesInput{
		RequesterID: requester,
		Visibility:  r.URL.Query().Get("visibility"),
		Kind:        r.URL.Query().Get("kind"),
	}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}

		in.Page = n
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}

		in.Limit = n
	}

	page, err := h.Service.ListStories(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, storyPageResponse{
		Items:      storiesToResponse(page.Items, requester),
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// StoryByID — GET /stories/{id}.
func (h *Handlers) StoryByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	story, err := h.Service.StoryByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, storyToResponse(story, requester))
}

// StoriesByOwner — GET /users/{user_id}/stories.
func (h *Handlers) StoriesByOwner(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	ownerID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	items, err := h.Service.StoriesByOwner(r.Context(), ownerID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, storyListResponse{
		Items: storiesToResponse(items, requester),
	})
}

// RecordView — POST /stories/{id}/view.
func (h *Handlers) RecordView(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	count, err := h.Service.RecordView(r.Context(), id, requester)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewResponse{ViewsCount: count})
}

// ToggleLike — POST /stories/{id}/like.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	result, err := h.Service.ToggleLike(r.Context(), id, requester)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{
		LikesCount: result.LikesCount,
		IsLiked:    result.IsLiked,
	})
}

// Viewers — GET /stories/{id}/viewers. Только для владельца истории.
func (h *Handlers) Viewers(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	viewers, err := h.Service.Viewers(r.Context(), id, requester)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := viewersResponse{
		ViewsCount: len(viewers),
		Viewers:    make([]viewerResponse, 0, len(viewers)),
	}
	for _, v := range viewers {
		out.Viewers = append(out.Viewers, viewerResponse{
			UserID:    v.UserID.String(),
			Username:  v.Username,
			AvatarURL: v.AvatarURL,
			ViewedAt:  v.ViewedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteStory — DELETE /stories/{id}. Только для владельца истории.
func (h *Handlers) DeleteStory(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.Service.DeleteStory(r.Context(), id, requester); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
