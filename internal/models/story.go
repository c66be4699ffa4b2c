// Package models содержит доменные сущности stories-сервиса.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind — тип истории.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindText  Kind = "text"
)

// Valid сообщает, входит ли значение в допустимый перечень.
func (k Kind) Valid() bool {
	switch k {
	case KindImage, KindVideo, KindText:
		return true
	}

	return false
}

// HasMedia — истории типов image/video несут внешний медиа-объект.
func (k Kind) HasMedia() bool {
	return k == KindImage || k == KindVideo
}

// Visibility — область видимости истории.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityPrivate Visibility = "private"
)

// Valid сообщает, входит ли значение в допустимый перечень.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}

	return false
}

// DefaultBackgroundColor — фон текстовой истории по умолчанию.
const DefaultBackgroundColor = "#FFFFFF"

// MaxCaptionLen — предельная длина подписи.
const MaxCaptionLen = 500

// View — отметка просмотра; на одного пользователя не более одной записи.
type View struct {
	UserID   uuid.UUID
	ViewedAt time.Time
}

// Like — отметка лайка; на одного пользователя не более одной записи.
type Like struct {
	UserID  uuid.UUID
	LikedAt time.Time
}

// Story — внутренняя доменная модель истории (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB, наружу/вовнутрь конвертируется в string;
//   - OwnerID — UUID пользователя из users-service;
//   - MediaURL/MediaKey заданы только для kind ∈ {image, video}: URL — публичная
//     ссылка, Key — непрозрачный идентификатор объекта для удаления;
//   - ExpiresAt = CreatedAt + DurationHours; вычисляется один раз при создании
//     и далее не пересчитывается;
//   - IsExpired выставляется в true ровно один раз свипером и обратно не
//     сбрасывается; выборки активных историй не полагаются на флаг.
type Story struct {
	ID              string
	OwnerID         uuid.UUID
	Kind            Kind
	MediaURL        string
	MediaKey        string
	TextContent     string
	Caption         string
	BackgroundColor string
	DurationHours   int
	Visibility      Visibility
	Views           []View
	Likes           []Like
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ExpiresAt       time.Time
	IsExpired       bool
}

// ViewsCount — производное значение, всегда равно мощности множества просмотров.
func (s *Story) ViewsCount() int {
	return len(s.Views)
}

// LikesCount — производное значение, всегда равно мощности множества лайков.
func (s *Story) LikesCount() int {
	return len(s.Likes)
}

// ViewedBy сообщает, есть ли просмотр от данного пользователя.
func (s *Story) ViewedBy(userID uuid.UUID) bool {
	for i := range s.Views {
		if s.Views[i].UserID == userID {
			return true
		}
	}

	return false
}

// LikedBy сообщает, есть ли лайк от данного пользователя.
func (s *Story) LikedBy(userID uuid.UUID) bool {
	for i := range s.Likes {
		if s.Likes[i].UserID == userID {
			return true
		}
	}

	return false
}

// ListParams — параметры постраничной выдачи активных историй.
// Пустые Visibility/Kind означают отсутствие соответствующего фильтра.
type ListParams struct {
	RequesterID uuid.UUID
	Visibility  Visibility
	Kind        Kind
	Page        int64
	Limit       int64
}

// StoryPage — результат постраничной выдачи (offset-пагинация).
type StoryPage struct {
	Items      []Story
	Page       int64
	Limit      int64
	Total      int64
	TotalPages int64
}
