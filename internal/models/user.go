package models

import (
	"time"

	"github.com/google/uuid"
)

// User — проекция пользователя из users-service, которой владеет не этот
// сервис: здесь читаются только отображаемые поля и поддерживается счётчик
// опубликованных историй (best-effort, не транзакционно со стори-записью).
type User struct {
	ID           uuid.UUID
	Username     string
	AvatarURL    string
	StoriesCount int64
}

// Viewer — элемент списка просмотревших с раскрытой идентичностью.
type Viewer struct {
	UserID    uuid.UUID
	Username  string
	AvatarURL string
	ViewedAt  time.Time
}
