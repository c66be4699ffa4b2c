package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/config"
	apierrors "github.com/pribylovaa/go-news-aggregator/stories-service/internal/errors"
)

// CtxUserID — ключ контекста с идентификатором аутентифицированного пользователя.
const CtxUserID ctxKey = "user_id"

type accessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Auth устанавливает идентичность запроса.
//
// Режимы (ровно один, валидируется конфигом):
//   - DevUserID задан — все запросы выполняются от его имени, токен не нужен;
//   - иначе из Authorization извлекается Bearer-токен и проверяется как
//     HS256 access-токен auth-service; идентичность берётся из claim uid.
//
// Запрос без валидной идентичности завершается 401 и до хендлеров не доходит.
func Auth(cfg config.AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.DevUserID != "" {
				id, err := uuid.Parse(cfg.DevUserID)
				if err != nil {
					apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
					return
				}

				ctx := context.WithValue(r.Context(), CtxUserID, id)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			id, err := parseAccessToken(token, cfg.JWTSecret)
			if err != nil {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает идентичность запроса из контекста.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(CtxUserID).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}

// parseAccessToken валидирует HS256-токен и извлекает uid.
func parseAccessToken(tokenStr, secret string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method")
			}

			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse uid claim: %w", err)
	}

	return id, nil
}
