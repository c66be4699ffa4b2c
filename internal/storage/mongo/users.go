package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// userDoc — проекция пользователя в коллекции users. Записью владеет
// users-service; здесь читаются отображаемые поля и мутируется только
// stories_count.
type userDoc struct {
	ID           string `bson:"_id"`
	Username     string `bson:"username"`
	AvatarURL    string `bson:"avatar_url,omitempty"`
	StoriesCount int64  `bson:"stories_count"`
}

func userToModel(doc userDoc) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user _id: %w", err)
	}

	return &models.User{
		ID:           id,
		Username:     doc.Username,
		AvatarURL:    doc.AvatarURL,
		StoriesCount: doc.StoriesCount,
	}, nil
}

// UserByID возвращает проекцию пользователя.
func (m *Mongo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage/mongo/UserByID"

	var doc userDoc
	if err := m.users.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundUser)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := userToModel(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UsersByIDs возвращает найденные проекции; отсутствующие идентификаторы
// в карту не попадают.
func (m *Mongo) UsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	const op = "storage/mongo/UsersByIDs"

	out := make(map[uuid.UUID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	cur, err := m.users.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: keys}}}})
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		u, err := userToModel(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		out[u.ID] = *u
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// IncrementStoriesCount увеличивает счётчик историй владельца на 1.
func (m *Mongo) IncrementStoriesCount(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/IncrementStoriesCount"

	res, err := m.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "stories_count", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundUser)
	}

	return nil
}

// DecrementStoriesCount уменьшает счётчик на 1 с нижней границей 0:
// guard stories_count > 0 в фильтре не даёт уйти в минус; декремент
// на нулевом счётчике — no-op.
func (m *Mongo) DecrementStoriesCount(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/DecrementStoriesCount"

	_, err := m.users.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "stories_count", Value: bson.D{{Key: "$gt", Value: 0}}},
		},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "stories_count", Value: -1}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.StoriesStorage = (*Mongo)(nil)
