package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// storyDoc — представление истории в коллекции stories.
// UUID пользователей хранятся строками: это снимает зависимость формата
// документа от кодеков драйвера и упрощает ручные запросы к базе.
type storyDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID         string             `bson:"owner_id"`
	Kind            string             `bson:"kind"`
	MediaURL        string             `bson:"media_url,omitempty"`
	MediaKey        string             `bson:"media_key,omitempty"`
	TextContent     string             `bson:"text_content,omitempty"`
	Caption         string             `bson:"caption,omitempty"`
	BackgroundColor string             `bson:"background_color"`
	DurationHours   int                `bson:"duration_hours"`
	Visibility      string             `bson:"visibility"`
	Views           []viewDoc          `bson:"views"`
	Likes           []likeDoc          `bson:"likes"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
	ExpiresAt       time.Time          `bson:"expires_at"`
	IsExpired       bool               `bson:"is_expired"`
}

type viewDoc struct {
	UserID   string    `bson:"user_id"`
	ViewedAt time.Time `bson:"viewed_at"`
}

type likeDoc struct {
	UserID  string    `bson:"user_id"`
	LikedAt time.Time `bson:"liked_at"`
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func fromModel(s models.Story) storyDoc {
	doc := storyDoc{
		OwnerID:         s.OwnerID.String(),
		Kind:            string(s.Kind),
		MediaURL:        s.MediaURL,
		MediaKey:        s.MediaKey,
		TextContent:     s.TextContent,
		Caption:         s.Caption,
		BackgroundColor: s.BackgroundColor,
		DurationHours:   s.DurationHours,
		Visibility:      string(s.Visibility),
		Views:           make([]viewDoc, 0, len(s.Views)),
		Likes:           make([]likeDoc, 0, len(s.Likes)),
		CreatedAt:       toMS(s.CreatedAt),
		UpdatedAt:       toMS(s.UpdatedAt),
		ExpiresAt:       toMS(s.ExpiresAt),
		IsExpired:       s.IsExpired,
	}

	for _, v := range s.Views {
		doc.Views = append(doc.Views, viewDoc{UserID: v.UserID.String(), ViewedAt: toMS(v.ViewedAt)})
	}

	for _, l := range s.Likes {
		doc.Likes = append(doc.Likes, likeDoc{UserID: l.UserID.String(), LikedAt: toMS(l.LikedAt)})
	}

	return doc
}

func toModel(doc storyDoc) (*models.Story, error) {
	owner, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner_id: %w", err)
	}

	s := models.Story{
		ID:              doc.ID.Hex(),
		OwnerID:         owner,
		Kind:            models.Kind(doc.Kind),
		MediaURL:        doc.MediaURL,
		MediaKey:        doc.MediaKey,
		TextContent:     doc.TextContent,
		Caption:         doc.Caption,
		BackgroundColor: doc.BackgroundColor,
		DurationHours:   doc.DurationHours,
		Visibility:      models.Visibility(doc.Visibility),
		CreatedAt:       doc.CreatedAt.UTC(),
		UpdatedAt:       doc.UpdatedAt.UTC(),
		ExpiresAt:       doc.ExpiresAt.UTC(),
		IsExpired:       doc.IsExpired,
	}

	for _, v := range doc.Views {
		id, err := uuid.Parse(v.UserID)
		if err != nil {
			return nil, fmt.Errorf("parse views.user_id: %w", err)
		}

		s.Views = append(s.Views, models.View{UserID: id, ViewedAt: v.ViewedAt.UTC()})
	}

	for _, l := range doc.Likes {
		id, err := uuid.Parse(l.UserID)
		if err != nil {
			return nil, fmt.Errorf("parse likes.user_id: %w", err)
		}

		s.Likes = append(s.Likes, models.Like{UserID: id, LikedAt: l.LikedAt.UTC()})
	}

	return &s, nil
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func (m *Mongo) limitOrDefault(limit int64) int64 {
	if limit <= 0 {
		limit = m.cfg.Limits.Default
	}

	if limit > m.cfg.Limits.Max {
		limit = m.cfg.Limits.Max
	}

	return limit
}

// CreateStory вставляет новую запись. Временные поля приходят заполненными
// от сервисного слоя; здесь они лишь нормализуются до миллисекунд.
func (m *Mongo) CreateStory(ctx context.Context, story models.Story) (*models.Story, error) {
	const op = "storage/mongo/CreateStory"

	doc := fromModel(story)

	res, err := m.stories.InsertOne(ctx, doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out, err := toModel(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// StoryByID возвращает историю по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) StoryByID(ctx context.Context, id string) (*models.Story, error) {
	const op = "storage/mongo/StoryByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc storyDoc
	if err := m.stories.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := toModel(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// activeFilter — общий предикат активной истории: не помечена свипером И
// срок ещё не истёк. Проверка expires_at не полагается на флаг, поэтому
// записи, до которых свипер не дошёл, в выдачу всё равно не попадают.
func activeFilter(now time.Time) bson.D {
	return bson.D{
		{Key: "is_expired", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: toMS(now)}}},
	}
}

// ListActive возвращает страницу активных историй.
// Сортировка: created_at DESC, _id DESC (стабильный tie-break для пагинации).
func (m *Mongo) ListActive(ctx context.Context, now time.Time, p models.ListParams) (*models.StoryPage, error) {
	const op = "storage/mongo/ListActive"

	filter := activeFilter(now)

	if p.Visibility.Valid() {
		filter = append(filter, bson.E{Key: "visibility", Value: string(p.Visibility)})
	} else {
		// По умолчанию: все публичные плюс собственные истории запрашивающего.
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "visibility", Value: string(models.VisibilityPublic)}},
			bson.D{{Key: "owner_id", Value: p.RequesterID.String()}},
		}})
	}

	if p.Kind.Valid() {
		filter = append(filter, bson.E{Key: "kind", Value: string(p.Kind)})
	}

	page := p.Page
	if page <= 0 {
		page = 1
	}

	limit := m.limitOrDefault(p.Limit)
	skip := (page - 1) * limit

	total, err := m.stories.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	items, err := m.findStories(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.StoryPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// ActiveByOwner возвращает все активные истории владельца, сначала новые.
func (m *Mongo) ActiveByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]models.Story, error) {
	const op = "storage/mongo/ActiveByOwner"

	filter := append(activeFilter(now), bson.E{Key: "owner_id", Value: ownerID.String()})

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	items, err := m.findStories(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// findStories — общий обход курсора с конвертацией в доменную модель.
func (m *Mongo) findStories(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.Story, error) {
	cur, err := m.stories.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var items []models.Story
	for cur.Next(ctx) {
		var doc storyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		s, err := toModel(doc)
		if err != nil {
			return nil, err
		}

		items = append(items, *s)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return items, nil
}

// AddView идемпотентно добавляет просмотр одним условным обновлением:
// guard "views.user_id != viewer" гарантирует не более одной записи на
// пользователя независимо от гонок и повторов. Повторный просмотр не
// порождает записи в БД.
func (m *Mongo) AddView(ctx context.Context, id string, view models.View) (*models.Story, error) {
	const op = "storage/mongo/AddView"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	userID := view.UserID.String()
	now := toMS(time.Now())

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "views.user_id", Value: bson.D{{Key: "$ne", Value: userID}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "views", Value: viewDoc{UserID: userID, ViewedAt: toMS(view.ViewedAt)}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc storyDoc
	err = m.stories.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		out, cErr := toModel(doc)
		if cErr != nil {
			return nil, fmt.Errorf("%s: %w", op, cErr)
		}

		return out, nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Guard не совпал: либо истории нет, либо просмотр уже учтён.
	return m.StoryByID(ctx, id)
}

// ToggleLike атомарно переключает лайк. Намерение выводится из текущего
// членства: сперва пробуем добавить с guard «ещё не лайкал», при промахе —
// убрать по членству. Каждая ветка — одно атомарное обновление документа,
// поэтому конкурирующие вызовы разных пользователей не теряют друг друга.
func (m *Mongo) ToggleLike(ctx context.Context, id string, like models.Like) (*models.Story, bool, error) {
	const op = "storage/mongo/ToggleLike"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	userID := like.UserID.String()
	now := toMS(time.Now())
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Ветка "like": пользователя ещё нет во множестве.
	addFilter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "likes.user_id", Value: bson.D{{Key: "$ne", Value: userID}}},
	}
	addUpdate := bson.D{
		{Key: "$push", Value: bson.D{{Key: "likes", Value: likeDoc{UserID: userID, LikedAt: toMS(like.LikedAt)}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}

	var doc storyDoc
	err = m.stories.FindOneAndUpdate(ctx, addFilter, addUpdate, opts).Decode(&doc)
	if err == nil {
		out, cErr := toModel(doc)
		if cErr != nil {
			return nil, false, fmt.Errorf("%s: %w", op, cErr)
		}

		return out, true, nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	// Ветка "unlike": пользователь уже во множестве.
	pullFilter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "likes.user_id", Value: userID},
	}
	pullUpdate := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "user_id", Value: userID}}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}

	err = m.stories.FindOneAndUpdate(ctx, pullFilter, pullUpdate, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			// Обе ветки промахнулись — записи нет.
			return nil, false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	out, cErr := toModel(doc)
	if cErr != nil {
		return nil, false, fmt.Errorf("%s: %w", op, cErr)
	}

	return out, false, nil
}

// ListUnsweptExpired возвращает кандидатов для прохода свипера:
// срок истёк, но флаг ещё не выставлен.
func (m *Mongo) ListUnsweptExpired(ctx context.Context, now time.Time) ([]models.Story, error) {
	const op = "storage/mongo/ListUnsweptExpired"

	filter := bson.D{
		{Key: "is_expired", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: toMS(now)}}},
	}

	items, err := m.findStories(ctx, filter, options.Find().SetSort(bson.D{{Key: "expires_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// MarkExpired выставляет is_expired=true не более одного раза: guard по
// текущему значению флага делает операцию идемпотентной и исключает
// повторную обработку при перезапуске свипера.
func (m *Mongo) MarkExpired(ctx context.Context, id string) (bool, error) {
	const op = "storage/mongo/MarkExpired"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.stories.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "is_expired", Value: false},
		},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "is_expired", Value: true},
				{Key: "updated_at", Value: toMS(time.Now())},
			}},
		},
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return res.ModifiedCount == 1, nil
}

// DeleteStory удаляет запись окончательно.
func (m *Mongo) DeleteStory(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteStory"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.stories.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
