package http

// Тесты REST-поверхности: роутер + middleware + хендлеры поверх сервисного
// слоя с моками хранилищ.
//
//  Проверяем:
//  - happy-path всех маршрутов и формат JSON-ответов;
//  - пограничную валидацию duration_hours (валидное число вне 1..168 — 400);
//  - маппинг ошибок сервиса в статусы (404/403/401);
//  - что в dev-режиме идентичность фиксирована, а в JWT-режиме запрос без
//    токена не доходит до хендлеров.

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/service"
	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/stories-service/mocks"
)

type testEnv struct {
	router  http.Handler
	stories *mocks.MockStories
	users   *mocks.MockUsers
	media   *mocks.MockMedia
	devID   uuid.UUID
}

// newTestEnv — роутер с dev-идентичностью поверх сервис-слоя с моками.
func newTestEnv(t *testing.T) (*testEnv, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStories(ctrl)
	mu := mocks.NewMockUsers(ctrl)
	mm := mocks.NewMockMedia(ctrl)

	devID := uuid.New()
	cfg := &config.Config{
		S3:    config.S3Config{UploadTimeout: time.Second},
		Media: config.MediaConfig{MaxSizeBytes: 1 << 20},
		Auth:  config.AuthConfig{DevUserID: devID.String()},
	}

	svc := service.New(ms, mu, mm, *cfg)
	router := NewRouter(svc, cfg, Options{Timeout: 5 * time.Second})

	return &testEnv{
		router:  router,
		stories: ms,
		users:   mu,
		media:   mm,
		devID:   devID,
	}, ctrl
}

type errEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErr(t *testing.T, rr *httptest.ResponseRecorder) errEnvelope {
	t.Helper()
	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

// multipartBody собирает multipart/form-data тело из полей и опционального файла.
func multipartBody(t *testing.T, fields map[string]string, fileContent []byte, fileType string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if fileContent != nil {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="media"; filename="media.bin"`}
		hdr["Content-Type"] = []string{fileType}
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestCreateStory_Text(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.stories.EXPECT().CreateStory(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, story models.Story) (*models.Story, error) {
			require.Equal(t, env.devID, story.OwnerID)
			require.Equal(t, models.KindText, story.Kind)
			require.Equal(t, 48, story.DurationHours)

			story.ID = "65f000000000000000000001"
			return &story, nil
		})
	env.users.EXPECT().IncrementStoriesCount(gomock.Any(), env.devID).Return(nil)

	body, contentType := multipartBody(t, map[string]string{
		"kind":           "text",
		"text_content":   "hello world",
		"duration_hours": "48",
		"visibility":     "public",
	}, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/stories", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		ID            string `json:"id"`
		OwnerID       string `json:"owner_id"`
		Kind          string `json:"kind"`
		DurationHours int    `json:"duration_hours"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "65f000000000000000000001", resp.ID)
	require.Equal(t, env.devID.String(), resp.OwnerID)
	require.Equal(t, "text", resp.Kind)
	require.Equal(t, 48, resp.DurationHours)
}

func TestCreateStory_DurationOutOfRange(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	// Валидное число вне 1..168 отклоняется на границе, до сервиса не доходит.
	body, contentType := multipartBody(t, map[string]string{
		"kind":           "text",
		"text_content":   "hello",
		"duration_hours": "200",
	}, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/stories", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_argument", decodeErr(t, rr).Error.Code)
}

func TestCreateStory_Image(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	env.media.EXPECT().Upload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in storage.UploadMediaInput) (*storage.UploadedMedia, error) {
			require.Equal(t, models.KindImage, in.Kind)
			require.Equal(t, "image/jpeg", in.ContentType)
			require.Equal(t, payload, in.Data)

			return &storage.UploadedMedia{
				URL: "http://s3.local/stories-media/stories/a.jpg",
				Key: "stories/a.jpg",
			}, nil
		})
	env.stories.EXPECT().CreateStory(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, story models.Story) (*models.Story, error) {
			return &story, nil
		})
	env.users.EXPECT().IncrementStoriesCount(gomock.Any(), env.devID).Return(nil)

	body, contentType := multipartBody(t, map[string]string{
		"kind": "image",
	}, payload, "image/jpeg")

	req := httptest.NewRequest(http.MethodPost, "/stories", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		MediaURL string `json:"media_url"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.MediaURL)
}

func TestCreateStory_UpstreamFailure(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.media.EXPECT().Upload(gomock.Any(), gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	body, contentType := multipartBody(t, map[string]string{
		"kind": "video",
	}, []byte{1, 2, 3}, "video/mp4")

	req := httptest.NewRequest(http.MethodPost, "/stories", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, "upstream_failure", decodeErr(t, rr).Error.Code)
}

func TestListStories(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	env.stories.EXPECT().ListActive(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.StoryPage{
			Items: []models.Story{
				{ID: "a", OwnerID: env.devID, Kind: models.KindText, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
			},
			Page:       1,
			Limit:      20,
			Total:      1,
			TotalPages: 1,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stories?page=1&limit=20", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.EqualValues(t, 1, resp.Total)
}

func TestListStories_BadPage(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/stories?page=abc", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStoryByID_NotFound(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.stories.EXPECT().StoryByID(gomock.Any(), "missing").
		Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/stories/missing", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "not_found", decodeErr(t, rr).Error.Code)
}

func TestDeleteStory_NotOwner(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.stories.EXPECT().StoryByID(gomock.Any(), "id-1").
		Return(&models.Story{ID: "id-1", OwnerID: uuid.New()}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/stories/id-1", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "permission_denied", decodeErr(t, rr).Error.Code)
}

func TestDeleteStory_Owner_NoContent(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.stories.EXPECT().StoryByID(gomock.Any(), "id-1").
		Return(&models.Story{ID: "id-1", OwnerID: env.devID, Kind: models.KindText}, nil)
	env.stories.EXPECT().DeleteStory(gomock.Any(), "id-1").Return(nil)
	env.users.EXPECT().DecrementStoriesCount(gomock.Any(), env.devID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/stories/id-1", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRecordView(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.stories.EXPECT().AddView(gomock.Any(), "id-1", gomock.Any()).
		Return(&models.Story{
			ID:    "id-1",
			Views: []models.View{{UserID: env.devID, ViewedAt: time.Now().UTC()}},
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/stories/id-1/view", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		ViewsCount int `json:"views_count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.ViewsCount)
}

func TestToggleLike(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.stories.EXPECT().ToggleLike(gomock.Any(), "id-1", gomock.Any()).
		Return(&models.Story{
			ID:    "id-1",
			Likes: []models.Like{{UserID: env.devID, LikedAt: time.Now().UTC()}},
		}, true, nil)

	req := httptest.NewRequest(http.MethodPost, "/stories/id-1/like", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		LikesCount int  `json:"likes_count"`
		IsLiked    bool `json:"is_liked"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.LikesCount)
	require.True(t, resp.IsLiked)
}

func TestViewers_OwnerOnly(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	viewer := uuid.New()
	story := &models.Story{
		ID:      "id-1",
		OwnerID: env.devID,
		Views:   []models.View{{UserID: viewer, ViewedAt: time.Now().UTC()}},
	}

	env.stories.EXPECT().StoryByID(gomock.Any(), "id-1").Return(story, nil)
	env.users.EXPECT().UsersByIDs(gomock.Any(), []uuid.UUID{viewer}).
		Return(map[uuid.UUID]models.User{
			viewer: {ID: viewer, Username: "bob"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stories/id-1/viewers", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		ViewsCount int `json:"views_count"`
		Viewers    []struct {
			UserID   string `json:"user_id"`
			Username string `json:"username"`
		} `json:"viewers"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.ViewsCount)
	require.Len(t, resp.Viewers, 1)
	require.Equal(t, "bob", resp.Viewers[0].Username)
}

func TestStoriesByOwner(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	owner := uuid.New()
	env.users.EXPECT().UserByID(gomock.Any(), owner).
		Return(&models.User{ID: owner, Username: "alice"}, nil)
	env.stories.EXPECT().ActiveByOwner(gomock.Any(), owner, gomock.Any()).
		Return([]models.Story{{ID: "a", OwnerID: owner}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/"+owner.String()+"/stories", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestStoriesByOwner_UnknownOwner(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	owner := uuid.New()
	env.users.EXPECT().UserByID(gomock.Any(), owner).
		Return(nil, storage.ErrNotFoundUser)

	req := httptest.NewRequest(http.MethodGet, "/users/"+owner.String()+"/stories", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "not_found", decodeErr(t, rr).Error.Code)
}

func TestStoriesByOwner_BadUUID(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid/stories", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestJWTMode_RejectsWithoutToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{
		S3:   config.S3Config{UploadTimeout: time.Second},
		Auth: config.AuthConfig{JWTSecret: "secret"},
	}
	svc := service.New(mocks.NewMockStories(ctrl), mocks.NewMockUsers(ctrl), mocks.NewMockMedia(ctrl), *cfg)
	router := NewRouter(svc, cfg, Options{})

	req := httptest.NewRequest(http.MethodGet, "/stories", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "unauthenticated", decodeErr(t, rr).Error.Code)
}

func TestBasePath_Mount(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	cfg := &config.Config{
		S3:   config.S3Config{UploadTimeout: time.Second},
		Auth: config.AuthConfig{DevUserID: env.devID.String()},
	}
	svc := service.New(env.stories, env.users, env.media, *cfg)
	router := NewRouter(svc, cfg, Options{BasePath: "/api"})

	env.stories.EXPECT().ListActive(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.StoryPage{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}
