package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/internal/repository/kv"
	"go-jobreels-backend/internal/usecase"
	"go-jobreels-backend/pkg/apperror"
	"go-jobreels-backend/pkg/kvstore"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVideoRepo struct {
	mock.Mock
}

func (m *MockVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepo) List(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Video), args.Error(1)
}

func (m *MockVideoRepo) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

const testMaxUploadBytes = 1024

func newVideoFixture(t *testing.T) (domain.VideoUsecase, *MockVideoRepo, *MockObjectStorage, domain.UnlockRepository) {
	t.Helper()
	repo := new(MockVideoRepo)
	storage := new(MockObjectStorage)
	unlockRepo := kv.NewUnlockRepository(kvstore.NewMemoryStore())
	// A long processing delay keeps the background status flip out of the
	// test's lifetime.
	uc := usecase.NewVideoUsecase(repo, unlockRepo, storage, validator.New(), time.Minute, testMaxUploadBytes)
	return uc, repo, storage, unlockRepo
}

func TestUploadValidation(t *testing.T) {
	uc, repo, storage, _ := newVideoFixture(t)
	ctx := context.Background()

	base := domain.UploadVideoParams{
		OwnerID:  "s1",
		Username: "janes",
		FullName: "Jane Smith",
		Title:    "Frontend Dev Pitch",
		Industry: "Tech",
		FileName: "pitch.mp4",
		Data:     []byte("clip"),
	}

	t.Run("missing title", func(t *testing.T) {
		params := base
		params.Title = ""
		_, err := uc.Upload(ctx, params)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("missing industry", func(t *testing.T) {
		params := base
		params.Industry = ""
		_, err := uc.Upload(ctx, params)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("empty file", func(t *testing.T) {
		params := base
		params.Data = nil
		_, err := uc.Upload(ctx, params)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("oversize file", func(t *testing.T) {
		params := base
		params.Data = make([]byte, testMaxUploadBytes+1)
		_, err := uc.Upload(ctx, params)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	// Rejected uploads never reach storage or the repository.
	storage.AssertNotCalled(t, "Put")
	repo.AssertNotCalled(t, "Create")
}

func TestUploadStoresMediaAndStartsProcessing(t *testing.T) {
	uc, repo, storage, _ := newVideoFixture(t)
	ctx := context.Background()

	storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("videos/") && key[:len("videos/")] == "videos/"
	}), "video/mp4", mock.Anything).Return("https://cdn.example.com/videos/x.mp4", nil).Once()
	storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("posters/") && key[:len("posters/")] == "posters/"
	}), "image/jpeg", mock.Anything).Return("https://cdn.example.com/posters/x.jpg", nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.VideoStatusReady).Return(nil).Maybe()

	video, err := uc.Upload(ctx, domain.UploadVideoParams{
		OwnerID:     "s1",
		Username:    "janes",
		FullName:    "Jane Smith",
		Title:       "Frontend Dev Pitch",
		Industry:    "Tech",
		HasResume:   true,
		FileName:    "pitch.mp4",
		ContentType: "video/mp4",
		Data:        []byte("clip"),
		Poster:      []byte("jpegdata"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, video.ID)
	assert.Equal(t, domain.VideoStatusProcessing, video.Status)
	assert.Equal(t, "https://cdn.example.com/videos/x.mp4", video.VideoURL)
	assert.Equal(t, "https://cdn.example.com/posters/x.jpg", video.PosterURL)
	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestFeedNameGating(t *testing.T) {
	uc, repo, _, unlockRepo := newVideoFixture(t)
	ctx := context.Background()

	feed := []domain.Video{
		{ID: "v1", OwnerID: "s1", Username: "janes", FullName: "Jane Smith", HasResume: true},
		{ID: "v2", OwnerID: "e9", Username: "acme", FullName: "Acme Corp"},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(feed, nil)

	t.Run("anonymous viewer", func(t *testing.T) {
		videos, err := uc.ListFeed(ctx, domain.Viewer{}, domain.VideoFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Jane", videos[0].DisplayName)
		assert.Equal(t, "Acme Corp", videos[1].DisplayName)
	})

	t.Run("employer before unlock", func(t *testing.T) {
		viewer := domain.Viewer{UserID: "e1", Role: domain.RoleEmployer, IsAuthenticated: true}
		videos, err := uc.ListFeed(ctx, viewer, domain.VideoFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Jane", videos[0].DisplayName)
	})

	t.Run("employer after unlock", func(t *testing.T) {
		require.NoError(t, unlockRepo.Add(ctx, "e1", "s1"))
		viewer := domain.Viewer{UserID: "e1", Role: domain.RoleEmployer, IsAuthenticated: true}
		videos, err := uc.ListFeed(ctx, viewer, domain.VideoFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", videos[0].DisplayName)
	})

	t.Run("seeker viewer", func(t *testing.T) {
		viewer := domain.Viewer{UserID: "s2", Role: domain.RoleSeeker, IsAuthenticated: true}
		videos, err := uc.ListFeed(ctx, viewer, domain.VideoFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", videos[0].DisplayName)
	})
}

func TestGetVideoNotFound(t *testing.T) {
	uc, repo, _, _ := newVideoFixture(t)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := uc.GetVideo(context.Background(), domain.Viewer{}, "missing")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
