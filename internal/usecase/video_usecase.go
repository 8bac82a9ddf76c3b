package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"
	"go-jobreels-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type videoUsecase struct {
	videoRepo  domain.VideoRepository
	unlockRepo domain.UnlockRepository
	storage    domain.ObjectStorage
	validate   *validator.Validate
	// processingDelay simulates the transcode step before a video goes
	// ready. Fire-and-forget: it always eventually resolves.
	processingDelay time.Duration
	maxUploadBytes  int64
}

// NewVideoUsecase creates a new video usecase
func NewVideoUsecase(
	videoRepo domain.VideoRepository,
	unlockRepo domain.UnlockRepository,
	storage domain.ObjectStorage,
	validate *validator.Validate,
	processingDelay time.Duration,
	maxUploadBytes int64,
) domain.VideoUsecase {
	return &videoUsecase{
		videoRepo:       videoRepo,
		unlockRepo:      unlockRepo,
		storage:         storage,
		validate:        validate,
		processingDelay: processingDelay,
		maxUploadBytes:  maxUploadBytes,
	}
}

// ListFeed returns ready videos matching the filter, with seeker names
// gated by the display-name policy for this viewer.
func (uc *videoUsecase) ListFeed(ctx context.Context, viewer domain.Viewer, filter domain.VideoFilter) ([]domain.Video, error) {
	videos, err := uc.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range videos {
		if err := uc.gateName(ctx, viewer, &videos[i]); err != nil {
			return nil, err
		}
	}
	return videos, nil
}

// GetVideo returns one feed item with the viewer-specific display name
func (uc *videoUsecase) GetVideo(ctx context.Context, viewer domain.Viewer, id string) (*domain.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Video not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := uc.gateName(ctx, viewer, video); err != nil {
		return nil, err
	}
	return video, nil
}

// gateName applies domain.DisplayName so a seeker's identity cannot leak
// through any feed view before unlock.
func (uc *videoUsecase) gateName(ctx context.Context, viewer domain.Viewer, video *domain.Video) error {
	unlocked := false
	if viewer.IsAuthenticated && video.HasResume {
		var err error
		unlocked, err = uc.unlockRepo.IsUnlocked(ctx, viewer.UserID, video.OwnerID)
		if err != nil {
			return apperror.Internal(err)
		}
	}
	video.DisplayName = domain.DisplayName(video.FullName, video.Username, domain.NameVisibility{
		ViewerRole:       viewer.Role,
		IsAuthenticated:  viewer.IsAuthenticated,
		IsUnlocked:       unlocked,
		HasResumeDetails: video.HasResume,
	})
	return nil
}

type uploadValidation struct {
	Title    string `validate:"required,min=1,max=120"`
	Industry string `validate:"required"`
}

// Upload validates and stores a new video, then kicks off the simulated
// processing step. Validation rejects before any mutation; once accepted,
// the upload always resolves to ready.
func (uc *videoUsecase) Upload(ctx context.Context, params domain.UploadVideoParams) (*domain.Video, error) {
	if err := uc.validate.Struct(uploadValidation{Title: params.Title, Industry: params.Industry}); err != nil {
		return nil, apperror.BadRequest("Title and industry are required")
	}
	if len(params.Data) == 0 {
		return nil, apperror.BadRequest("Video file is required")
	}
	if int64(len(params.Data)) > uc.maxUploadBytes {
		return nil, apperror.BadRequest(fmt.Sprintf("File too large (max %dMB)", uc.maxUploadBytes/(1024*1024)))
	}

	id := uuid.NewString()
	ext := path.Ext(params.FileName)
	if ext == "" {
		ext = ".mp4"
	}

	videoURL, err := uc.storage.Put(ctx, "videos/"+id+ext, params.ContentType, params.Data)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	posterURL := ""
	if len(params.Poster) > 0 {
		posterURL, err = uc.storage.Put(ctx, "posters/"+id+".jpg", "image/jpeg", params.Poster)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}

	video := &domain.Video{
		ID:          id,
		OwnerID:     params.OwnerID,
		Username:    params.Username,
		FullName:    params.FullName,
		Title:       params.Title,
		Description: params.Description,
		Industry:    params.Industry,
		JobType:     params.JobType,
		Tags:        params.Tags,
		VideoURL:    videoURL,
		PosterURL:   posterURL,
		HasResume:   params.HasResume,
		Status:      domain.VideoStatusProcessing,
	}

	if err := uc.videoRepo.Create(ctx, video); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.scheduleProcessing(video.ID)
	return video, nil
}

// scheduleProcessing flips the video to ready after the simulated delay.
// Detached from the request context: there is no cancellation and no retry,
// the transition simply happens.
func (uc *videoUsecase) scheduleProcessing(videoID string) {
	go func() {
		if uc.processingDelay > 0 {
			time.Sleep(uc.processingDelay)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.videoRepo.UpdateStatus(ctx, videoID, domain.VideoStatusReady); err != nil {
			logger.Log.Error("Failed to mark video ready", "video_id", videoID, "error", err)
		}
	}()
}
