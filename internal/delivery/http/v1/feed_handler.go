package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"go-jobreels-backend/internal/delivery/http/response"
	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
)

const posterMaxWidth = 720

type FeedHandler struct {
	videoUC        domain.VideoUsecase
	userUC         domain.AuthUsecase
	maxUploadBytes int64
}

// NewFeedHandler registers feed routes. The feed itself is public (with
// optional auth for name gating); uploads require a signed-in user.
func NewFeedHandler(public, protected *gin.RouterGroup, videoUC domain.VideoUsecase, userUC domain.AuthUsecase, maxUploadBytes int64) {
	handler := &FeedHandler{videoUC: videoUC, userUC: userUC, maxUploadBytes: maxUploadBytes}

	public.GET("/feed", handler.ListFeed)
	public.GET("/feed/industries", handler.ListIndustries)
	public.GET("/feed/:id", handler.GetVideo)
	protected.POST("/videos", handler.UploadVideo)
}

func viewerFromContext(c *gin.Context) domain.Viewer {
	userID := c.GetString(string(domain.KeyUserID))
	return domain.Viewer{
		UserID:          userID,
		Role:            c.GetString(string(domain.KeyUserRole)),
		IsAuthenticated: userID != "",
	}
}

// ListFeed godoc
// @Summary      Browse the video feed
// @Description  Ready videos, newest first. Seeker names are gated by the unlock policy for the current viewer.
// @Tags         feed
// @Produce      json
// @Param        industry  query     string  false  "Industry filter ('All' disables)"
// @Param        job_type  query     string  false  "Job type filter"
// @Success      200       {object}  response.Response{data=[]domain.Video}
// @Router       /feed [get]
func (h *FeedHandler) ListFeed(c *gin.Context) {
	videos, err := h.videoUC.ListFeed(c, viewerFromContext(c), domain.VideoFilter{
		Industry: c.Query("industry"),
		JobType:  c.Query("job_type"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Feed retrieved", videos)
}

// ListIndustries godoc
// @Summary      List feed industries
// @Tags         feed
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /feed/industries [get]
func (h *FeedHandler) ListIndustries(c *gin.Context) {
	response.Success(c, http.StatusOK, "Industries retrieved", domain.Industries)
}

// GetVideo godoc
// @Summary      Get one feed item
// @Tags         feed
// @Produce      json
// @Param        id  path      string  true  "Video ID"
// @Success      200 {object}  response.Response{data=domain.Video}
// @Failure      404 {object}  response.Response
// @Router       /feed/{id} [get]
func (h *FeedHandler) GetVideo(c *gin.Context) {
	video, err := h.videoUC.GetVideo(c, viewerFromContext(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Video retrieved", video)
}

// UploadVideo godoc
// @Summary      Upload a video
// @Description  Accepts a multipart upload (video + optional poster image). The video is stored immediately and flips to ready once processing resolves.
// @Tags         feed
// @Accept       multipart/form-data
// @Produce      json
// @Param        video        formData  file    true   "Video file (max 50MB)"
// @Param        poster       formData  file    false  "Poster image"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        industry     formData  string  true   "Industry"
// @Param        job_type     formData  string  false  "Job type"
// @Param        tags         formData  string  false  "Comma-separated tags"
// @Success      201  {object}  response.Response{data=domain.Video}
// @Failure      400  {object}  response.Response
// @Router       /videos [post]
// @Security     BearerAuth
func (h *FeedHandler) UploadVideo(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	user, err := h.userUC.GetCurrentUser(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		c.Error(apperror.BadRequest("Video file is required"))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.Error(apperror.BadRequest(fmt.Sprintf("File too large (max %dMB)", h.maxUploadBytes/(1024*1024))))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	var poster []byte
	if posterHeader, err := c.FormFile("poster"); err == nil {
		posterFile, err := posterHeader.Open()
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		defer posterFile.Close()
		raw, err := io.ReadAll(posterFile)
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		poster, err = resizePoster(raw, posterMaxWidth, 80)
		if err != nil {
			c.Error(apperror.BadRequest("Poster must be a valid JPEG or PNG image"))
			return
		}
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	video, err := h.videoUC.Upload(c, domain.UploadVideoParams{
		OwnerID:     userID,
		Username:    user.Username,
		FullName:    user.FullName,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Industry:    c.PostForm("industry"),
		JobType:     c.PostForm("job_type"),
		Tags:        tags,
		HasResume:   role == domain.RoleSeeker,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Poster:      poster,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Video uploaded", video)
}

// resizePoster downscales the poster to maxWidth, preserving aspect ratio,
// and re-encodes it as JPEG.
func resizePoster(data []byte, maxWidth, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	newWidth := bounds.Dx()
	newHeight := bounds.Dy()
	if newWidth > maxWidth {
		newHeight = newHeight * maxWidth / newWidth
		newWidth = maxWidth
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
