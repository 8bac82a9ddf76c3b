package domain

import (
	"context"
	"time"
)

// Video processing states. Uploads are accepted immediately and flip to
// ready once the (simulated) processing step resolves. There is no timeout
// and no retry: once initiated, processing always eventually resolves.
const (
	VideoStatusProcessing = "processing"
	VideoStatusReady      = "ready"
)

// Industries available in the feed filter bar. "All" disables the filter.
var Industries = []string{
	"All", "Tech", "Creative", "Business", "Healthcare", "Trades", "Education", "Service",
}

// Video is one browsable feed item: a seeker's pitch video or an employer's
// job post. The interaction store references these by ID only and never
// inspects content fields.
type Video struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Industry    string   `json:"industry"`
	JobType     string   `json:"job_type,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	VideoURL    string   `json:"video_url"`
	PosterURL   string   `json:"poster_url,omitempty"`
	// HasResume marks seeker videos whose contact details sit behind the
	// unlock paywall.
	HasResume bool      `json:"has_resume"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FullName is the owner's real name; never serialized directly.
	// DisplayName carries the gated rendering of it.
	FullName string `json:"-"`
}

// VideoFilter narrows feed listings. Zero values (or "All") match everything.
type VideoFilter struct {
	Industry string
	JobType  string
}

// UploadVideoParams is the validated input for a new upload.
type UploadVideoParams struct {
	OwnerID     string
	Username    string
	FullName    string
	Title       string
	Description string
	Industry    string
	JobType     string
	Tags        []string
	HasResume   bool
	FileName    string
	ContentType string
	Data        []byte
	// Poster is an optional pre-scaled JPEG thumbnail.
	Poster []byte
}

type VideoRepository interface {
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id string) (*Video, error)
	List(ctx context.Context, filter VideoFilter) ([]Video, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ObjectStorage persists uploaded media and returns a public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Viewer identifies who is looking at the feed, for display-name gating.
type Viewer struct {
	UserID          string
	Role            string
	IsAuthenticated bool
}

type VideoUsecase interface {
	ListFeed(ctx context.Context, viewer Viewer, filter VideoFilter) ([]Video, error)
	GetVideo(ctx context.Context, viewer Viewer, id string) (*Video, error)
	Upload(ctx context.Context, params UploadVideoParams) (*Video, error)
}
