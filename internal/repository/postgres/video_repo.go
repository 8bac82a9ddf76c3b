package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go-jobreels-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type videoRepo struct {
	db *pgxpool.Pool
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *pgxpool.Pool) domain.VideoRepository {
	return &videoRepo{db: db}
}

// Create inserts a new feed video
func (r *videoRepo) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, username, full_name, title, description, industry, job_type, tags, video_url, poster_url, has_resume, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now
	if video.Status == "" {
		video.Status = domain.VideoStatusProcessing
	}

	_, err := r.db.Exec(ctx, query,
		video.ID, video.OwnerID, video.Username, video.FullName,
		video.Title, video.Description, video.Industry, video.JobType,
		pq.Array(video.Tags), video.VideoURL, video.PosterURL,
		video.HasResume, video.Status, video.CreatedAt, video.UpdatedAt,
	)
	return err
}

// GetByID retrieves a single video
func (r *videoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := selectVideoColumns + ` WHERE id = $1`

	var video domain.Video
	var tags []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&video.ID, &video.OwnerID, &video.Username, &video.FullName,
		&video.Title, &video.Description, &video.Industry, &video.JobType,
		pq.Array(&tags), &video.VideoURL, &video.PosterURL,
		&video.HasResume, &video.Status, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	video.Tags = tags
	return &video, nil
}

const selectVideoColumns = `
	SELECT id, owner_id, username, full_name, title, description, industry, job_type,
	       tags, video_url, poster_url, has_resume, status, created_at, updated_at
	FROM videos`

// List returns ready videos matching the filter, newest first
func (r *videoRepo) List(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	query := selectVideoColumns + ` WHERE status = $1`
	args := []interface{}{domain.VideoStatusReady}

	if filter.Industry != "" && filter.Industry != "All" {
		args = append(args, filter.Industry)
		query += ` AND industry = $2`
	}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		query += ` AND job_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []domain.Video
	for rows.Next() {
		var video domain.Video
		var tags []string
		if err := rows.Scan(
			&video.ID, &video.OwnerID, &video.Username, &video.FullName,
			&video.Title, &video.Description, &video.Industry, &video.JobType,
			pq.Array(&tags), &video.VideoURL, &video.PosterURL,
			&video.HasResume, &video.Status, &video.CreatedAt, &video.UpdatedAt,
		); err != nil {
			return nil, err
		}
		video.Tags = tags
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// UpdateStatus moves a video between processing and ready
func (r *videoRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE videos SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
