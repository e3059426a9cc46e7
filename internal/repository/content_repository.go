package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// ContentRepository handles persistence for video content records.
type ContentRepository interface {
	GetByVideoID(ctx context.Context, videoID string) (*domain.Content, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContentStatus) error
}

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository instantiates the repository.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

func (r *contentRepository) GetByVideoID(ctx context.Context, videoID string) (*domain.Content, error) {
	const query = `
        SELECT id, title, video_id, status, created_at, updated_at
        FROM contents WHERE video_id=$1`

	var content domain.Content
	if err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&content.ID,
		&content.Title,
		&content.VideoID,
		&content.Status,
		&content.CreatedAt,
		&content.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) UpdateStatus(ctx context.Context, id string, status domain.ContentStatus) error {
	const query = `UPDATE contents SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
