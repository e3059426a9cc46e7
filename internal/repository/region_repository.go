package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// RegionRepository handles persistence for regions.
type RegionRepository interface {
	Create(ctx context.Context, region *domain.Region) error
	GetByID(ctx context.Context, id string) (*domain.Region, error)
	ListAll(ctx context.Context) ([]domain.Region, error)
}

type regionRepository struct {
	pool *pgxpool.Pool
}

// NewRegionRepository instantiates the repository.
func NewRegionRepository(pool *pgxpool.Pool) RegionRepository {
	return &regionRepository{pool: pool}
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) error {
	const query = `
        INSERT INTO regions (name)
        VALUES ($1)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, region.Name).Scan(&region.ID, &region.CreatedAt)
}

func (r *regionRepository) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	const query = `SELECT id, name, created_at FROM regions WHERE id=$1`

	var region domain.Region
	if err := r.pool.QueryRow(ctx, query, id).Scan(&region.ID, &region.Name, &region.CreatedAt); err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *regionRepository) ListAll(ctx context.Context) ([]domain.Region, error) {
	const query = `SELECT id, name, created_at FROM regions ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Region
	for rows.Next() {
		var region domain.Region
		if err := rows.Scan(&region.ID, &region.Name, &region.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, region)
	}
	return result, rows.Err()
}
