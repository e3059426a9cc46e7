package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// CallLogRepository handles persistence for call activity.
type CallLogRepository interface {
	Create(ctx context.Context, log *domain.CallLog) error
	ListBySurgeon(ctx context.Context, surgeonID string, limit int) ([]domain.CallLog, error)
	LatestByPerson(ctx context.Context) (map[string]time.Time, error)
}

type callLogRepository struct {
	pool *pgxpool.Pool
}

// NewCallLogRepository instantiates the repository.
func NewCallLogRepository(pool *pgxpool.Pool) CallLogRepository {
	return &callLogRepository{pool: pool}
}

func (r *callLogRepository) Create(ctx context.Context, log *domain.CallLog) error {
	const query = `
        INSERT INTO call_logs (surgeon_id, logged_by, called_at, notes)
        VALUES ($1,$2,$3,$4)
        RETURNING id`

	calledAt := log.CalledAt
	if calledAt.IsZero() {
		calledAt = time.Now()
		log.CalledAt = calledAt
	}
	return r.pool.QueryRow(ctx, query, log.SurgeonID, log.LoggedBy, calledAt, log.Notes).Scan(&log.ID)
}

func (r *callLogRepository) ListBySurgeon(ctx context.Context, surgeonID string, limit int) ([]domain.CallLog, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, surgeon_id, logged_by, called_at, notes
        FROM call_logs WHERE surgeon_id=$1 ORDER BY called_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, surgeonID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CallLog
	for rows.Next() {
		var log domain.CallLog
		if err := rows.Scan(&log.ID, &log.SurgeonID, &log.LoggedBy, &log.CalledAt, &log.Notes); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}

// LatestByPerson returns each person's most recent call timestamp, the input
// to staleness classification.
func (r *callLogRepository) LatestByPerson(ctx context.Context) (map[string]time.Time, error) {
	const query = `SELECT logged_by, MAX(called_at) FROM call_logs GROUP BY logged_by`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]time.Time)
	for rows.Next() {
		var personID string
		var latest time.Time
		if err := rows.Scan(&personID, &latest); err != nil {
			return nil, err
		}
		result[personID] = latest
	}
	return result, rows.Err()
}
