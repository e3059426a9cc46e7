package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// DeviceRepository handles push subscription rows.
type DeviceRepository interface {
	Create(ctx context.Context, sub *domain.DeviceSubscription) error
	ListForAdmins(ctx context.Context) ([]domain.DeviceSubscription, error)
	DeleteByPlayerIDs(ctx context.Context, playerIDs []string) error
}

type deviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository instantiates the repository.
func NewDeviceRepository(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepository{pool: pool}
}

// Create registers a player id for a person. Re-registering the same player
// id moves it to the new owner.
func (r *deviceRepository) Create(ctx context.Context, sub *domain.DeviceSubscription) error {
	const query = `
        INSERT INTO device_subscriptions (user_id, player_id)
        VALUES ($1,$2)
        ON CONFLICT (player_id) DO UPDATE SET user_id=EXCLUDED.user_id
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, sub.PersonID, sub.PlayerID).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *deviceRepository) ListForAdmins(ctx context.Context) ([]domain.DeviceSubscription, error) {
	const query = `
        SELECT d.id, d.user_id, d.player_id, d.created_at
        FROM device_subscriptions d
        JOIN persons p ON p.id = d.user_id
        WHERE p.is_admin = TRUE`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeviceSubscription
	for rows.Next() {
		var sub domain.DeviceSubscription
		if err := rows.Scan(&sub.ID, &sub.PersonID, &sub.PlayerID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

// DeleteByPlayerIDs prunes subscriptions the push provider reported invalid.
func (r *deviceRepository) DeleteByPlayerIDs(ctx context.Context, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM device_subscriptions WHERE player_id = ANY($1)`, playerIDs)
	return err
}
