package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// CustomFieldRepository handles admin-defined fields and their per-account
// values. Values are opaque strings to this layer.
type CustomFieldRepository interface {
	CreateField(ctx context.Context, field *domain.CustomField) error
	ListFields(ctx context.Context) ([]domain.CustomField, error)
	UpsertValue(ctx context.Context, value *domain.CustomFieldValue) error
	ListValuesForSurgeon(ctx context.Context, surgeonID string) ([]domain.CustomFieldValue, error)
}

type customFieldRepository struct {
	pool *pgxpool.Pool
}

// NewCustomFieldRepository instantiates the repository.
func NewCustomFieldRepository(pool *pgxpool.Pool) CustomFieldRepository {
	return &customFieldRepository{pool: pool}
}

func (r *customFieldRepository) CreateField(ctx context.Context, field *domain.CustomField) error {
	const query = `
        INSERT INTO custom_fields (name, field_type, options, position)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		field.Name,
		field.Type,
		field.Options,
		field.Position,
	).Scan(&field.ID, &field.CreatedAt)
}

func (r *customFieldRepository) ListFields(ctx context.Context) ([]domain.CustomField, error) {
	const query = `SELECT id, name, field_type, options, position, created_at FROM custom_fields ORDER BY position, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomField
	for rows.Next() {
		var field domain.CustomField
		if err := rows.Scan(&field.ID, &field.Name, &field.Type, &field.Options, &field.Position, &field.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, field)
	}
	return result, rows.Err()
}

func (r *customFieldRepository) UpsertValue(ctx context.Context, value *domain.CustomFieldValue) error {
	const query = `
        INSERT INTO custom_field_values (surgeon_id, field_id, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (surgeon_id, field_id) DO UPDATE
        SET value=EXCLUDED.value, updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query, value.SurgeonID, value.FieldID, value.Value)
	return err
}

func (r *customFieldRepository) ListValuesForSurgeon(ctx context.Context, surgeonID string) ([]domain.CustomFieldValue, error) {
	const query = `
        SELECT surgeon_id, field_id, value, updated_at
        FROM custom_field_values WHERE surgeon_id=$1`

	rows, err := r.pool.Query(ctx, query, surgeonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomFieldValue
	for rows.Next() {
		var value domain.CustomFieldValue
		if err := rows.Scan(&value.SurgeonID, &value.FieldID, &value.Value, &value.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, rows.Err()
}
