package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// readWindow is the page size for read-everything loops. Reads keep paging
// until a short page comes back, defeating the backend's default row cap.
const readWindow = 1000

// SurgeonRepository handles persistence for accounts and their supporting
// CPT/volume and price data.
type SurgeonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Surgeon, error)
	ListAll(ctx context.Context) ([]domain.Surgeon, error)
	ListRegionLinks(ctx context.Context) ([]domain.SurgeonRegion, error)
	ListProcedures(ctx context.Context) ([]domain.ProcedureVolume, error)
	ListPrices(ctx context.Context) ([]domain.CPTPrice, error)
	UpsertAccounts(ctx context.Context, accounts []domain.Surgeon) (BulkResult, error)
	UpsertProcedures(ctx context.Context, procedures []domain.ProcedureVolume) (BulkResult, error)
	Delete(ctx context.Context, id string) error
}

type surgeonRepository struct {
	pool *pgxpool.Pool
}

// NewSurgeonRepository instantiates the repository.
func NewSurgeonRepository(pool *pgxpool.Pool) SurgeonRepository {
	return &surgeonRepository{pool: pool}
}

const surgeonColumns = `id, name, specialty, city, state, created_at, updated_at`

func (r *surgeonRepository) GetByID(ctx context.Context, id string) (*domain.Surgeon, error) {
	query := `SELECT ` + surgeonColumns + ` FROM surgeons WHERE id=$1`

	var s domain.Surgeon
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Specialty,
		&s.City,
		&s.State,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surgeonRepository) ListAll(ctx context.Context) ([]domain.Surgeon, error) {
	var result []domain.Surgeon
	for offset := 0; ; offset += readWindow {
		query := fmt.Sprintf(`SELECT %s FROM surgeons ORDER BY id LIMIT %d OFFSET %d`,
			surgeonColumns, readWindow, offset)

		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		page, err := scanSurgeons(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, page...)
		if len(page) < readWindow {
			return result, nil
		}
	}
}

func (r *surgeonRepository) ListRegionLinks(ctx context.Context) ([]domain.SurgeonRegion, error) {
	var result []domain.SurgeonRegion
	for offset := 0; ; offset += readWindow {
		query := fmt.Sprintf(`SELECT surgeon_id, region_id FROM surgeon_regions ORDER BY surgeon_id, region_id LIMIT %d OFFSET %d`,
			readWindow, offset)

		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		count := 0
		for rows.Next() {
			var link domain.SurgeonRegion
			if err := rows.Scan(&link.SurgeonID, &link.RegionID); err != nil {
				rows.Close()
				return nil, err
			}
			result = append(result, link)
			count++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		if count < readWindow {
			return result, nil
		}
	}
}

func (r *surgeonRepository) ListProcedures(ctx context.Context) ([]domain.ProcedureVolume, error) {
	var result []domain.ProcedureVolume
	for offset := 0; ; offset += readWindow {
		query := fmt.Sprintf(`SELECT id, surgeon_id, cpt_code, annual_volume FROM surgeon_procedures ORDER BY id LIMIT %d OFFSET %d`,
			readWindow, offset)

		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		count := 0
		for rows.Next() {
			var p domain.ProcedureVolume
			if err := rows.Scan(&p.ID, &p.SurgeonID, &p.CPTCode, &p.AnnualVolume); err != nil {
				rows.Close()
				return nil, err
			}
			result = append(result, p)
			count++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		if count < readWindow {
			return result, nil
		}
	}
}

func (r *surgeonRepository) ListPrices(ctx context.Context) ([]domain.CPTPrice, error) {
	const query = `SELECT cpt_code, average_price FROM cpt_prices ORDER BY cpt_code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CPTPrice
	for rows.Next() {
		var p domain.CPTPrice
		if err := rows.Scan(&p.CPTCode, &p.AveragePrice); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpsertAccounts writes import rows in batches with an explicit conflict
// target, aborting on the first failed batch.
func (r *surgeonRepository) UpsertAccounts(ctx context.Context, accounts []domain.Surgeon) (BulkResult, error) {
	result := BulkResult{Total: len(accounts)}

	const upsert = `
        INSERT INTO surgeons (id, name, specialty, city, state)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE
        SET name=EXCLUDED.name, specialty=EXCLUDED.specialty, city=EXCLUDED.city,
            state=EXCLUDED.state, updated_at=NOW()`

	for _, account := range accounts {
		if _, err := r.pool.Exec(ctx, upsert,
			account.ID,
			account.Name,
			account.Specialty,
			account.City,
			account.State,
		); err != nil {
			return result, err
		}
		result.Applied++
	}
	return result, nil
}

func (r *surgeonRepository) UpsertProcedures(ctx context.Context, procedures []domain.ProcedureVolume) (BulkResult, error) {
	result := BulkResult{Total: len(procedures)}

	const upsert = `
        INSERT INTO surgeon_procedures (surgeon_id, cpt_code, annual_volume)
        VALUES ($1,$2,$3)
        ON CONFLICT (surgeon_id, cpt_code) DO UPDATE
        SET annual_volume=EXCLUDED.annual_volume`

	for _, p := range procedures {
		if _, err := r.pool.Exec(ctx, upsert, p.SurgeonID, p.CPTCode, p.AnnualVolume); err != nil {
			return result, err
		}
		result.Applied++
	}
	return result, nil
}

func (r *surgeonRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM surgeons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSurgeons(rows pgx.Rows) ([]domain.Surgeon, error) {
	defer rows.Close()
	var result []domain.Surgeon
	for rows.Next() {
		var s domain.Surgeon
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Specialty,
			&s.City,
			&s.State,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
