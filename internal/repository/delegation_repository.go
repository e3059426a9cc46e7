package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// delegationBatchSize caps rows per write to respect backend payload limits.
const delegationBatchSize = 500

// BulkResult reports how much of a batched write committed. There is no
// continue-on-partial-failure: the first batch error aborts the operation and
// earlier batches stay committed.
type BulkResult struct {
	Applied int
	Total   int
}

// DelegationRepository handles persistence for account delegation rows.
type DelegationRepository interface {
	ListByDelegator(ctx context.Context, delegatorID string) ([]domain.AccountDelegation, error)
	ListToPerson(ctx context.Context, personID string) ([]domain.AccountDelegation, error)
	ListAll(ctx context.Context) ([]domain.AccountDelegation, error)
	CountToPerson(ctx context.Context, personID string) (int, error)
	Assign(ctx context.Context, accountIDs []string, toPersonID, byPersonID string) (BulkResult, error)
	Unassign(ctx context.Context, accountIDs []string, fromPersonID, byPersonID string) (BulkResult, error)
}

type delegationRepository struct {
	pool *pgxpool.Pool
}

// NewDelegationRepository instantiates the repository.
func NewDelegationRepository(pool *pgxpool.Pool) DelegationRepository {
	return &delegationRepository{pool: pool}
}

const delegationColumns = `id, account_id, delegated_to, delegated_by, created_at`

func (r *delegationRepository) ListByDelegator(ctx context.Context, delegatorID string) ([]domain.AccountDelegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM account_delegations WHERE delegated_by=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, delegatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDelegations(rows)
}

func (r *delegationRepository) ListToPerson(ctx context.Context, personID string) ([]domain.AccountDelegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM account_delegations WHERE delegated_to=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDelegations(rows)
}

func (r *delegationRepository) ListAll(ctx context.Context) ([]domain.AccountDelegation, error) {
	query := `SELECT ` + delegationColumns + ` FROM account_delegations ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDelegations(rows)
}

func (r *delegationRepository) CountToPerson(ctx context.Context, personID string) (int, error) {
	const query = `SELECT COUNT(*) FROM account_delegations WHERE delegated_to=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, personID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Assign bulk-inserts one row per account in fixed-size batches. The first
// failing batch aborts the operation; the result tells the caller how many
// rows were committed before the failure.
func (r *delegationRepository) Assign(ctx context.Context, accountIDs []string, toPersonID, byPersonID string) (BulkResult, error) {
	result := BulkResult{Total: len(accountIDs)}

	const insert = `
        INSERT INTO account_delegations (account_id, delegated_to, delegated_by)
        SELECT unnest($1::uuid[]), $2, $3`

	for start := 0; start < len(accountIDs); start += delegationBatchSize {
		end := start + delegationBatchSize
		if end > len(accountIDs) {
			end = len(accountIDs)
		}
		batch := accountIDs[start:end]
		if _, err := r.pool.Exec(ctx, insert, batch, toPersonID, byPersonID); err != nil {
			return result, err
		}
		result.Applied += len(batch)
	}
	return result, nil
}

// Unassign bulk-deletes rows matching (delegated_to, delegated_by, account in
// set), batched identically to Assign.
func (r *delegationRepository) Unassign(ctx context.Context, accountIDs []string, fromPersonID, byPersonID string) (BulkResult, error) {
	result := BulkResult{Total: len(accountIDs)}

	const del = `
        DELETE FROM account_delegations
        WHERE delegated_to=$1 AND delegated_by=$2 AND account_id = ANY($3::uuid[])`

	for start := 0; start < len(accountIDs); start += delegationBatchSize {
		end := start + delegationBatchSize
		if end > len(accountIDs) {
			end = len(accountIDs)
		}
		batch := accountIDs[start:end]
		if _, err := r.pool.Exec(ctx, del, fromPersonID, byPersonID, batch); err != nil {
			return result, err
		}
		result.Applied += len(batch)
	}
	return result, nil
}

func scanDelegations(rows pgx.Rows) ([]domain.AccountDelegation, error) {
	var result []domain.AccountDelegation
	for rows.Next() {
		var d domain.AccountDelegation
		if err := rows.Scan(
			&d.ID,
			&d.AccountID,
			&d.DelegatedTo,
			&d.DelegatedBy,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
