package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// ReplacePhase identifies which half of a delete-then-insert replace failed.
type ReplacePhase string

const (
	ReplacePhaseDelete ReplacePhase = "delete"
	ReplacePhaseInsert ReplacePhase = "insert"
)

// ReplaceError reports a failed replace. A failure in the insert phase means
// the person's old rows are already gone: they resolve to "unassigned", not to
// the previous state.
type ReplaceError struct {
	Phase ReplacePhase
	Err   error
}

func (e *ReplaceError) Error() string {
	return fmt.Sprintf("replace assignments: %s phase failed: %v", e.Phase, e.Err)
}

func (e *ReplaceError) Unwrap() error {
	return e.Err
}

// HierarchyRepository handles persistence for hierarchy assignment rows. It
// enforces no business rules; validation is the caller's job.
type HierarchyRepository interface {
	ListAll(ctx context.Context) ([]domain.HierarchyAssignment, error)
	ListForPerson(ctx context.Context, personID string) ([]domain.HierarchyAssignment, error)
	ListByParent(ctx context.Context, parentID string) ([]domain.HierarchyAssignment, error)
	CountByParent(ctx context.Context, parentID string) (int, error)
	ReplaceForPerson(ctx context.Context, personID string, rows []domain.HierarchyAssignment) error
	RemoveForPerson(ctx context.Context, personID string) error
}

type hierarchyRepository struct {
	pool *pgxpool.Pool
}

// NewHierarchyRepository instantiates the repository.
func NewHierarchyRepository(pool *pgxpool.Pool) HierarchyRepository {
	return &hierarchyRepository{pool: pool}
}

const hierarchyColumns = `id, user_id, role_tier, parent_user_id, region_id, custom_label, created_at`

func (r *hierarchyRepository) ListAll(ctx context.Context) ([]domain.HierarchyAssignment, error) {
	query := `SELECT ` + hierarchyColumns + ` FROM hierarchy_assignments ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *hierarchyRepository) ListForPerson(ctx context.Context, personID string) ([]domain.HierarchyAssignment, error) {
	query := `SELECT ` + hierarchyColumns + ` FROM hierarchy_assignments WHERE user_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *hierarchyRepository) ListByParent(ctx context.Context, parentID string) ([]domain.HierarchyAssignment, error) {
	query := `SELECT ` + hierarchyColumns + ` FROM hierarchy_assignments WHERE parent_user_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *hierarchyRepository) CountByParent(ctx context.Context, parentID string) (int, error) {
	const query = `SELECT COUNT(DISTINCT user_id) FROM hierarchy_assignments WHERE parent_user_id=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, parentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceForPerson deletes every row for the person and inserts the provided
// ones. The two steps are separate statements with no transaction around them,
// matching the backing store's capabilities: a failure after the delete leaves
// the person unassigned.
func (r *hierarchyRepository) ReplaceForPerson(ctx context.Context, personID string, rows []domain.HierarchyAssignment) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM hierarchy_assignments WHERE user_id=$1`, personID); err != nil {
		return &ReplaceError{Phase: ReplacePhaseDelete, Err: err}
	}

	const insert = `
        INSERT INTO hierarchy_assignments (user_id, role_tier, parent_user_id, region_id, custom_label)
        VALUES ($1,$2,$3,$4,$5)`
	for _, row := range rows {
		if _, err := r.pool.Exec(ctx, insert,
			personID,
			row.Tier,
			row.ParentID,
			row.RegionID,
			row.CustomLabel,
		); err != nil {
			return &ReplaceError{Phase: ReplacePhaseInsert, Err: err}
		}
	}
	return nil
}

func (r *hierarchyRepository) RemoveForPerson(ctx context.Context, personID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM hierarchy_assignments WHERE user_id=$1`, personID)
	return err
}

func scanAssignments(rows pgx.Rows) ([]domain.HierarchyAssignment, error) {
	var result []domain.HierarchyAssignment
	for rows.Next() {
		var a domain.HierarchyAssignment
		if err := rows.Scan(
			&a.ID,
			&a.PersonID,
			&a.Tier,
			&a.ParentID,
			&a.RegionID,
			&a.CustomLabel,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
