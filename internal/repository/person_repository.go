package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// PersonRepository handles reads against the person directory.
type PersonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
	ListAll(ctx context.Context) ([]domain.Person, error)
	ListAdmins(ctx context.Context) ([]domain.Person, error)
}

type personRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository instantiates the repository.
func NewPersonRepository(pool *pgxpool.Pool) PersonRepository {
	return &personRepository{pool: pool}
}

const personColumns = `id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

func (r *personRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *personRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *personRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Person, error) {
	var p domain.Person
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.PasswordHash,
		&p.IsAdmin,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personRepository) ListAll(ctx context.Context) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPersons(rows)
}

func (r *personRepository) ListAdmins(ctx context.Context) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE is_admin=TRUE ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPersons(rows)
}

func scanPersons(rows pgx.Rows) ([]domain.Person, error) {
	var result []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.ID,
			&p.FirstName,
			&p.LastName,
			&p.Email,
			&p.PasswordHash,
			&p.IsAdmin,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
