package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aduvernay/staffing-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PersonRepository struct {
	pool *pgxpool.Pool
}

func NewPersonRepository(pool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

// Create inserts a new person. A unique-violation on email maps to
// domain.ErrEmailTaken so concurrent registrations with the same email
// resolve to a single winner.
func (r *PersonRepository) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO persons (nom, prenom, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nom, prenom, email, password_hash, created_at`,
		p.Name, p.FirstName, p.Email, p.PasswordHash,
	)

	created, err := scanPerson(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert person: %w", err)
	}
	return created, nil
}

func (r *PersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, nom, prenom, email, password_hash, created_at
		FROM persons WHERE email = $1`,
		email,
	)
	return scanPerson(row)
}

func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, nom, prenom, email, password_hash, created_at
		FROM persons WHERE id = $1`,
		id,
	)
	return scanPerson(row)
}

func scanPerson(row pgx.Row) (*domain.Person, error) {
	var p domain.Person
	err := row.Scan(&p.ID, &p.Name, &p.FirstName, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}
