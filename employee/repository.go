package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"goride.io/booking/driver"
	"goride.io/booking/models"
)

var ErrAlreadyAuthorized = errors.New("email is already authorized")

type Repository interface {
	IsAuthorized(ctx context.Context, tx pgx.Tx, email string) (bool, error)
	Add(ctx context.Context, tx pgx.Tx, email string) (*models.AuthorizedEmployee, error)
}

type repository struct {
	conn driver.PostgresPool
}

func NewRepository(conn driver.PostgresPool) Repository {
	return &repository{conn: conn}
}

// NormalizeEmail lowercases and trims an address so allow-list lookups do not
// depend on how the caller typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *repository) IsAuthorized(ctx context.Context, tx pgx.Tx, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM authorized_employees WHERE email = @email)`

	var authorized bool
	row := tx.QueryRow(ctx, query, pgx.NamedArgs{"email": NormalizeEmail(email)})
	if err := row.Scan(&authorized); err != nil {
		return false, fmt.Errorf("failed to check authorization: %w", err)
	}

	return authorized, nil
}

func (r *repository) Add(ctx context.Context, tx pgx.Tx, email string) (*models.AuthorizedEmployee, error) {
	const query = `
    INSERT INTO authorized_employees (email, created_at)
    VALUES (@email, NOW())
    ON CONFLICT (email) DO NOTHING
    RETURNING id, email, created_at
    `

	var employee models.AuthorizedEmployee
	row := tx.QueryRow(ctx, query, pgx.NamedArgs{"email": NormalizeEmail(email)})
	if err := row.Scan(&employee.ID, &employee.Email, &employee.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyAuthorized
		}
		return nil, fmt.Errorf("failed to add authorized employee: %w", err)
	}

	return &employee, nil
}
