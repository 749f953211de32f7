package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/projectpulse/pulseauth/users"
)

var _ users.UserRepo = (*Repository)(nil)

// Repository is a Postgres-backed users.UserRepo. Email comparisons use
// ILIKE so lookups stay case-insensitive.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Open connects to Postgres through the pgx stdlib driver.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

const userColumns = `id, email, password_hash, first_name, last_name, phone_number, role, is_active, created_at, last_login_at`

func (r *Repository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email ILIKE $1 AND NOT is_deleted`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *Repository) FindByID(ctx context.Context, id int) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT is_deleted`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) IsEmailUnique(ctx context.Context, email string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email ILIKE $1 AND id <> $2 AND NOT is_deleted`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count == 0, nil
}

func (r *Repository) Insert(ctx context.Context, user *users.User) (*users.User, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone_number, role, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.PhoneNumber, string(user.Role), user.IsActive, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1 WHERE id = $2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE NOT is_deleted`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *Repository) scanUser(row *sql.Row) (*users.User, error) {
	u := &users.User{}
	var role string
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &role, &u.IsActive, &u.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Role = users.Role(role)
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}
