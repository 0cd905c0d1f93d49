package repository

import (
	"context"
	"database/sql"

	"github.com/mvps-print/printshop-backend/internal/users/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetRole returns the stored role for an email, or domain.ErrNotFound.
func (r *UserRepository) GetRole(ctx context.Context, email string) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM users WHERE email = $1`, email).Scan(&role)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (r *UserRepository) Insert(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(email, role, protected, blocked) VALUES ($1, $2, $3, $4)`,
		u.Email, u.Role, u.Protected, u.Blocked)
	return err
}

func (r *UserRepository) UpdateRole(ctx context.Context, email, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $1 WHERE email = $2`, role, email)
	return err
}

func (r *UserRepository) SetBlocked(ctx context.Context, email string, blocked bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET blocked = $1 WHERE email = $2`, blocked, email)
	return err
}

func (r *UserRepository) IsBlocked(ctx context.Context, email string) (bool, error) {
	var blocked bool
	err := r.db.QueryRowContext(ctx,
		`SELECT blocked FROM users WHERE email = $1`, email).Scan(&blocked)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return blocked, nil
}

func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	var e string
	err := r.db.QueryRowContext(ctx,
		`SELECT email FROM users WHERE email = $1`, email).Scan(&e)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE email = $1`, email)
	return err
}

// List returns every user LEFT JOINed with its profile, ordered by email.
func (r *UserRepository) List(ctx context.Context) ([]domain.UserListing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			u.email,
			u.role,
			u.blocked,
			COALESCE(p.mobileNumber, ''),
			COALESCE(p.firstName, ''),
			COALESCE(p.lastName, ''),
			COALESCE(p.mobileVerified, FALSE)
		FROM users u
		LEFT JOIN profiles p ON u.email = p.email
		ORDER BY u.email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.UserListing, 0, 16)
	for rows.Next() {
		var u domain.UserListing
		if err := rows.Scan(&u.Email, &u.Role, &u.Blocked, &u.MobileNumber,
			&u.FirstName, &u.LastName, &u.MobileVerified); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
