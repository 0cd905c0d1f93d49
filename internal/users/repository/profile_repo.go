package repository

import (
	"context"
	"database/sql"

	"github.com/mvps-print/printshop-backend/internal/users/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert writes the full profile row. Callers must pass a complete merged
// record; unsupplied fields would otherwise be blanked (full-replace
// semantics, matching the API contract).
func (r *ProfileRepository) Upsert(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles(email, firstName, lastName, mobileNumber, mobileVerified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			firstName = EXCLUDED.firstName,
			lastName = EXCLUDED.lastName,
			mobileNumber = EXCLUDED.mobileNumber,
			mobileVerified = EXCLUDED.mobileVerified`,
		p.Email, p.FirstName, p.LastName, p.MobileNumber, p.MobileVerified)
	return err
}

// Get returns the profile joined with the user's blocked flag, or
// domain.ErrProfileMissing.
func (r *ProfileRepository) Get(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT p.email, p.firstName, p.lastName, p.mobileNumber, p.mobileVerified, u.blocked
		FROM profiles p
		JOIN users u ON p.email = u.email
		WHERE p.email = $1`, email).
		Scan(&p.Email, &p.FirstName, &p.LastName, &p.MobileNumber, &p.MobileVerified, &p.Blocked)
	if err == sql.ErrNoRows {
		return nil, domain.ErrProfileMissing
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) SetMobileVerified(ctx context.Context, email string, verified bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET mobileVerified = $1 WHERE email = $2`, verified, email)
	return err
}
