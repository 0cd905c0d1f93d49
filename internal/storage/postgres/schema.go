package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		role TEXT NOT NULL DEFAULT 'user',
		protected BOOLEAN NOT NULL DEFAULT FALSE,
		blocked BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		email TEXT PRIMARY KEY REFERENCES users(email) ON DELETE CASCADE,
		firstName TEXT DEFAULT '',
		lastName TEXT DEFAULT '',
		mobileNumber TEXT DEFAULT '',
		mobileVerified BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		orderNumber TEXT,
		userEmail TEXT NOT NULL,
		fileNames TEXT DEFAULT '',
		printType TEXT NOT NULL,
		sideOption TEXT DEFAULT '',
		spiralBinding BOOLEAN NOT NULL DEFAULT FALSE,
		totalPages INTEGER NOT NULL DEFAULT 0,
		totalCost REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		createdAt TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stationery_products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT DEFAULT '',
		price REAL NOT NULL,
		discount REAL DEFAULT 0,
		images JSONB DEFAULT '[]',
		sku TEXT DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 0,
		createdAt TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id SERIAL PRIMARY KEY,
		userEmail TEXT NOT NULL,
		type TEXT NOT NULL,
		itemId TEXT NOT NULL,
		details JSONB,
		createdAt TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates every table the service needs. Safe to run on every
// startup; statements are idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
