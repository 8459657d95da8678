package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id bigserial PRIMARY KEY,
		nik text NOT NULL UNIQUE,
		name text NOT NULL,
		position text NOT NULL,
		join_date date NOT NULL,
		salary bigint NOT NULL DEFAULT 0,
		status text NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive')),
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id bigserial PRIMARY KEY,
		username text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		role text NOT NULL DEFAULT 'employee' CHECK (role IN ('admin','employee')),
		employee_id bigint REFERENCES employees(id) ON DELETE SET NULL,
		is_active boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	// The unique pair constraint is what makes concurrent clock-ins for
	// the same employee and day converge on a single row.
	`CREATE TABLE IF NOT EXISTS attendance (
		id bigserial PRIMARY KEY,
		employee_id bigint NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		attendance_date date NOT NULL,
		time_in timestamptz,
		time_out timestamptz,
		image_path text,
		status text NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected')),
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (employee_id, attendance_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (attendance_date)`,
	`CREATE INDEX IF NOT EXISTS idx_users_is_active ON users (is_active)`,
}

// Migrate creates the schema when missing and seeds the default admin
// account (admin / admin123) the first time up.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return p.seedAdmin(ctx)
}

func (p *Postgres) seedAdmin(ctx context.Context) error {
	var exists bool
	err := p.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = 'admin')`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = p.Pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, role, is_active)
		VALUES ('admin', $1, 'admin', TRUE)
	`, string(hash))
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
