package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/riqqqq/Human-Resource-Management/internal/db"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
)

type UserRepository struct {
	DB *db.Postgres
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, employee_id, is_active, created_at
		FROM users
		WHERE username = $1
	`, username)
	return scanUser(row)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, employee_id, is_active, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// RegisterEmployee creates the inactive employee record and its linked
// inactive account in one transaction, so a failure on the second insert
// leaves no orphaned employee behind.
func (r UserRepository) RegisterEmployee(ctx context.Context, e domain.Employee, username, passwordHash string) (*domain.User, *domain.Employee, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var emp domain.Employee
	var empStatus string
	err = tx.QueryRow(ctx, `
		INSERT INTO employees (nik, name, position, join_date, salary, status)
		VALUES ($1,$2,$3,$4,$5,'inactive')
		RETURNING id, nik, name, position, join_date, salary, status, created_at
	`, e.NIK, e.Name, e.Position, e.JoinDate, e.Salary).Scan(
		&emp.ID, &emp.NIK, &emp.Name, &emp.Position, &emp.JoinDate, &emp.Salary, &empStatus, &emp.CreatedAt)
	if err != nil {
		return nil, nil, err
	}
	emp.Status = domain.EmployeeStatus(empStatus)

	var u domain.User
	var role string
	var employeeID pgtype.Int8
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role, employee_id, is_active)
		VALUES ($1,$2,'employee',$3,FALSE)
		RETURNING id, username, password_hash, role, employee_id, is_active, created_at
	`, username, passwordHash, emp.ID).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &role, &employeeID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, nil, err
	}
	u.Role = domain.UserRole(role)
	if employeeID.Valid {
		u.EmployeeID = &employeeID.Int64
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &u, &emp, nil
}

func (r UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, ``)
}

func (r UserRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `WHERE u.is_active = FALSE`)
}

func (r UserRepository) list(ctx context.Context, where string) ([]domain.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT u.id, u.username, u.role, u.employee_id, u.is_active, u.created_at,
		       COALESCE(e.name, ''), COALESCE(e.nik, '')
		FROM users u
		LEFT JOIN employees e ON u.employee_id = e.id
		`+where+`
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.User
	for rows.Next() {
		var u domain.User
		var role string
		var employeeID pgtype.Int8
		var createdAt time.Time
		if err := rows.Scan(&u.ID, &u.Username, &role, &employeeID, &u.IsActive, &createdAt, &u.EmployeeName, &u.EmployeeNIK); err != nil {
			return nil, err
		}
		u.Role = domain.UserRole(role)
		u.CreatedAt = createdAt
		if employeeID.Valid {
			u.EmployeeID = &employeeID.Int64
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

func (r UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE users SET is_active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	var employeeID pgtype.Int8
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &employeeID, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Role = domain.UserRole(role)
	if employeeID.Valid {
		u.EmployeeID = &employeeID.Int64
	}
	return &u, nil
}

var ErrNotFound = errors.New("not found")

// IsDuplicate reports whether err is a unique-key violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}
