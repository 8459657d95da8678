package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/db"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
)

type EmployeeRepository struct {
	DB *db.Postgres
}

func (r EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, nik, name, position, join_date, salary, status, created_at
		FROM employees
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Employee
	for rows.Next() {
		var e domain.Employee
		var status string
		if err := rows.Scan(&e.ID, &e.NIK, &e.Name, &e.Position, &e.JoinDate, &e.Salary, &status, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Status = domain.EmployeeStatus(status)
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r EmployeeRepository) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, nik, name, position, join_date, salary, status, created_at
		FROM employees
		WHERE id = $1
	`, id)
	return scanEmployee(row)
}

func (r EmployeeRepository) GetByNIK(ctx context.Context, nik string) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, nik, name, position, join_date, salary, status, created_at
		FROM employees
		WHERE nik = $1
	`, nik)
	return scanEmployee(row)
}

func (r EmployeeRepository) Create(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO employees (nik, name, position, join_date, salary, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, nik, name, position, join_date, salary, status, created_at
	`, e.NIK, e.Name, e.Position, e.JoinDate, e.Salary, string(e.Status))
	return scanEmployee(row)
}

func (r EmployeeRepository) Update(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE employees
		SET nik=$2, name=$3, position=$4, join_date=$5, salary=$6, status=$7
		WHERE id=$1
		RETURNING id, nik, name, position, join_date, salary, status, created_at
	`, e.ID, e.NIK, e.Name, e.Position, e.JoinDate, e.Salary, string(e.Status))
	return scanEmployee(row)
}

func (r EmployeeRepository) SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE employees SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the employee row. Attendance rows cascade; owning user
// accounts keep their row with employee_id nulled.
func (r EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	var status string
	if err := row.Scan(&e.ID, &e.NIK, &e.Name, &e.Position, &e.JoinDate, &e.Salary, &status, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e.Status = domain.EmployeeStatus(status)
	return &e, nil
}
