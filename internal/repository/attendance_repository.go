package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/db"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

// SubmitParams carries one clock-in/clock-out submission. Nil fields
// never overwrite what a previous submission stored.
type SubmitParams struct {
	EmployeeID int64
	Date       time.Time
	TimeIn     *time.Time
	TimeOut    *time.Time
	ImagePath  *string
}

// Submit inserts or updates the day's record in a single statement. The
// unique (employee_id, attendance_date) pair makes racing submissions
// converge on one row. A submission carrying time_in drops the record
// back to pending; a time_out-only submission leaves status alone.
func (r AttendanceRepository) Submit(ctx context.Context, p SubmitParams) (*domain.Attendance, bool, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO attendance (employee_id, attendance_date, time_in, time_out, image_path, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		ON CONFLICT (employee_id, attendance_date) DO UPDATE SET
			time_in    = COALESCE(EXCLUDED.time_in, attendance.time_in),
			time_out   = COALESCE(EXCLUDED.time_out, attendance.time_out),
			image_path = COALESCE(EXCLUDED.image_path, attendance.image_path),
			status     = CASE WHEN EXCLUDED.time_in IS NOT NULL THEN 'pending' ELSE attendance.status END
		RETURNING id, employee_id, attendance_date, time_in, time_out, image_path, status, created_at, (xmax = 0)
	`, p.EmployeeID, p.Date.Format(dateLayout), p.TimeIn, p.TimeOut, p.ImagePath)

	var a domain.Attendance
	var status string
	var created bool
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.TimeIn, &a.TimeOut, &a.ImagePath, &status, &a.CreatedAt, &created); err != nil {
		return nil, false, err
	}
	a.Status = domain.AttendanceStatus(status)
	return &a, created, nil
}

func (r AttendanceRepository) Find(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, employee_id, attendance_date, time_in, time_out, image_path, status, created_at
		FROM attendance
		WHERE employee_id = $1 AND attendance_date = $2
	`, employeeID, date.Format(dateLayout))
	var a domain.Attendance
	var status string
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.TimeIn, &a.TimeOut, &a.ImagePath, &status, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Status = domain.AttendanceStatus(status)
	return &a, nil
}

func (r AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT a.id, a.employee_id, a.attendance_date, a.time_in, a.time_out, a.image_path, a.status, a.created_at,
		       e.name, e.nik, e.position
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.attendance_date = $1
		ORDER BY a.time_in DESC NULLS LAST
	`, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows, true)
}

func (r AttendanceRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, employee_id, attendance_date, time_in, time_out, image_path, status, created_at
		FROM attendance
		WHERE employee_id = $1
		ORDER BY attendance_date DESC
	`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows, false)
}

// ListMonth returns all records within the month starting at start,
// joined with employee identity, for reporting.
func (r AttendanceRepository) ListMonth(ctx context.Context, start time.Time) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT a.id, a.employee_id, a.attendance_date, a.time_in, a.time_out, a.image_path, a.status, a.created_at,
		       e.name, e.nik, e.position
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.attendance_date >= $1
		  AND a.attendance_date < $1::date + interval '1 month'
		ORDER BY a.attendance_date ASC, e.name ASC
	`, start.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows, true)
}

func (r AttendanceRepository) SetStatus(ctx context.Context, id int64, status domain.AttendanceStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE attendance SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const dateLayout = "2006-01-02"

func collectAttendance(rows pgx.Rows, joined bool) ([]domain.Attendance, error) {
	var items []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		var status string
		dest := []any{&a.ID, &a.EmployeeID, &a.Date, &a.TimeIn, &a.TimeOut, &a.ImagePath, &status, &a.CreatedAt}
		if joined {
			dest = append(dest, &a.EmployeeName, &a.EmployeeNIK, &a.Position)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		a.Status = domain.AttendanceStatus(status)
		items = append(items, a)
	}
	return items, rows.Err()
}
