package service

import (
	"context"
	"errors"
	"time"

	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

var (
	ErrNothingSubmitted   = errors.New("time_in or time_out is required")
	ErrClockOutNotAllowed = errors.New("clock-out requires an approved clock-in for today")
	ErrInvalidStatus      = errors.New("status must be approved or rejected")
)

// AttendanceService owns the daily record lifecycle: one row per
// employee per date, created pending on clock-in, reset to pending on
// re-clock-in, closed by an approved clock-out.
type AttendanceService struct {
	Attendance AttendanceStore
	Employees  EmployeeStore
}

type SubmitInput struct {
	EmployeeID int64
	Date       time.Time // zero value means today
	TimeIn     *time.Time
	TimeOut    *time.Time
	ImagePath  *string
}

// Submit records a clock-in or clock-out. The returned bool reports
// whether a new record was created rather than an existing one updated.
func (s AttendanceService) Submit(ctx context.Context, in SubmitInput) (*domain.Attendance, bool, error) {
	if in.TimeIn == nil && in.TimeOut == nil {
		return nil, false, ErrNothingSubmitted
	}
	if _, err := s.Employees.Get(ctx, in.EmployeeID); err != nil {
		return nil, false, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	// A clock-out on its own only closes a day that was clocked in and
	// approved; it can never open a record of its own.
	if in.TimeIn == nil {
		existing, err := s.Attendance.Find(ctx, in.EmployeeID, in.Date)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, false, ErrClockOutNotAllowed
			}
			return nil, false, err
		}
		if !domain.CanClockOut(existing) {
			return nil, false, ErrClockOutNotAllowed
		}
	}

	return s.Attendance.Submit(ctx, repository.SubmitParams{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		TimeIn:     in.TimeIn,
		TimeOut:    in.TimeOut,
		ImagePath:  in.ImagePath,
	})
}

// SetStatus applies an admin approval decision. Only approved and
// rejected pass; pending is reachable solely through re-clock-in.
func (s AttendanceService) SetStatus(ctx context.Context, id int64, status domain.AttendanceStatus) error {
	if !domain.ValidDecision(status) {
		return ErrInvalidStatus
	}
	return s.Attendance.SetStatus(ctx, id, status)
}

// Today returns the employee's record for the current date, if any, and
// the gate predicates derived from it.
func (s AttendanceService) Today(ctx context.Context, employeeID int64) (*domain.Attendance, bool, bool, error) {
	rec, err := s.Attendance.Find(ctx, employeeID, time.Now())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, false, err
	}
	if errors.Is(err, repository.ErrNotFound) {
		rec = nil
	}
	return rec, domain.CanClockIn(rec), domain.CanClockOut(rec), nil
}
