package service

import (
	"context"
	"time"

	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

// Store interfaces are declared here, on the consumer side, so business
// rules can be exercised without a database. The repository types
// satisfy them.

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	RegisterEmployee(ctx context.Context, e domain.Employee, username, passwordHash string) (*domain.User, *domain.Employee, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeStore interface {
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	GetByNIK(ctx context.Context, nik string) (*domain.Employee, error)
	SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus) error
	Delete(ctx context.Context, id int64) error
}

type AttendanceStore interface {
	Submit(ctx context.Context, p repository.SubmitParams) (*domain.Attendance, bool, error)
	Find(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error)
	SetStatus(ctx context.Context, id int64, status domain.AttendanceStatus) error
}
