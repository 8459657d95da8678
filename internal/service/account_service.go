package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

// AccountService drives the account approval lifecycle an admin runs
// over self-registered employees.
type AccountService struct {
	Users     UserStore
	Employees EmployeeStore
	Logger    *slog.Logger
}

// Approve activates the account and its linked employee record.
func (s AccountService) Approve(ctx context.Context, id int64) error {
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Users.SetActive(ctx, id, true); err != nil {
		return err
	}
	if user.EmployeeID != nil {
		if err := s.Employees.SetStatus(ctx, *user.EmployeeID, domain.EmployeeActive); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	s.Logger.Info("user approved", "user_id", id)
	return nil
}

// Reject deactivates the account; the employee record stays inactive.
func (s AccountService) Reject(ctx context.Context, id int64) error {
	if err := s.Users.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.Logger.Info("user rejected", "user_id", id)
	return nil
}

// Delete removes the account and, when one is linked, its employee
// record. Attendance rows follow the employee through the cascade.
func (s AccountService) Delete(ctx context.Context, id int64) error {
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}
	if user.EmployeeID != nil {
		if err := s.Employees.Delete(ctx, *user.EmployeeID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	s.Logger.Info("user deleted", "user_id", id)
	return nil
}
