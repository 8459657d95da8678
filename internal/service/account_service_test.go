package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

func newAccountService(users *fakeUsers, employees *fakeEmployees) AccountService {
	return AccountService{
		Users:     users,
		Employees: employees,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestApproveActivatesUserAndEmployee(t *testing.T) {
	employees := newFakeEmployees(domain.Employee{ID: 3, NIK: "003", Name: "Siti", Status: domain.EmployeeInactive})
	empID := int64(3)
	users := newFakeUsers(employees, domain.User{ID: 5, Username: "siti", Role: domain.RoleEmployee, EmployeeID: &empID})
	svc := newAccountService(users, employees)

	if err := svc.Approve(context.Background(), 5); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !users.byID[5].IsActive {
		t.Fatal("user not activated")
	}
	if employees.byID[3].Status != domain.EmployeeActive {
		t.Fatal("linked employee not activated")
	}
}

func TestApproveMissingUser(t *testing.T) {
	employees := newFakeEmployees()
	svc := newAccountService(newFakeUsers(employees), employees)
	if err := svc.Approve(context.Background(), 99); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectDeactivates(t *testing.T) {
	employees := newFakeEmployees()
	users := newFakeUsers(employees, domain.User{ID: 5, Username: "siti", Role: domain.RoleEmployee, IsActive: true})
	svc := newAccountService(users, employees)

	if err := svc.Reject(context.Background(), 5); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if users.byID[5].IsActive {
		t.Fatal("user still active after reject")
	}
	if err := svc.Reject(context.Background(), 99); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesUserAndEmployee(t *testing.T) {
	employees := newFakeEmployees(domain.Employee{ID: 3, NIK: "003", Name: "Siti"})
	empID := int64(3)
	users := newFakeUsers(employees, domain.User{ID: 5, Username: "siti", Role: domain.RoleEmployee, EmployeeID: &empID})
	svc := newAccountService(users, employees)

	if err := svc.Delete(context.Background(), 5); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := users.byID[5]; ok {
		t.Fatal("user row still present")
	}
	if _, ok := employees.byID[3]; ok {
		t.Fatal("linked employee row still present")
	}
}

func TestDeleteUserWithoutEmployee(t *testing.T) {
	employees := newFakeEmployees()
	users := newFakeUsers(employees, domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin, IsActive: true})
	svc := newAccountService(users, employees)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := users.byID[1]; ok {
		t.Fatal("user row still present")
	}
}
