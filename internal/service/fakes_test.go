package service

import (
	"context"
	"fmt"
	"time"

	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

// In-memory stores mirroring the repository semantics, including the
// attendance upsert rules.

type fakeEmployees struct {
	byID   map[int64]*domain.Employee
	nextID int64
}

func newFakeEmployees(items ...domain.Employee) *fakeEmployees {
	f := &fakeEmployees{byID: map[int64]*domain.Employee{}, nextID: 1}
	for _, e := range items {
		e := e
		if e.ID == 0 {
			e.ID = f.nextID
		}
		if e.ID >= f.nextID {
			f.nextID = e.ID + 1
		}
		f.byID[e.ID] = &e
	}
	return f
}

func (f *fakeEmployees) Get(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployees) GetByNIK(_ context.Context, nik string) (*domain.Employee, error) {
	for _, e := range f.byID {
		if e.NIK == nik {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEmployees) SetStatus(_ context.Context, id int64, status domain.EmployeeStatus) error {
	e, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeEmployees) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeUsers struct {
	byID      map[int64]*domain.User
	employees *fakeEmployees
	nextID    int64
}

func newFakeUsers(employees *fakeEmployees, items ...domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*domain.User{}, employees: employees, nextID: 1}
	for _, u := range items {
		u := u
		if u.ID == 0 {
			u.ID = f.nextID
		}
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
		f.byID[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) RegisterEmployee(_ context.Context, e domain.Employee, username, passwordHash string) (*domain.User, *domain.Employee, error) {
	e.ID = f.employees.nextID
	e.Status = domain.EmployeeInactive
	f.employees.nextID++
	cpE := e
	f.employees.byID[e.ID] = &cpE

	u := domain.User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         domain.RoleEmployee,
		EmployeeID:   &cpE.ID,
		IsActive:     false,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	cpU := u
	f.byID[u.ID] = &cpU
	return &u, &e, nil
}

func (f *fakeUsers) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeAttendance struct {
	byKey  map[string]*domain.Attendance
	byID   map[int64]*domain.Attendance
	nextID int64
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{byKey: map[string]*domain.Attendance{}, byID: map[int64]*domain.Attendance{}, nextID: 1}
}

func attKey(employeeID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, date.Format("2006-01-02"))
}

func (f *fakeAttendance) Submit(_ context.Context, p repository.SubmitParams) (*domain.Attendance, bool, error) {
	key := attKey(p.EmployeeID, p.Date)
	rec, ok := f.byKey[key]
	if !ok {
		rec = &domain.Attendance{
			ID:         f.nextID,
			EmployeeID: p.EmployeeID,
			Date:       p.Date,
			TimeIn:     p.TimeIn,
			TimeOut:    p.TimeOut,
			ImagePath:  p.ImagePath,
			Status:     domain.AttendancePending,
			CreatedAt:  time.Now(),
		}
		f.nextID++
		f.byKey[key] = rec
		f.byID[rec.ID] = rec
		cp := *rec
		return &cp, true, nil
	}
	if p.TimeIn != nil {
		rec.TimeIn = p.TimeIn
		rec.Status = domain.AttendancePending
	}
	if p.TimeOut != nil {
		rec.TimeOut = p.TimeOut
	}
	if p.ImagePath != nil {
		rec.ImagePath = p.ImagePath
	}
	cp := *rec
	return &cp, false, nil
}

func (f *fakeAttendance) Find(_ context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	rec, ok := f.byKey[attKey(employeeID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeAttendance) SetStatus(_ context.Context, id int64, status domain.AttendanceStatus) error {
	rec, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Status = status
	return nil
}
