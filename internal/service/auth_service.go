package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountPending     = errors.New("account is pending approval")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNIKTaken           = errors.New("employee with this NIK already exists")
)

type AuthService struct {
	Secret    string
	TokenTTL  time.Duration
	Users     UserStore
	Employees EmployeeStore
	Logger    *slog.Logger
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	NIK      string
	Position string
}

type RegisterResult struct {
	User     domain.User
	Employee domain.Employee
}

// Login verifies the credential pair and issues a signed session token.
// Unknown usernames and wrong passwords are indistinguishable; accounts
// awaiting approval surface as a distinct error.
func (s AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountPending
	}
	return s.issueToken(user)
}

// Register self-registers an employee: inactive employee record plus an
// inactive linked account, created together. Username and NIK are
// checked before anything is written.
func (s AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Employees.GetByNIK(ctx, in.NIK); err == nil {
		return nil, ErrNIKTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, employee, err := s.Users.RegisterEmployee(ctx, domain.Employee{
		NIK:      in.NIK,
		Name:     in.Name,
		Position: in.Position,
		JoinDate: time.Now(),
		Status:   domain.EmployeeInactive,
	}, in.Username, string(hash))
	if err != nil {
		// Unique constraints backstop the pre-checks under concurrency.
		if repository.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	s.Logger.Info("employee registered", "username", user.Username, "nik", employee.NIK)
	return &RegisterResult{User: *user, Employee: *employee}, nil
}

func (s AuthService) issueToken(user *domain.User) (*LoginResult, error) {
	now := time.Now()
	exp := now.Add(s.TokenTTL)

	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"username":   user.Username,
		"role":       user.Role,
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        exp.Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = *user.EmployeeID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: *user}, nil
}
