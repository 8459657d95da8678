package domain

import "time"

// Enumerations
const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"

	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"

	AttendancePending  AttendanceStatus = "pending"
	AttendanceApproved AttendanceStatus = "approved"
	AttendanceRejected AttendanceStatus = "rejected"
)

type UserRole string
type EmployeeStatus string
type AttendanceStatus string

// ValidRole reports whether r is a role an account may hold.
func ValidRole(r UserRole) bool {
	return r == RoleAdmin || r == RoleEmployee
}

// ValidDecision reports whether s is a status an admin may set on an
// attendance record. "pending" is reachable only through re-clock-in.
func ValidDecision(s AttendanceStatus) bool {
	return s == AttendanceApproved || s == AttendanceRejected
}

type Employee struct {
	ID        int64
	NIK       string
	Name      string
	Position  string
	JoinDate  time.Time
	Salary    int64
	Status    EmployeeStatus
	CreatedAt time.Time
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         UserRole
	EmployeeID   *int64
	IsActive     bool
	CreatedAt    time.Time

	// Joined for admin listings.
	EmployeeName string
	EmployeeNIK  string
}

type Attendance struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	TimeIn     *time.Time
	TimeOut    *time.Time
	ImagePath  *string
	Status     AttendanceStatus
	CreatedAt  time.Time

	// Joined for daily listings.
	EmployeeName string
	EmployeeNIK  string
	Position     string
}
