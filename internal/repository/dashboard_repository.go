package repository

import (
	"context"
	"time"

	"github.com/riqqqq/Human-Resource-Management/internal/db"
)

type DashboardRepository struct {
	DB *db.Postgres
}

type DashboardStats struct {
	TotalEmployees int64
	PresentToday   int64
	AbsentToday    int64
}

func (r DashboardRepository) Stats(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	today := time.Now().Format(dateLayout)
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE status = 'active') AS total_employees,
			(SELECT COUNT(DISTINCT employee_id) FROM attendance
			  WHERE attendance_date = $1 AND status = 'approved') AS present_today
	`, today).Scan(&s.TotalEmployees, &s.PresentToday)
	if err != nil {
		return s, err
	}
	s.AbsentToday = s.TotalEmployees - s.PresentToday
	if s.AbsentToday < 0 {
		s.AbsentToday = 0
	}
	return s, nil
}
