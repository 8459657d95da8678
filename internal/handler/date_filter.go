package handler

import (
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseClock combines a time-of-day string ("08:00" or "08:00:00") with
// the attendance date.
func parseClock(value string, date time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	layout := "15:04:05"
	if len(value) == 5 {
		layout = "15:04"
	}
	tod, err := time.Parse(layout, value)
	if err != nil {
		return nil, err
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.Local)
	return &combined, nil
}

func clockOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("15:04:05")
}
