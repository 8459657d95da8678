package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/xuri/excelize/v2"
)

// export streams a month of attendance as an xlsx workbook.
func (h AttendanceHandler) export(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month format, expected YYYY-MM")
		return
	}
	items, err := h.Repo.ListMonth(r.Context(), month)
	if err != nil {
		writeInternal(w, "failed to fetch attendance", err)
		return
	}

	f, err := buildAttendanceWorkbook(items)
	if err != nil {
		writeInternal(w, "failed to build report", err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, monthStr))
	if err := f.Write(w); err != nil {
		// Headers are out; nothing left to do but log.
		writeInternal(w, "failed to write report", err)
	}
}

func buildAttendanceWorkbook(items []domain.Attendance) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Date", "NIK", "Name", "Position", "Time In", "Time Out", "Status"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for row, a := range items {
		values := []any{
			a.Date.Format(dateLayout),
			a.EmployeeNIK,
			a.EmployeeName,
			a.Position,
			clockOrNil(a.TimeIn),
			clockOrNil(a.TimeOut),
			string(a.Status),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
