package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
	"github.com/riqqqq/Human-Resource-Management/internal/service"
)

// Minimal in-memory stores for exercising the handler without Postgres.

type memEmployees struct {
	byID map[int64]domain.Employee
}

func (m memEmployees) Get(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m memEmployees) GetByNIK(context.Context, string) (*domain.Employee, error) {
	return nil, repository.ErrNotFound
}
func (m memEmployees) SetStatus(context.Context, int64, domain.EmployeeStatus) error { return nil }
func (m memEmployees) Delete(context.Context, int64) error                           { return nil }

type memAttendance struct {
	byKey  map[string]*domain.Attendance
	byID   map[int64]*domain.Attendance
	nextID int64
}

func newMemAttendance() *memAttendance {
	return &memAttendance{byKey: map[string]*domain.Attendance{}, byID: map[int64]*domain.Attendance{}, nextID: 1}
}

func (m *memAttendance) key(employeeID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, date.Format("2006-01-02"))
}

func (m *memAttendance) Submit(_ context.Context, p repository.SubmitParams) (*domain.Attendance, bool, error) {
	key := m.key(p.EmployeeID, p.Date)
	rec, ok := m.byKey[key]
	if !ok {
		rec = &domain.Attendance{
			ID:         m.nextID,
			EmployeeID: p.EmployeeID,
			Date:       p.Date,
			TimeIn:     p.TimeIn,
			TimeOut:    p.TimeOut,
			ImagePath:  p.ImagePath,
			Status:     domain.AttendancePending,
		}
		m.nextID++
		m.byKey[key] = rec
		m.byID[rec.ID] = rec
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

func (m *memAttendance) Find(_ context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	rec, ok := m.byKey[m.key(employeeID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memAttendance) SetStatus(_ context.Context, id int64, status domain.AttendanceStatus) error {
	rec, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.Status = status
	return nil
}

func newTestRouter(t *testing.T, store *memAttendance) (chi.Router, string) {
	t.Helper()
	dir := t.TempDir()
	h := AttendanceHandler{
		Service: service.AttendanceService{
			Attendance: store,
			Employees:  memEmployees{byID: map[int64]domain.Employee{1: {ID: 1, NIK: "001", Name: "Budi"}}},
		},
		Photos: PhotoStore{Dir: dir, MaxBytes: 5 << 20},
	}
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterAdminRoutes(r)
	return r, dir
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rr.Body.String())
	}
	return resp
}

func TestSubmitMultipartWithPhoto(t *testing.T) {
	store := newMemAttendance()
	router, dir := newTestRouter(t, store)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("employee_id", "1")
	_ = mw.WriteField("date", "2024-01-10")
	_ = mw.WriteField("time_in", "08:00")
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="photo"; filename="proof.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, _ := mw.CreatePart(hdr)
	_, _ = part.Write([]byte("jpeg-bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/attendance", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	resp := decodeEnvelope(t, rr)
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Message)
	}
	data := resp.Data.(map[string]any)
	if data["status"] != "pending" {
		t.Fatalf("status = %v, want pending", data["status"])
	}
	imagePath, _ := data["image_path"].(string)
	if !strings.HasPrefix(imagePath, "/uploads/attendance-") {
		t.Fatalf("image_path = %q", imagePath)
	}
	onDisk := filepath.Join(dir, strings.TrimPrefix(imagePath, "/uploads/"))
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("photo not written: %v", err)
	}
}

func TestSubmitRejectsNonImagePhoto(t *testing.T) {
	store := newMemAttendance()
	router, _ := newTestRouter(t, store)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("employee_id", "1")
	_ = mw.WriteField("time_in", "08:00")
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="photo"; filename="proof.pdf"`)
	hdr.Set("Content-Type", "application/pdf")
	part, _ := mw.CreatePart(hdr)
	_, _ = part.Write([]byte("%PDF-"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/attendance", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if len(store.byID) != 0 {
		t.Fatal("rejected upload must not create a record")
	}
}

func TestSubmitJSONLifecycle(t *testing.T) {
	store := newMemAttendance()
	router, _ := newTestRouter(t, store)

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	rr := post(`{"employee_id":1,"date":"2024-01-10","time_in":"08:00"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("clock-in status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}

	// Clock-out before approval is refused.
	rr = post(`{"employee_id":1,"date":"2024-01-10","time_out":"17:00"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("early clock-out status = %d, want 400", rr.Code)
	}

	// Approve, then clock out on the same record.
	req := httptest.NewRequest(http.MethodPut, "/attendance/1/status", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("approve status = %d (%s)", rr.Code, rr.Body.String())
	}

	rr = post(`{"employee_id":1,"date":"2024-01-10","time_out":"17:00"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("clock-out status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	resp := decodeEnvelope(t, rr)
	data := resp.Data.(map[string]any)
	if data["status"] != "approved" {
		t.Fatalf("clock-out changed status to %v", data["status"])
	}
	if data["time_out"] != "17:00:00" {
		t.Fatalf("time_out = %v", data["time_out"])
	}
	if len(store.byID) != 1 {
		t.Fatalf("got %d records, want 1", len(store.byID))
	}
}

func TestSubmitUnknownEmployee(t *testing.T) {
	store := newMemAttendance()
	router, _ := newTestRouter(t, store)
	req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(`{"employee_id":42,"time_in":"08:00"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestSetStatusValidation(t *testing.T) {
	store := newMemAttendance()
	router, _ := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodPut, "/attendance/1/status", strings.NewReader(`{"status":"pending"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("pending status = %d, want 400", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/attendance/99/status", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing record status = %d, want 404", rr.Code)
	}
}
