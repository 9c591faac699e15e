package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendance struct {
	got   attendance.PunchRequest
	photo []byte
}

func (s *stubAttendance) RecordPunch(_ context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	s.got = req
	if req.File != nil {
		s.photo, _ = io.ReadAll(req.File)
	}
	return attendance.RecordResponse{Date: "2024-05-15", Type: attendance.PunchType(req.Type), Time: req.Time}, nil
}

func (s *stubAttendance) Today(context.Context) (attendance.DailySummaryResponse, error) {
	return attendance.DailySummaryResponse{}, nil
}

func (s *stubAttendance) Day(context.Context, string) (attendance.DailySummaryResponse, error) {
	return attendance.DailySummaryResponse{}, nil
}

func (s *stubAttendance) List(context.Context, attendance.RangeRequest) ([]attendance.RecordResponse, error) {
	return []attendance.RecordResponse{}, nil
}

type stubReport struct {
	export report.ExportRequest
	err    error
}

func (s *stubReport) GeneratePeriodReport(context.Context, report.PeriodReportRequest) (report.PeriodReportResponse, error) {
	return report.PeriodReportResponse{}, s.err
}

func (s *stubReport) History(context.Context, report.HistoryRequest) (report.PeriodReportResponse, error) {
	return report.PeriodReportResponse{}, s.err
}

func (s *stubReport) GenerateMonthlyReport(context.Context, report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	return report.MonthlyReportResponse{}, s.err
}

func (s *stubReport) ExportMonthlyReport(_ context.Context, req report.ExportRequest) (report.ExportFile, error) {
	s.export = req
	if s.err != nil {
		return report.ExportFile{}, s.err
	}
	return report.ExportFile{
		Filename:    "espelho_ponto_março_2024.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.3"),
	}, nil
}

type stubHoliday struct{}

func (stubHoliday) List(context.Context, holiday.ListRequest) (holiday.ListResponse, error) {
	return holiday.ListResponse{}, nil
}

func (stubHoliday) Get(_ context.Context, date string) (holiday.HolidayResponse, error) {
	if date == "2024-12-25" {
		return holiday.HolidayResponse{Date: date, Name: "Natal"}, nil
	}
	return holiday.HolidayResponse{}, holiday.ErrHolidayNotFound
}

func (stubHoliday) Refresh(context.Context) error { return nil }

type stubSettings struct {
	saved *settings.SaveRequest
}

func (s *stubSettings) Get(context.Context) (settings.ProfileResponse, error) {
	return settings.ProfileResponse{Name: "Maria"}, nil
}

func (s *stubSettings) Save(_ context.Context, req settings.SaveRequest) (settings.ProfileResponse, error) {
	s.saved = &req
	return settings.ProfileResponse{Name: req.Name}, nil
}

func (s *stubSettings) Profile(context.Context) (settings.Profile, error) {
	return settings.Profile{}, nil
}

func (s *stubSettings) Snapshot(context.Context) (attendance.EmployeeSnapshot, error) {
	return attendance.EmployeeSnapshot{}, nil
}

type stubLocation struct{}

func (stubLocation) Resolve(context.Context, location.ResolveRequest) (location.LocationResponse, error) {
	return location.LocationResponse{}, nil
}

func (stubLocation) Current(context.Context) (location.LocationResponse, error) {
	return location.LocationResponse{}, location.ErrLocationNotFound
}

func (stubLocation) Snapshot(context.Context) *location.Location { return nil }

type stubBackup struct {
	imported []byte
}

func (s *stubBackup) Export(context.Context) (backup.Snapshot, error) {
	return backup.Snapshot{
		PontoRecords: []attendance.Record{},
		LastBackup:   time.Date(2024, time.May, 15, 13, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubBackup) Import(_ context.Context, raw []byte) (backup.ImportResult, error) {
	s.imported = raw
	return backup.ImportResult{Records: 1}, nil
}

func (s *stubBackup) MaybeBackup(context.Context) error { return nil }

type stubAuth struct {
	jwtService jwt.Service
}

func (s stubAuth) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.PIN != "1234" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := s.jwtService.GenerateAccessToken("kiosk-admin", auth.RoleAdmin)
	return auth.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp}, err
}

func (s stubAuth) Logout(context.Context, string) error { return nil }

type testServer struct {
	router     *chi.Mux
	jwtService jwt.Service
	hub        *sse.Hub
	attendance *stubAttendance
	report     *stubReport
	settings   *stubSettings
	backup     *stubBackup
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret", "15m")
	hub := sse.NewHub()
	ts := testServer{
		jwtService: jwtService,
		hub:        hub,
		attendance: &stubAttendance{},
		report:     &stubReport{},
		settings:   &stubSettings{},
		backup:     &stubBackup{},
	}
	ts.router = NewRouter(RouterConfig{Env: "test", Version: "test"}, jwtService, Handlers{
		Auth:       NewAuthHandler(stubAuth{jwtService: jwtService}),
		Attendance: NewAttendanceHandler(ts.attendance),
		Report:     NewReportHandler(ts.report),
		Holiday:    NewHolidayHandler(stubHoliday{}),
		Settings:   NewSettingsHandler(ts.settings),
		Location:   NewLocationHandler(stubLocation{}),
		Backup:     NewBackupHandler(ts.backup, time.FixedZone("BRT", -3*60*60)),
		Events:     NewEventHandler(hub),
	})
	return ts
}

func (ts testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts testServer) token(t *testing.T, role string) string {
	t.Helper()
	token, _, err := ts.jwtService.GenerateAccessToken("kiosk-admin", role)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRecordPunch_JSON(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches",
		strings.NewReader(`{"type":"check_in","time":"08:00","photo":"uploads/photos/a.jpg"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := ts.do(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "check_in", ts.attendance.got.Type)
	assert.Equal(t, "08:00", ts.attendance.got.Time)
	assert.Equal(t, "uploads/photos/a.jpg", ts.attendance.got.Photo)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Punch recorded successfully", body["message"])
}

func TestRecordPunch_Multipart(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("data", `{"type":"check_out","time":"17:00"}`))
	part, err := mw.CreateFormFile("photo", "selfie.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := ts.do(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "check_out", ts.attendance.got.Type)
	require.NotNil(t, ts.attendance.got.FileHeader)
	assert.Equal(t, "selfie.jpg", ts.attendance.got.FileHeader.Filename)
	assert.Equal(t, "jpeg-bytes", string(ts.attendance.photo))
}

func TestRecordPunch_MultipartWithoutData(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := ts.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordPunch_BadJSON(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", strings.NewReader(`{`))
	rec := ts.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportMonthly(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/export?month=3&year=2024&format=pdf", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, ts.report.export.Month)
	assert.Equal(t, 2024, ts.report.export.Year)
	assert.Equal(t, "pdf", ts.report.export.Format)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		`attachment; filename="espelho_ponto_mar_o_2024.pdf"; filename*=UTF-8''espelho_ponto_mar%C3%A7o_2024.pdf`,
		rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestReportErrors(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly?month=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.report.err = report.ErrUnsupportedFormat
	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/export?format=csv", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.report.err = report.ErrRenderFailed
	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/export?format=pdf", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHolidayAndLocationLookups(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/holidays/2024-12-25", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/holidays/2024-12-26", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/location", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveSettings_RequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	body := `{"name":"Maria","schedule":"8"}`

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	rec := ts.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+ts.token(t, "viewer"))
	rec = ts.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, ts.settings.saved)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+ts.token(t, auth.RoleAdmin))
	rec = ts.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ts.settings.saved)
	assert.Equal(t, "Maria", ts.settings.saved.Name)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	ts := newTestServer(t)
	token, exp, err := ts.jwtService.GenerateAccessToken("kiosk-admin", auth.RoleAdmin)
	require.NoError(t, err)
	ts.jwtService.RevokeToken(token, exp)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backup", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := ts.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"pin":"0000"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"pin":"1234"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBackupExportAndImport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backup", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), backup.FileName("2024-05-15"))
	assert.Contains(t, rec.Body.String(), `"pontoRecords"`)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`{"pontoRecords":[]}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"pontoRecords":[]}`, string(ts.backup.imported))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", strings.NewReader(`{"pontoRecords":[1]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"pontoRecords":[1]}`, string(ts.backup.imported))
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	ts.hub.Publish(sse.TopicPunches, sse.Event{
		Event: sse.EventPunchRecorded,
		Data:  map[string]string{"type": "check_in"},
	})

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if line == "event: "+sse.EventPunchRecorded+"\n" {
			break
		}
	}
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "data: {\"type\":\"check_in\"}\n", line)
}
