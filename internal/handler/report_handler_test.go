package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tasklift/backend/internal/calculator"
	"github.com/tasklift/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ReportService
// ---------------------------------------------------------------------------

type mockReportService struct {
	submitFunc func(ctx context.Context, req service.SubmitRequest) (string, error)
	last       service.SubmitRequest
	calls      int
}

func (m *mockReportService) Submit(ctx context.Context, req service.SubmitRequest) (string, error) {
	m.calls++
	m.last = req
	if m.submitFunc != nil {
		return m.submitFunc(ctx, req)
	}
	return "msg_1", nil
}

const validBody = `{
	"email": "lead@example.com",
	"turnstileToken": "tok",
	"inputs": {
		"teamSize": 5, "timePerTask": 15, "frequencyType": "day",
		"frequencyValue": 10, "workingDays": 5, "hourlyCost": 45,
		"automationPotential": 40
	}
}`

func postReport(h *ReportHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "9.8.7.6:44321"
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// POST /api/report tests
// ---------------------------------------------------------------------------

func TestReportHandler_Submit_Success(t *testing.T) {
	mock := &mockReportService{}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.MessageID != "msg_1" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if mock.last.Email != "lead@example.com" || mock.last.TurnstileToken != "tok" {
		t.Errorf("request fields not forwarded: %+v", mock.last)
	}
	if mock.last.RemoteIP != "9.8.7.6" {
		t.Errorf("expected client IP forwarded, got %q", mock.last.RemoteIP)
	}
}

// TestReportHandler_Submit_DropsClientResults verifies a results object in
// the body never reaches the service.
func TestReportHandler_Submit_DropsClientResults(t *testing.T) {
	mock := &mockReportService{}
	h := NewReportHandler(mock, 1)

	body := strings.TrimSuffix(validBody, "}") + `, "results": {"annualCost": 1}}`
	rec := postReport(h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if _, ok := mock.last.RawInputs["annualCost"]; ok {
		t.Error("client results leaked into raw inputs")
	}
}

func TestReportHandler_Submit_InvalidJSON(t *testing.T) {
	mock := &mockReportService{}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, "{bad json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
	if mock.calls != 0 {
		t.Error("service must not run for malformed bodies")
	}
}

// TestReportHandler_Submit_ValidationDetails returns 400 with the full
// per-field detail list.
func TestReportHandler_Submit_ValidationDetails(t *testing.T) {
	mock := &mockReportService{
		submitFunc: func(ctx context.Context, req service.SubmitRequest) (string, error) {
			return "", &service.ValidationError{Fields: []calculator.FieldError{
				{Field: "teamSize", Msg: "must be between 1 and 500"},
				{Field: "hourlyCost", Msg: "must be between 10 and 300"},
			}}
		},
	}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, validBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Details) != 2 {
		t.Errorf("expected 2 details, got %v", resp.Details)
	}
	if !strings.Contains(resp.Details[0], "teamSize") {
		t.Errorf("expected detail naming teamSize, got %q", resp.Details[0])
	}
}

func TestReportHandler_Submit_VerificationFailure(t *testing.T) {
	mock := &mockReportService{
		submitFunc: func(ctx context.Context, req service.SubmitRequest) (string, error) {
			return "", fmt.Errorf("%w: invalid-input-response", service.ErrVerificationFailed)
		},
	}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, validBody)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestReportHandler_Submit_TransportFailure(t *testing.T) {
	mock := &mockReportService{
		submitFunc: func(ctx context.Context, req service.SubmitRequest) (string, error) {
			return "", fmt.Errorf("%w: 503", service.ErrMailTransport)
		},
	}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, validBody)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] == "" {
		t.Error("expected error field in response body")
	}
}

func TestReportHandler_Submit_ContentTypeJSON(t *testing.T) {
	mock := &mockReportService{}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, validBody)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}

// TestReportHandler_Submit_RawErrorsNotLeaked verifies provider error text
// stays out of the client-facing body.
func TestReportHandler_Submit_RawErrorsNotLeaked(t *testing.T) {
	mock := &mockReportService{
		submitFunc: func(ctx context.Context, req service.SubmitRequest) (string, error) {
			return "", errors.New("resend send: api key sk_secret rejected")
		},
	}
	h := NewReportHandler(mock, 1)

	rec := postReport(h, validBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "sk_secret") {
		t.Error("provider error text leaked to the client")
	}
}
