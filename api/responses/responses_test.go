package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

func responsesTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string, details any) {
	t.Helper()
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error.Code, payload.Error.Message, payload.Error.Details
}

func TestWriteSuccessWrapsData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]int{"count": 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var payload struct {
		Data map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Data["count"] != 3 {
		t.Fatalf("data not wrapped: %+v", payload)
	}
}

func TestWriteErrorUsesCodedMessageForClientErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "stock must be a number").
		WithDetails(map[string]string{"stock": "must be a non-negative integer"})
	WriteError(context.Background(), responsesTestLogger(), rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	code, message, details := decodeError(t, rec)
	if code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %q", code)
	}
	if message != "stock must be a number" {
		t.Fatalf("client errors should surface their own message, got %q", message)
	}
	if details == nil {
		t.Fatalf("validation details should pass through")
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := errors.New("pq: connection refused")
	WriteError(context.Background(), responsesTestLogger(), rec, cause)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for uncoded error, got %d", rec.Code)
	}
	code, message, details := decodeError(t, rec)
	if code != "INTERNAL_ERROR" {
		t.Fatalf("unexpected code %q", code)
	}
	if message != "internal server error" {
		t.Fatalf("internal errors must use the public message, got %q", message)
	}
	if details != nil {
		t.Fatalf("internal errors must not leak details")
	}
}

func TestWriteErrorNilErrorStillResponds(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), responsesTestLogger(), rec, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for nil error, got %d", rec.Code)
	}
}
