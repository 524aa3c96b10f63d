package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&domainleague.NotFoundError{Entity: "player", Key: "9"}, http.StatusNotFound},
		{&domainleague.RosterError{Reason: domainleague.ReasonOverBudget, Field: "budget", Value: "1201"}, http.StatusUnprocessableEntity},
		{&domainleague.RosterError{Reason: domainleague.ReasonTeamNameTaken}, http.StatusUnprocessableEntity},
		{domainleague.ErrInvalidInput, http.StatusUnprocessableEntity},
		{domainleague.ErrInvalidStatsBlob, http.StatusUnprocessableEntity},
		{domainleague.ErrAlreadyPaid, http.StatusConflict},
		{domainleague.ErrAlreadySubmitted, http.StatusConflict},
		{domainleague.ErrNoParticipants, http.StatusConflict},
		{&domainleague.FieldError{Err: domainleague.ErrAlreadyExists, Field: "seasonId", Value: "1"}, http.StatusConflict},
		{&domainleague.FieldError{Err: domainleague.ErrWrongFeeAmount, Field: "amount", Value: "5"}, http.StatusPaymentRequired},
		{domainleague.ErrFeeNotPaid, http.StatusPaymentRequired},
		{domainleague.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", context.Canceled), http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForKind(domainleague.Kind(tc.err), tc.err); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestWriteDomainErrorBody(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	err := &domainleague.RosterError{Reason: domainleague.ReasonOverBudget, Field: "budget", Value: "1201"}
	rr := httptest.NewRecorder()
	writeDomainError(rr, httptest.NewRequest(http.MethodPost, "/league/team", nil), err, logger)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Kind != "over_budget" || body.Field != "budget" || body.Value != "1201" || body.Error == "" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestWriteDomainErrorHidesInternalDetail(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()
	writeDomainError(rr, httptest.NewRequest(http.MethodGet, "/seasons/1", nil), errors.New("sql: connection refused"), logger)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Fatalf("expected internal detail hidden, got %s", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("expected internal detail logged")
	}
}

func TestDecodeJSON(t *testing.T) {
	var dest map[string]any
	rr := httptest.NewRecorder()
	if err := decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &dest); err == nil {
		t.Fatalf("expected error for empty body")
	}
	if err := decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &dest); err == nil {
		t.Fatalf("expected error for malformed body")
	}
	big := `{"x":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	if err := decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)), &dest); err == nil {
		t.Fatalf("expected error for oversized body")
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/players?offset=5&limit=-1&bad=x", nil)
	if v, ok := queryInt(req, "offset"); !ok || v != 5 {
		t.Fatalf("expected 5, got %d %v", v, ok)
	}
	if _, ok := queryInt(req, "limit"); ok {
		t.Fatalf("expected negative rejected")
	}
	if _, ok := queryInt(req, "bad"); ok {
		t.Fatalf("expected non-numeric rejected")
	}
	if v, ok := queryInt(req, "missing"); !ok || v != 0 {
		t.Fatalf("expected missing to default to 0")
	}
}
