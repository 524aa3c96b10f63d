package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/http/middleware"
	"github.com/preston-bernstein/fantasy-league-service/internal/http/requestutil"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

// HeaderAccountAddress carries the caller's account address. Wallet
// authentication happens upstream of this service.
const HeaderAccountAddress = "X-Account-Address"

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Field     string `json:"field,omitempty"`
	Value     string `json:"value,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestID(r)}, logger)
}

// writeDomainError maps a league error onto a status code and a body that
// names the error kind and the offending field.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	kind := domainleague.Kind(err)
	status := statusForKind(kind, err)
	body := errorBody{Kind: kind, RequestID: requestID(r)}
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		body.Error = http.StatusText(status)
		logging.Error(loggerFromContext(r, logger), "request failed", err, logging.FieldKind, kind)
	} else {
		body.Error = err.Error()
		body.Field, body.Value = domainleague.Fields(err)
	}
	writeJSON(w, status, body, logger)
}

func statusForKind(kind string, err error) int {
	switch kind {
	case "not_found":
		return http.StatusNotFound
	case "already_paid", "already_submitted", "already_exists", "no_participants":
		return http.StatusConflict
	case "wrong_fee_amount", "fee_not_paid":
		return http.StatusPaymentRequired
	case "unauthorized":
		return http.StatusUnauthorized
	case "invalid_input", "invalid_stats_blob":
		return http.StatusUnprocessableEntity
	case "internal":
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	default:
		// Every roster rejection reason.
		if errors.Is(err, domainleague.ErrRoster) {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	}
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(requestutil.HeaderRequestID)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// decodeJSON reads a bounded JSON body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// callerAddress reads the caller identity header.
func callerAddress(r *http.Request) (string, bool) {
	addr := strings.TrimSpace(r.Header.Get(HeaderAccountAddress))
	return addr, addr != ""
}

func pathPlayerID(r *http.Request) (players.ID, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return players.ID(id), true
}

func pathSeasonID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, key string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
