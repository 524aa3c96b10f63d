package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/http/requestutil"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
	"github.com/preston-bernstein/fantasy-league-service/internal/poller"
)

// PlayerSyncer runs one player feed sync on demand.
type PlayerSyncer interface {
	SyncOnce(ctx context.Context) (poller.Result, error)
}

// AdminHandler exposes operator-only endpoints.
type AdminHandler struct {
	engine *league.Engine
	syncer PlayerSyncer
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. A nil syncer disables manual
// feed syncs.
func NewAdminHandler(engine *league.Engine, syncer PlayerSyncer, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		engine: engine,
		syncer: syncer,
		token:  token,
		logger: logger,
	}
}

type upsertPlayerRequest struct {
	Name  string          `json:"name"`
	Stats json.RawMessage `json:"stats"`
	Price *int64          `json:"price"`
}

type upsertPlayerResponse struct {
	Player  players.Player `json:"player"`
	Created bool           `json:"created"`
}

// UpsertPlayer creates or refreshes a player from a raw statistics record.
func (h *AdminHandler) UpsertPlayer(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req upsertPlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if req.Price == nil {
		writeError(w, r, http.StatusBadRequest, "price is required", h.logger)
		return
	}
	p, created, err := h.engine.UpsertPlayer(r.Context(), req.Name, req.Stats, *req.Price)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, enrollStatus(created), upsertPlayerResponse{Player: p, Created: created}, h.logger)
}

// SyncPlayers pulls the player feed immediately instead of waiting for the
// next scheduled run.
func (h *AdminHandler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if h.syncer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "player feed not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	res, err := h.syncer.SyncOnce(r.Context())
	if err != nil {
		logging.Warn(logger, "admin player sync failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "failed to sync players", logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"created": res.Created,
		"updated": res.Updated,
		"skipped": res.Skipped,
		"status":  "ok",
	}, logger)
	logging.Info(logger, "admin player sync complete", logging.FieldCount, res.Upserted())
}

// SettleSeason ends the current season and distributes the prize pool. A
// request without a valid token reaches the engine unauthorized and is
// refused there.
func (h *AdminHandler) SettleSeason(w http.ResponseWriter, r *http.Request) {
	authorized := h.authorize(r)
	if !authorized {
		h.logUnauthorized(r)
	}
	rec, err := h.engine.EndSeasonAndDistribute(r.Context(), authorized)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rec, h.logger)
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if h.authorize(r) {
		return true
	}
	h.logUnauthorized(r)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}

func (h *AdminHandler) logUnauthorized(r *http.Request) {
	logging.Warn(loggerFromContext(r, h.logger), "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
