package handlers

import (
	"net/http"

	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

const defaultPageLimit = 50

type playersPage struct {
	IDs     []players.ID     `json:"ids"`
	Players []players.Player `json:"players"`
	Total   int              `json:"total"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

type selectionResponse struct {
	PlayerID   players.ID           `json:"playerId"`
	Percentage domainleague.Percent `json:"percentage"`
}

// Players lists every player id plus one page of full records.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	offset, ok := queryInt(r, "offset")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid offset", h.logger)
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid limit", h.logger)
		return
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	page, total := h.engine.Players(offset, limit)
	writeJSON(w, http.StatusOK, playersPage{
		IDs:     h.engine.PlayerIDs(),
		Players: page,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	}, h.logger)
}

// Player returns one player.
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlayerID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	p, err := h.engine.Player(id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// Selection returns the share of submitted teams that picked the player.
func (h *Handler) Selection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlayerID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	pct, err := h.engine.SelectionPercentage(id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{PlayerID: id, Percentage: pct}, h.logger)
}
