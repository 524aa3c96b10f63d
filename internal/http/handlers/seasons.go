package handlers

import "net/http"

// Seasons lists archived season ids.
func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	ids, err := h.engine.ArchivedSeasonIDs(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasons": ids}, h.logger)
}

// ArchivedSeason returns a full settled season record.
func (h *Handler) ArchivedSeason(w http.ResponseWriter, r *http.Request) {
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}
	rec, err := h.engine.ArchivedSeason(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rec, h.logger)
}

// ArchivedParticipants lists a settled season's ranked participants.
func (h *Handler) ArchivedParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}
	parts, err := h.engine.ArchivedParticipants(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasonId": id, "participants": parts}, h.logger)
}

// ArchivedTeam returns one participant's frozen team.
func (h *Handler) ArchivedTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}
	p, err := h.engine.ArchivedTeam(r.Context(), id, r.PathValue("address"))
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// ArchivedWinner returns the winner of a settled season.
func (h *Handler) ArchivedWinner(w http.ResponseWriter, r *http.Request) {
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}
	winner, err := h.engine.ArchivedWinner(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasonId": id, "winner": winner}, h.logger)
}

// ArchivedPrizePool returns the amount the winner of a settled season received.
func (h *Handler) ArchivedPrizePool(w http.ResponseWriter, r *http.Request) {
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}
	pool, err := h.engine.ArchivedPrizePool(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasonId": id, "prizePool": pool}, h.logger)
}

func (h *Handler) seasonID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathSeasonID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid season id", h.logger)
	}
	return id, ok
}
