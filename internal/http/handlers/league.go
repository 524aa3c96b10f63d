package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

type feeRequest struct {
	Amount *int64 `json:"amount"`
}

type enrollmentResponse struct {
	Participant     domainleague.Participant `json:"participant"`
	AlreadyEnrolled bool                     `json:"alreadyEnrolled"`
}

// idList accepts either a single id or an array of ids.
type idList []players.ID

func (l *idList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ids []players.ID
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*l = ids
		return nil
	}
	var id players.ID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*l = idList{id}
	return nil
}

type teamRequest struct {
	Main     []players.ID `json:"main"`
	Reserve  idList       `json:"reserve"`
	Captain  players.ID   `json:"captain"`
	Username string       `json:"username"`
	TeamName string       `json:"teamName"`
}

type profileRequest struct {
	Username *string `json:"username"`
	TeamName *string `json:"teamName"`
}

// Enroll registers the caller for the current season.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	p, created, err := h.engine.Enroll(r.Context(), addr)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, enrollStatus(created), enrollmentResponse{Participant: p, AlreadyEnrolled: !created}, h.logger)
}

// PayFee credits the entry fee for an enrolled caller.
func (h *Handler) PayFee(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	amount, ok := h.decodeFee(w, r)
	if !ok {
		return
	}
	p, err := h.engine.PayEntryFee(r.Context(), addr, amount)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// Join enrolls the caller if needed and pays the entry fee in one step.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	amount, ok := h.decodeFee(w, r)
	if !ok {
		return
	}
	p, created, err := h.engine.JoinLeague(r.Context(), addr, amount)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, enrollStatus(created), enrollmentResponse{Participant: p, AlreadyEnrolled: !created}, h.logger)
}

// SubmitTeam locks the caller's team for the season.
func (h *Handler) SubmitTeam(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	sel := domainleague.Selection{Main: req.Main, Reserve: req.Reserve, Captain: req.Captain}
	p, err := h.engine.SubmitTeam(r.Context(), addr, sel, req.Username, req.TeamName)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, p, h.logger)
}

// UpdateProfile changes the caller's username and/or team name.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	p, err := h.engine.UpdateProfile(r.Context(), addr, req.Username, req.TeamName)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// Me returns the caller's own entry.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	h.writeUserTeam(w, r, addr)
}

// Team returns any participant's entry by address.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	h.writeUserTeam(w, r, r.PathValue("address"))
}

func (h *Handler) writeUserTeam(w http.ResponseWriter, r *http.Request, addr string) {
	team, err := h.engine.UserTeam(addr)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, team, h.logger)
}

// Participants lists everyone enrolled in the current season.
func (h *Handler) Participants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"participants": h.engine.Participants()}, h.logger)
}

// Leaderboard returns live standings of submitted teams.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"standings": h.engine.Leaderboard()}, h.logger)
}

// Season summarizes the current season.
func (h *Handler) Season(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.CurrentSeason(), h.logger)
}

func (h *Handler) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	addr, ok := callerAddress(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing "+HeaderAccountAddress+" header", h.logger)
	}
	return addr, ok
}

func (h *Handler) decodeFee(w http.ResponseWriter, r *http.Request) (domainleague.Amount, bool) {
	var req feeRequest
	err := decodeJSON(w, r, &req)
	if err == nil && req.Amount == nil {
		err = errors.New("amount is required")
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return 0, false
	}
	return domainleague.Amount(*req.Amount), true
}

func enrollStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
