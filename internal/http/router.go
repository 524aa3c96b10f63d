package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/fantasy-league-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	mux.HandleFunc("GET /players", h.Players)
	mux.HandleFunc("GET /players/{id}", h.Player)
	mux.HandleFunc("GET /players/{id}/selection", h.Selection)

	mux.HandleFunc("POST /league/enroll", h.Enroll)
	mux.HandleFunc("POST /league/fee", h.PayFee)
	mux.HandleFunc("POST /league/join", h.Join)
	mux.HandleFunc("POST /league/team", h.SubmitTeam)
	mux.HandleFunc("PATCH /league/profile", h.UpdateProfile)
	mux.HandleFunc("GET /league/me", h.Me)
	mux.HandleFunc("GET /league/teams/{address}", h.Team)
	mux.HandleFunc("GET /league/participants", h.Participants)
	mux.HandleFunc("GET /league/leaderboard", h.Leaderboard)
	mux.HandleFunc("GET /league/season", h.Season)

	mux.HandleFunc("GET /seasons", h.Seasons)
	mux.HandleFunc("GET /seasons/{id}", h.ArchivedSeason)
	mux.HandleFunc("GET /seasons/{id}/participants", h.ArchivedParticipants)
	mux.HandleFunc("GET /seasons/{id}/teams/{address}", h.ArchivedTeam)
	mux.HandleFunc("GET /seasons/{id}/winner", h.ArchivedWinner)
	mux.HandleFunc("GET /seasons/{id}/prize-pool", h.ArchivedPrizePool)

	if admin != nil {
		mux.HandleFunc("PUT /admin/players", admin.UpsertPlayer)
		mux.HandleFunc("POST /admin/players/sync", admin.SyncPlayers)
		mux.HandleFunc("POST /admin/season/settle", admin.SettleSeason)
	}
	return mux
}
