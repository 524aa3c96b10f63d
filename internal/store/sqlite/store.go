// Package sqlite persists the season archive in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/store/sqlite/migrations"
)

// Store is a SQLite-backed season archive.
type Store struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Open opens (or creates) the archive database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("archive sqlite path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AppendSeason writes a settled season in one transaction. An existing
// season id is rejected with league.ErrAlreadyExists.
func (s *Store) AppendSeason(ctx context.Context, season league.ArchivedSeason) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO archived_seasons (season_id, winner, final_prize_pool, collected, house_cut, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		season.SeasonID,
		string(season.Winner),
		int64(season.FinalPrizePool),
		int64(season.Collected),
		int64(season.HouseCut),
		toMillis(season.SettledAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &league.FieldError{Err: league.ErrAlreadyExists, Field: "seasonId", Value: strconv.FormatInt(season.SeasonID, 10)}
		}
		return fmt.Errorf("insert season %d: %w", season.SeasonID, err)
	}

	for _, p := range season.Participants {
		mainIDs, err := json.Marshal(p.Team.Main)
		if err != nil {
			return fmt.Errorf("encode team for %s: %w", p.Address, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO archived_participants (
			   season_id, address, username, team_name, main_ids, reserve_id, captain_id,
			   team_cost, score, rank, submitted_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			season.SeasonID,
			string(p.Address),
			p.Username,
			p.TeamName,
			string(mainIDs),
			int64(p.Team.Reserve),
			int64(p.Team.Captain),
			p.TeamCost,
			p.Score,
			p.Rank,
			toMillis(p.SubmittedAt),
		)
		if err != nil {
			return fmt.Errorf("insert participant %s: %w", p.Address, err)
		}
	}

	for i, pay := range season.Payouts {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO archived_payouts (id, season_id, position, kind, recipient, amount)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			pay.ID,
			season.SeasonID,
			i,
			string(pay.Kind),
			string(pay.Recipient),
			int64(pay.Amount),
		)
		if err != nil {
			return fmt.Errorf("insert payout %s: %w", pay.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit season %d: %w", season.SeasonID, err)
	}
	return nil
}

// Season loads one archived season with its participants in rank order.
func (s *Store) Season(ctx context.Context, id int64) (league.ArchivedSeason, error) {
	if err := ctx.Err(); err != nil {
		return league.ArchivedSeason{}, err
	}
	var (
		out       league.ArchivedSeason
		winner    string
		prize     int64
		collected int64
		houseCut  int64
		settledAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT season_id, winner, final_prize_pool, collected, house_cut, settled_at
		 FROM archived_seasons WHERE season_id = ?`, id,
	).Scan(&out.SeasonID, &winner, &prize, &collected, &houseCut, &settledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return league.ArchivedSeason{}, &league.NotFoundError{Entity: "season", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return league.ArchivedSeason{}, fmt.Errorf("get season %d: %w", id, err)
	}
	out.Winner = league.Address(winner)
	out.FinalPrizePool = league.Amount(prize)
	out.Collected = league.Amount(collected)
	out.HouseCut = league.Amount(houseCut)
	out.SettledAt = fromMillis(settledAt)

	if out.Participants, err = s.participants(ctx, id); err != nil {
		return league.ArchivedSeason{}, err
	}
	if out.Payouts, err = s.payouts(ctx, id); err != nil {
		return league.ArchivedSeason{}, err
	}
	return out, nil
}

func (s *Store) participants(ctx context.Context, id int64) ([]league.ArchivedParticipant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT address, username, team_name, main_ids, reserve_id, captain_id, team_cost, score, rank, submitted_at
		 FROM archived_participants WHERE season_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("list participants for season %d: %w", id, err)
	}
	defer rows.Close()

	out := []league.ArchivedParticipant{}
	for rows.Next() {
		var (
			p           league.ArchivedParticipant
			addr        string
			mainIDs     string
			reserve     int64
			captain     int64
			submittedAt int64
		)
		if err := rows.Scan(&addr, &p.Username, &p.TeamName, &mainIDs, &reserve, &captain, &p.TeamCost, &p.Score, &p.Rank, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		if err := json.Unmarshal([]byte(mainIDs), &p.Team.Main); err != nil {
			return nil, fmt.Errorf("decode team for %s: %w", addr, err)
		}
		p.Address = league.Address(addr)
		p.Team.Reserve = players.ID(reserve)
		p.Team.Captain = players.ID(captain)
		p.SubmittedAt = fromMillis(submittedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

func (s *Store) payouts(ctx context.Context, id int64) ([]league.Payout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, recipient, amount FROM archived_payouts WHERE season_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list payouts for season %d: %w", id, err)
	}
	defer rows.Close()

	var out []league.Payout
	for rows.Next() {
		var (
			p         league.Payout
			kind      string
			recipient string
			amount    int64
		)
		if err := rows.Scan(&p.ID, &kind, &recipient, &amount); err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		p.SeasonID = id
		p.Kind = league.PayoutKind(kind)
		p.Recipient = league.Address(recipient)
		p.Amount = league.Amount(amount)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payouts: %w", err)
	}
	return out, nil
}

// SeasonIDs lists archived season ids in ascending order.
func (s *Store) SeasonIDs(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT season_id FROM archived_seasons ORDER BY season_id`)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan season id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
