// Package store persists resolved hands to Postgres.
package store

import (
	"context"
	"embed"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/game"
)

//go:embed schema.sql
var schema embed.FS

// HandRecord is one resolved hand as stored.
type HandRecord struct {
	HandNumber int                   `json:"hand_number"`
	UserSeat   game.Seat             `json:"user_seat"`
	Hole       [game.NumSeats]string `json:"hole"`
	Community  string                `json:"community"`
	Decisions  [game.NumSeats]string `json:"decisions"`
	Outcome    string                `json:"outcome"`
	Winners    []string              `json:"winners"`
	HandType   string                `json:"hand_type"`
	Pot        game.Chips            `json:"pot"`
	UserNet    game.Chips            `json:"user_net"`
	Bankroll   game.Chips            `json:"bankroll"`
	PlayedAt   time.Time             `json:"played_at"`
}

// RecordFromEvent flattens a resolved hand for storage.
func RecordFromEvent(e game.HandResolvedEvent) HandRecord {
	r := HandRecord{
		HandNumber: e.HandNumber,
		UserSeat:   e.UserSeat,
		Community:  deck.FormatCards(e.Community),
		Outcome:    string(e.Result.Outcome),
		Winners:    make([]string, 0, len(e.Result.Winners)),
		HandType:   e.Result.HandType(),
		Pot:        e.Result.Pot,
		UserNet:    e.UserNet,
		Bankroll:   e.Bankroll,
		PlayedAt:   e.Timestamp(),
	}
	for i := range game.NumSeats {
		r.Hole[i] = deck.FormatCards(e.Hole[i])
		r.Decisions[i] = e.Decisions[i].String()
	}
	for _, w := range e.Result.Winners {
		r.Winners = append(r.Winners, w.String())
	}
	return r
}

// DB wraps a connection pool.
type DB struct {
	*pgxpool.Pool
	logger *log.Logger
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: p, logger: logger.WithPrefix("store")}, nil
}

// Close releases the pool.
func (db *DB) Close() { db.Pool.Close() }

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// RecordHand inserts one resolved hand for sessionID.
func (db *DB) RecordHand(ctx context.Context, sessionID string, r HandRecord) error {
	playedAt := r.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	winners := r.Winners
	if winners == nil {
		winners = []string{}
	}
	_, err := db.Exec(ctx, `
		INSERT INTO hands(session_id, hand_number, user_seat, hole_cards, community,
		                  decisions, outcome, winners, hand_type, pot, user_net, bankroll, played_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, sessionID, r.HandNumber, r.UserSeat.String(), r.Hole[:], r.Community,
		r.Decisions[:], r.Outcome, winners, r.HandType,
		int64(r.Pot), int64(r.UserNet), int64(r.Bankroll), playedAt)
	if err != nil {
		return fmt.Errorf("record hand %d: %w", r.HandNumber, err)
	}
	db.logger.Debug("Recorded hand", "session", sessionID, "number", r.HandNumber)
	return nil
}

// RecentHands returns up to limit hands for sessionID, newest first.
func (db *DB) RecentHands(ctx context.Context, sessionID string, limit int) ([]HandRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(ctx, `
		SELECT hand_number, user_seat, hole_cards, community, decisions, outcome,
		       winners, hand_type, pot, user_net, bankroll, played_at
		  FROM hands
		 WHERE session_id = $1
		 ORDER BY id DESC
		 LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHands(rows)
}

func collectHands(rows pgx.Rows) ([]HandRecord, error) {
	var out []HandRecord
	for rows.Next() {
		var (
			r                  HandRecord
			seat               string
			hole, decisions    []string
			pot, net, bankroll int64
		)
		if err := rows.Scan(&r.HandNumber, &seat, &hole, &r.Community, &decisions, &r.Outcome,
			&r.Winners, &r.HandType, &pot, &net, &bankroll, &r.PlayedAt); err != nil {
			return nil, err
		}
		s, err := game.ParseSeat(seat)
		if err != nil {
			return nil, err
		}
		r.UserSeat = s
		copy(r.Hole[:], hole)
		copy(r.Decisions[:], decisions)
		r.Pot, r.UserNet, r.Bankroll = game.Chips(pot), game.Chips(net), game.Chips(bankroll)
		out = append(out, r)
	}
	return out, rows.Err()
}
