package phh

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/game"
)

// Table describes the stakes every hand was played at.
type Table struct {
	Name          string
	StartingStack game.Chips
	SmallBlind    game.Chips
	BigBlind      game.Chips
}

// DefaultTable matches the default game options.
func DefaultTable() Table {
	return Table{
		Name:          "pokerbots",
		StartingStack: game.DefaultStartingStack,
		SmallBlind:    game.DefaultSmallBlind,
		BigBlind:      game.DefaultBigBlind,
	}
}

// seatAt is the inverse of playerIndex.
func seatAt(p int) game.Seat {
	return game.Seat((p + 2) % game.NumSeats)
}

// FromEvent converts a resolved hand. Board cards and shown hands appear only
// when the hand went to showdown.
func FromEvent(e game.HandResolvedEvent, t Table) *HandHistory {
	n := game.NumSeats
	h := &HandHistory{
		Variant:           "NT",
		Table:             t.Name,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int64, n),
		BlindsOrStraddles: make([]int64, n),
		MinBet:            int64(t.BigBlind),
		StartingStacks:    make([]int64, n),
		FinishingStacks:   make([]int64, n),
		Winnings:          make([]int64, n),
		Players:           make([]string, n),
		HandID:            fmt.Sprintf("%s-%d", t.Name, e.HandNumber),
		Metadata: map[string]any{
			"user_seat": e.UserSeat.String(),
			"outcome":   string(e.Result.Outcome),
			"hand_type": e.Result.HandType(),
		},
		Timestamp: e.Timestamp(),
	}
	h.BlindsOrStraddles[playerIndex(game.SB)] = int64(t.SmallBlind)
	h.BlindsOrStraddles[playerIndex(game.BB)] = int64(t.BigBlind)
	if e.Result.Unclaimed > 0 {
		h.Metadata["unclaimed"] = int64(e.Result.Unclaimed)
	}

	res := e.Result
	for p := range n {
		seat := seatAt(p)
		h.Seats[p] = p + 1
		h.StartingStacks[p] = int64(t.StartingStack)
		h.FinishingStacks[p] = int64(t.StartingStack - res.Contributions[seat] + res.Shares[seat])
		h.Winnings[p] = int64(res.Shares[seat])
		h.Players[p] = seat.String()
		if seat == e.UserSeat {
			h.Players[p] = "Hero"
		}
		if cards := e.Hole[seat]; len(cards) > 0 {
			h.Actions = append(h.Actions, fmt.Sprintf("d dh %s %s", Player(seat), FormatCards(cards)))
		}
	}

	first := true
	for _, seat := range game.Seats {
		d := e.Decisions[seat]
		total := res.Contributions[seat]
		if total == 0 {
			total = t.StartingStack
		}
		if a, ok := FormatAction(seat, d, first, total); ok {
			h.Actions = append(h.Actions, a)
			if d == game.AllIn {
				first = false
			}
		}
	}

	if res.Showdown && len(e.Community) == game.CommunitySize {
		h.Actions = append(h.Actions,
			"d db "+FormatCards(e.Community[:3]),
			"d db "+FormatCards(e.Community[3:4]),
			"d db "+FormatCards(e.Community[4:]),
		)
		for p := range n {
			seat := seatAt(p)
			if e.Decisions[seat] == game.AllIn {
				h.Actions = append(h.Actions, fmt.Sprintf("%s sm %s", Player(seat), FormatCards(e.Hole[seat])))
			}
		}
	}

	if !h.Timestamp.IsZero() {
		ts := h.Timestamp.UTC()
		h.Time = ts.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day, h.Month, h.Year = ts.Day(), int(ts.Month()), ts.Year()
	}
	return h
}

// Recorder appends every resolved hand it sees to w as a .phhs section.
type Recorder struct {
	mu     sync.Mutex
	w      io.Writer
	table  Table
	logger *log.Logger
	count  int
	err    error
}

// NewRecorder creates a recorder writing to w.
func NewRecorder(w io.Writer, table Table, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Recorder{w: w, table: table, logger: logger.WithPrefix("phh")}
}

// OnEvent implements game.EventSubscriber.
func (r *Recorder) OnEvent(event game.GameEvent) {
	e, ok := event.(game.HandResolvedEvent)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if r.count > 0 {
		if _, err := io.WriteString(r.w, "\n"); err != nil {
			r.fail(err)
			return
		}
	}
	if err := EncodeSection(r.w, r.count+1, FromEvent(e, r.table)); err != nil {
		r.fail(err)
		return
	}
	r.count++
}

func (r *Recorder) fail(err error) {
	r.err = err
	r.logger.Warn("Hand history disabled", "error", err)
}

// Count returns the number of hands written.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Err returns the first write error, after which the recorder stops writing.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
