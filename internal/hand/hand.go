// Package hand reconstructs one played hand from its raw log lines,
// threading pot size, remaining players and chip stacks through a single
// forward scan.
package hand

import (
	"time"

	"github.com/handscan/handscan/internal/event"
)

// Line is one raw log line with its timestamp, already suit-decoded and in
// oldest-first order.
type Line struct {
	Text string
	At   time.Time
}

// Hand is one fully played round, from its "starting hand #N" marker to the
// line before the next one. Immutable after reconstruction.
type Hand struct {
	Num    int
	GameID string

	Events []event.Event

	SmallBlind *event.Event // points into Events
	BigBlind   *event.Event

	Winners []event.Winner

	StartingNames map[string]string // platform ID -> display name
	StartingChips map[string]int
	TotalChips    int
	Gini          float64

	// Board cards, possibly back-filled from an "Undealt cards" line when
	// betting ended before the river.
	Flop  []string
	Turn  string
	River string

	// Pot size after each event, same order as Events.
	PotSizes []int

	Start time.Time
	End   time.Time

	// Lines that matched no classifier predicate (banners and the like).
	// Counted rather than silently dropped.
	Unrecognized int
}

// FinalPot returns the pot size at the end of the hand.
func (h *Hand) FinalPot() int {
	if len(h.PotSizes) == 0 {
		return 0
	}
	return h.PotSizes[len(h.PotSizes)-1]
}

// Board returns the full board in street order.
func (h *Hand) Board() []string {
	board := append([]string(nil), h.Flop...)
	if h.Turn != "" {
		board = append(board, h.Turn)
	}
	if h.River != "" {
		board = append(board, h.River)
	}
	return board
}

// WonBy reports whether the given platform ID is among the hand's winners.
func (h *Hand) WonBy(playerID string) bool {
	for _, w := range h.Winners {
		if w.PlayerID == playerID {
			return true
		}
	}
	return false
}

// PlayerEvents returns the events belonging to the given player.
func (h *Hand) PlayerEvents(playerID string) []*event.Event {
	var out []*event.Event
	for i := range h.Events {
		if h.Events[i].PlayerID == playerID {
			out = append(out, &h.Events[i])
		}
	}
	return out
}
