// Package event defines the typed event model for parsed hand-history lines
// and the classifier that maps raw lines onto event kinds.
package event

import "time"

// Kind identifies what a single log line represents at the table.
type Kind string

const (
	KindRequests     Kind = "requests"
	KindApproved     Kind = "approved"
	KindJoined       Kind = "joined"
	KindMyCards      Kind = "my_cards"
	KindSmallBlind   Kind = "small_blind"
	KindBigBlind     Kind = "big_blind"
	KindFolds        Kind = "folds"
	KindCalls        Kind = "calls"
	KindRaises       Kind = "raises"
	KindChecks       Kind = "checks"
	KindWins         Kind = "wins"
	KindShows        Kind = "shows"
	KindQuits        Kind = "quits"
	KindFlop         Kind = "flop"
	KindTurn         Kind = "turn"
	KindRiver        Kind = "river"
	KindUndealt      Kind = "undealt"
	KindStandsUp     Kind = "stands_up"
	KindSitsIn       Kind = "sits_in"
	KindPlayerStacks Kind = "player_stacks"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Position labels the betting round an event occurred in. Board-reveal
// events carry the street itself (Flop/Turn/River); all other events carry
// the action round they happened during.
type Position string

const (
	PositionPreFlop   Position = "Pre Flop"
	PositionPostFlop  Position = "Post Flop"
	PositionPostTurn  Position = "Post Turn"
	PositionPostRiver Position = "Post River"
	PositionFlop      Position = "Flop"
	PositionTurn      Position = "Turn"
	PositionRiver     Position = "River"
)

// String returns the string representation of the position.
func (p Position) String() string {
	return string(p)
}

// Winner records one winner of a hand's pot. Split pots produce several.
type Winner struct {
	PlayerID  string
	Name      string
	Collected int
	HandLabel string   // e.g. "Two Pairs, A's & 8's"; empty if won uncontested
	Cards     []string // showdown combination, possibly supplied by an earlier Shows line
}

// Event is one fully annotated table occurrence. The hand reconstructor
// fills in the running-state fields (PotAfter, Remaining, chip snapshots,
// winners) while scanning a hand; once the scan completes the event must be
// treated as immutable.
type Event struct {
	Kind Kind
	Raw  string

	PlayerID   string // empty for board and MyCards events
	PlayerName string

	Amount *int     // bet/stack amount where the kind carries one
	Cards  []string // board cards, hole cards or showdown combination
	AllIn  bool

	Position Position
	HandNum  int

	// Running state after this event was applied.
	PotAfter  int
	Remaining map[string]bool // platform IDs still active in the hand

	// The most recent aggressive actor before this event, used to resolve
	// what a bare "calls N" is calling.
	ActingID     string
	ActingAmount *int

	Chips         map[string]int // per-player stacks after this event
	StartingChips map[string]int // per-player stacks at hand start

	// Winner annotations, nil until the hand's first Wins event and then
	// back-filled identically onto every event of the hand.
	Winners []Winner

	At     time.Time
	PrevAt time.Time // timestamp of the immediately preceding line

	HandStart time.Time
	HandEnd   time.Time
	GameID    string
}

// IsBoard reports whether the event reveals community cards.
func (e *Event) IsBoard() bool {
	switch e.Kind {
	case KindFlop, KindTurn, KindRiver, KindUndealt:
		return true
	}
	return false
}

// IsMonetary reports whether the event moves chips into the pot.
func (e *Event) IsMonetary() bool {
	switch e.Kind {
	case KindSmallBlind, KindBigBlind, KindCalls, KindRaises:
		return true
	}
	return false
}
