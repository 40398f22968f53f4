// Package player accumulates per-player statistics across games and merges
// duplicate platform identities into one record per human.
package player

import (
	"sort"

	"github.com/handscan/handscan/internal/stats"
)

// GameDetail is one player's record within a single game, kept per game so
// cross-game detail survives the merge step.
type GameDetail struct {
	GameID      string
	Hands       int
	Wins        int
	NetChips    int
	LargestWin  int
	LargestLoss int // most negative single-hand net, <= 0
	AllIns      []int
	BuyIn       int
	LeaveTotal  int
	Lines       int
}

// Partial is the mutable accumulator for one platform ID while games are
// being scanned. The cross-session aggregator owns the enclosing
// Accumulator exclusively; partials are never shared between goroutines.
type Partial struct {
	ID        string
	Names     map[string]bool
	Games     map[string]*GameDetail
	CardsSeen *stats.Distribution
}

// Detail returns the per-game record for gameID, creating it on first use.
func (p *Partial) Detail(gameID string) *GameDetail {
	d, ok := p.Games[gameID]
	if !ok {
		d = &GameDetail{GameID: gameID}
		p.Games[gameID] = d
	}
	return d
}

// Accumulator collects partials for every platform ID seen in a directory
// scan. It replaces the shared players_data dict of older designs with an
// explicitly owned object.
type Accumulator struct {
	partials map[string]*Partial
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{partials: make(map[string]*Partial)}
}

// Partial returns the accumulator for a platform ID, creating it on first
// use.
func (a *Accumulator) Partial(id string) *Partial {
	p, ok := a.partials[id]
	if !ok {
		p = &Partial{
			ID:        id,
			Names:     make(map[string]bool),
			Games:     make(map[string]*GameDetail),
			CardsSeen: stats.NewDistribution(),
		}
		a.partials[id] = p
	}
	return p
}

// IDs returns every platform ID seen, sorted.
func (a *Accumulator) IDs() []string {
	ids := make([]string, 0, len(a.partials))
	for id := range a.partials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of platform IDs accumulated.
func (a *Accumulator) Len() int {
	return len(a.partials)
}
