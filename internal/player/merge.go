package player

import (
	"fmt"
	"sort"

	"github.com/handscan/handscan/internal/stats"
)

// IdentityGroupingError reports a grouping configuration that assigns one
// platform ID to more than one group.
type IdentityGroupingError struct {
	ID string
}

func (e *IdentityGroupingError) Error() string {
	return fmt.Sprintf("platform ID %q is assigned to more than one identity group", e.ID)
}

// Player is one real person's finalized cross-session record, possibly
// coalesced from several platform IDs. Read-only after the merge.
type Player struct {
	Label string // group label, or the single platform ID
	IDs   []string
	Names []string

	Games []*GameDetail // one per (ID, game) pair, detail preserved

	HandsPlayed int
	Wins        int
	BuyIn       int
	LeaveTotal  int
	LargestWin  int
	LargestLoss int
	AllIns      []int
	CardsSeen   *stats.Distribution
}

// GamesPlayed returns the number of distinct games the player appeared in.
func (p *Player) GamesPlayed() int {
	seen := make(map[string]bool)
	for _, d := range p.Games {
		seen[d.GameID] = true
	}
	return len(seen)
}

// Profit is chips taken off the table minus chips brought to it.
func (p *Player) Profit() int {
	return p.LeaveTotal - p.BuyIn
}

// WinRate returns the fraction of played hands this player won.
func (p *Player) WinRate() float64 {
	if p.HandsPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.HandsPlayed)
}

// Merge finalizes the accumulated partials into cross-session players. The
// groups map declares which platform IDs belong to the same human, keyed by
// a display label; every ID in a group is summed/unioned into one record,
// and IDs mentioned in no group pass through as singletons. An ID assigned
// to two groups is an IdentityGroupingError.
func Merge(acc *Accumulator, groups map[string][]string) ([]*Player, error) {
	groupOf := make(map[string]string)
	for label, ids := range groups {
		for _, id := range ids {
			if _, dup := groupOf[id]; dup {
				return nil, &IdentityGroupingError{ID: id}
			}
			groupOf[id] = label
		}
	}

	players := make(map[string]*Player)
	for _, id := range acc.IDs() {
		label, grouped := groupOf[id]
		if !grouped {
			label = id
		}
		p, ok := players[label]
		if !ok {
			p = &Player{Label: label, CardsSeen: stats.NewDistribution()}
			players[label] = p
		}
		p.absorb(acc.Partial(id))
	}

	out := make([]*Player, 0, len(players))
	for _, p := range players {
		sort.Strings(p.IDs)
		sort.Strings(p.Names)
		sort.Slice(p.Games, func(i, j int) bool {
			if p.Games[i].GameID != p.Games[j].GameID {
				return p.Games[i].GameID < p.Games[j].GameID
			}
			return false
		})
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// absorb folds one platform ID's partial into the merged record.
func (p *Player) absorb(partial *Partial) {
	p.IDs = append(p.IDs, partial.ID)
	for name := range partial.Names {
		if !contains(p.Names, name) {
			p.Names = append(p.Names, name)
		}
	}
	p.CardsSeen.Merge(partial.CardsSeen)

	for _, d := range partial.Games {
		p.Games = append(p.Games, d)
		p.HandsPlayed += d.Hands
		p.Wins += d.Wins
		p.BuyIn += d.BuyIn
		p.LeaveTotal += d.LeaveTotal
		p.AllIns = append(p.AllIns, d.AllIns...)
		if d.LargestWin > p.LargestWin {
			p.LargestWin = d.LargestWin
		}
		if d.LargestLoss < p.LargestLoss {
			p.LargestLoss = d.LargestLoss
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
