package game

import (
	"github.com/handscan/handscan/internal/event"
	"github.com/handscan/handscan/internal/hand"
	"github.com/handscan/handscan/internal/player"
)

// Aggregate folds one game's hands into the per-player accumulator. Pure
// aggregation: all temporal logic already happened during reconstruction.
// The caller owns the accumulator and must not call Aggregate concurrently.
func Aggregate(acc *player.Accumulator, g *Game) {
	for _, h := range g.Hands {
		aggregateHand(acc, g.ID, h)
	}
}

func aggregateHand(acc *player.Accumulator, gameID string, h *hand.Hand) {
	final := finalChips(h)

	for id, starting := range h.StartingChips {
		p := acc.Partial(id)
		p.Names[h.StartingNames[id]] = true
		d := p.Detail(gameID)
		d.Hands++
		if h.WonBy(id) {
			d.Wins++
		}
		if chips, ok := final[id]; ok {
			net := chips - starting
			d.NetChips += net
			if net > d.LargestWin {
				d.LargestWin = net
			}
			if net < d.LargestLoss {
				d.LargestLoss = net
			}
		}
	}

	for i := range h.Events {
		ev := &h.Events[i]
		if ev.PlayerID == "" {
			continue
		}
		p := acc.Partial(ev.PlayerID)
		if ev.PlayerName != "" {
			p.Names[ev.PlayerName] = true
		}
		d := p.Detail(gameID)
		d.Lines++

		switch ev.Kind {
		case event.KindJoined, event.KindApproved, event.KindSitsIn:
			if ev.Amount != nil {
				d.BuyIn += *ev.Amount
			}
		case event.KindStandsUp, event.KindQuits:
			if ev.Amount != nil {
				d.LeaveTotal += *ev.Amount
			}
		case event.KindShows:
			for _, card := range ev.Cards {
				p.CardsSeen.Add(card)
			}
		}
		if ev.AllIn && ev.Amount != nil {
			d.AllIns = append(d.AllIns, *ev.Amount)
		}
	}

	for _, w := range h.Winners {
		p := acc.Partial(w.PlayerID)
		for _, card := range w.Cards {
			p.CardsSeen.Add(card)
		}
	}
}

// finalChips returns the chip snapshot of the hand's last event, the stack
// state the hand ended with.
func finalChips(h *hand.Hand) map[string]int {
	if len(h.Events) == 0 {
		return nil
	}
	return h.Events[len(h.Events)-1].Chips
}
