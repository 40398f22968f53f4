// Package game groups one file's reconstructed hands into a Game and folds
// per-hand data into the cross-session player accumulator.
package game

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/handscan/handscan/internal/event"
	"github.com/handscan/handscan/internal/hand"
	"github.com/handscan/handscan/internal/parse"
	"github.com/handscan/handscan/internal/stats"
)

// RejectedHand records one hand that failed reconstruction. One bad hand
// must not lose the rest of the session.
type RejectedHand struct {
	GameID  string
	HandNum int
	Line    string
	Err     error
}

// Game is one imported file: a continuous session of hands plus the
// file-level distributions.
type Game struct {
	ID    string
	Hands []*hand.Hand

	Cards        *stats.Distribution // board and shown cards seen in this file
	WinningHands *stats.Distribution // winning hand-type labels

	Rejected     []RejectedHand
	Unrecognized int
}

// HandCount returns the number of successfully reconstructed hands.
func (g *Game) HandCount() int {
	return len(g.Hands)
}

// Build reconstructs every hand group of one file. A malformed hand is
// recorded on the Game and skipped; reconstruction of the remaining hands
// continues.
func Build(id string, groups [][]hand.Line, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("game")

	g := &Game{
		ID:           id,
		Cards:        stats.NewDistribution(),
		WinningHands: stats.NewDistribution(),
	}

	for _, group := range groups {
		h, err := hand.Reconstruct(id, group)
		if err != nil {
			rejected := RejectedHand{GameID: id, Err: err}
			if len(group) > 0 {
				rejected.HandNum = parse.ExtractHandNum(group[0].Text)
			}
			var malformed *parse.MalformedEventError
			if errors.As(err, &malformed) {
				rejected.Line = malformed.Line
			}
			g.Rejected = append(g.Rejected, rejected)
			logger.Debug("rejected hand", "game", id, "hand", rejected.HandNum, "err", err)
			continue
		}
		if h.Unrecognized > 0 {
			g.Unrecognized += h.Unrecognized
			logger.Debug("unrecognized lines in hand", "game", id, "hand", h.Num, "count", h.Unrecognized)
		}
		g.Hands = append(g.Hands, h)
		g.countHand(h)
	}
	return g
}

// countHand folds one hand into the file-level distributions. Board and
// shown cards count once each; winner combinations are not re-counted on
// top of the board they overlap.
func (g *Game) countHand(h *hand.Hand) {
	for _, card := range h.Board() {
		g.Cards.Add(card)
	}
	for _, ev := range h.Events {
		if ev.Kind == event.KindShows || ev.Kind == event.KindMyCards {
			for _, card := range ev.Cards {
				g.Cards.Add(card)
			}
		}
	}
	for _, w := range h.Winners {
		if w.HandLabel != "" {
			g.WinningHands.Add(w.HandLabel)
		}
	}
}
