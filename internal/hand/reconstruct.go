package hand

import (
	"strings"
	"time"

	"github.com/handscan/handscan/internal/event"
	"github.com/handscan/handscan/internal/parse"
	"github.com/handscan/handscan/internal/stats"
)

// pending is one classified and extracted line awaiting annotation.
type pending struct {
	kind   event.Kind
	fields parse.Fields
	raw    string
	at     time.Time
	prevAt time.Time
	pos    event.Position
}

// Reconstruct scans one hand's ordered lines and produces the fully
// annotated Hand. The scan is a single forward pass preceded by a position
// pre-tagging pass; the only backtracking is the bounded winner back-fill
// over the already-built event buffer. Reconstruction is atomic: any
// malformed line rejects the whole hand.
//
// A group holding nothing but its "starting hand" marker is a valid empty
// hand, not an error.
func Reconstruct(gameID string, lines []Line) (*Hand, error) {
	h := &Hand{
		GameID:        gameID,
		StartingNames: make(map[string]string),
		StartingChips: make(map[string]int),
	}
	if len(lines) == 0 {
		return h, nil
	}
	h.Start = lines[0].At
	h.End = lines[len(lines)-1].At
	h.Num = parse.ExtractHandNum(lines[0].Text)

	pendings, err := classifyLines(h, lines)
	if err != nil {
		return nil, err
	}
	tagPositions(pendings)

	if err := h.scan(gameID, pendings); err != nil {
		return nil, err
	}
	h.backfillWinners()
	return h, nil
}

// classifyLines runs the classifier and extractor over every line. Lines
// matching no predicate are counted on the hand; the structural "starting
// hand" marker is neither an event nor noise.
func classifyLines(h *Hand, lines []Line) ([]pending, error) {
	pendings := make([]pending, 0, len(lines))
	prevAt := lines[0].At
	for _, ln := range lines {
		kind, ok := event.Classify(ln.Text)
		if !ok {
			if !strings.Contains(ln.Text, " starting hand ") {
				h.Unrecognized++
			}
			prevAt = ln.At
			continue
		}
		fields, err := parse.Extract(kind, ln.Text)
		if err != nil {
			return nil, err
		}
		pendings = append(pendings, pending{
			kind:   kind,
			fields: fields,
			raw:    ln.Text,
			at:     ln.At,
			prevAt: prevAt,
		})
		prevAt = ln.At
	}
	return pendings, nil
}

// tagPositions assigns each line its betting round before the main pass.
// An action line needs the round it occurred in even though the board line
// that opened the round appears earlier in the same scan, so the rounds are
// computed up front. Board-reveal lines carry the street itself.
func tagPositions(pendings []pending) {
	pos := event.PositionPreFlop
	for i := range pendings {
		switch pendings[i].kind {
		case event.KindFlop:
			pendings[i].pos = event.PositionFlop
			pos = event.PositionPostFlop
		case event.KindTurn:
			pendings[i].pos = event.PositionTurn
			pos = event.PositionPostTurn
		case event.KindRiver:
			pendings[i].pos = event.PositionRiver
			pos = event.PositionPostRiver
		default:
			pendings[i].pos = pos
		}
	}
}

// scan is the main annotation pass. Pot and chip snapshots reflect the
// state after each event; the acting player/amount annotation reflects the
// state before it, since that is the action a "calls" resolves against.
func (h *Hand) scan(gameID string, pendings []pending) error {
	var (
		pot          int
		actingID     string
		actingAmount *int
		remaining    = make(map[string]bool)
		chips        = make(map[string]int)
		sawStacks    bool
	)

	events := make([]event.Event, 0, len(pendings))
	for _, p := range pendings {
		ev := event.Event{
			Kind:          p.kind,
			Raw:           p.raw,
			PlayerID:      p.fields.PlayerID,
			PlayerName:    p.fields.PlayerName,
			Amount:        p.fields.Amount,
			Cards:         p.fields.Cards,
			AllIn:         p.fields.AllIn,
			Position:      p.pos,
			HandNum:       h.Num,
			ActingID:      actingID,
			ActingAmount:  actingAmount,
			StartingChips: h.StartingChips,
			At:            p.at,
			PrevAt:        p.prevAt,
			HandStart:     h.Start,
			HandEnd:       h.End,
			GameID:        gameID,
		}

		switch p.kind {
		case event.KindPlayerStacks:
			if sawStacks {
				return &parse.MalformedEventError{Kind: p.kind.String(), Marker: "a single Player stacks line per hand", Line: p.raw}
			}
			sawStacks = true
			starting := make([]int, 0, len(p.fields.Stacks))
			for _, s := range p.fields.Stacks {
				chips[s.PlayerID] = s.Chips
				remaining[s.PlayerID] = true
				h.StartingChips[s.PlayerID] = s.Chips
				h.StartingNames[s.PlayerID] = s.Name
				h.TotalChips += s.Chips
				starting = append(starting, s.Chips)
			}
			h.Gini = stats.Gini(starting)

		case event.KindSmallBlind, event.KindBigBlind:
			pot += *p.fields.Amount
			chips[p.fields.PlayerID] -= *p.fields.Amount
			actingID, actingAmount = p.fields.PlayerID, p.fields.Amount

		case event.KindCalls:
			// The original raiser remains the one being called.
			pot += *p.fields.Amount
			chips[p.fields.PlayerID] -= *p.fields.Amount

		case event.KindRaises:
			pot += *p.fields.Amount
			chips[p.fields.PlayerID] -= *p.fields.Amount
			actingID, actingAmount = p.fields.PlayerID, p.fields.Amount

		case event.KindFolds:
			delete(remaining, p.fields.PlayerID)

		case event.KindFlop:
			if h.Flop != nil {
				return &parse.MalformedEventError{Kind: p.kind.String(), Marker: "a single Flop line per hand", Line: p.raw}
			}
			h.Flop = p.fields.Cards
			actingID, actingAmount = "", nil

		case event.KindTurn:
			if h.Turn != "" || len(p.fields.Cards) == 0 {
				return &parse.MalformedEventError{Kind: p.kind.String(), Marker: "a single bracketed turn card", Line: p.raw}
			}
			h.Turn = p.fields.Cards[0]
			actingID, actingAmount = "", nil

		case event.KindRiver:
			if h.River != "" || len(p.fields.Cards) == 0 {
				return &parse.MalformedEventError{Kind: p.kind.String(), Marker: "a single bracketed river card", Line: p.raw}
			}
			h.River = p.fields.Cards[0]
			actingID, actingAmount = "", nil

		case event.KindUndealt:
			if err := h.backfillUndealt(p); err != nil {
				return err
			}

		case event.KindWins:
			// Split pots produce several Wins lines; append, never overwrite.
			h.Winners = append(h.Winners, event.Winner{
				PlayerID:  p.fields.PlayerID,
				Name:      p.fields.PlayerName,
				Collected: *p.fields.Amount,
				HandLabel: p.fields.HandLabel,
				Cards:     p.fields.Cards,
			})
			chips[p.fields.PlayerID] += *p.fields.Amount

		case event.KindStandsUp, event.KindQuits:
			delete(remaining, p.fields.PlayerID)

		case event.KindShows, event.KindMyCards, event.KindChecks,
			event.KindRequests, event.KindApproved, event.KindJoined,
			event.KindSitsIn:
			// No table-state effect.
		}

		ev.PotAfter = pot
		ev.Remaining = copySet(remaining)
		ev.Chips = copyCounts(chips)
		events = append(events, ev)
		h.PotSizes = append(h.PotSizes, pot)
	}

	h.Events = events
	for i := range h.Events {
		switch h.Events[i].Kind {
		case event.KindSmallBlind:
			if h.SmallBlind == nil {
				h.SmallBlind = &h.Events[i]
			}
		case event.KindBigBlind:
			if h.BigBlind == nil {
				h.BigBlind = &h.Events[i]
			}
		}
	}
	return nil
}

// backfillUndealt infers which streets never got dealt purely from the
// count of undealt cards: 1 means only the river is missing, 2 means turn
// and river, 5 means the whole board. The cards fill the missing slots in
// positional order.
func (h *Hand) backfillUndealt(p pending) error {
	cards := p.fields.Cards
	malformed := func(marker string) error {
		return &parse.MalformedEventError{Kind: p.kind.String(), Marker: marker, Line: p.raw}
	}
	switch len(cards) {
	case 1:
		if h.River != "" {
			return malformed("no river before 1 undealt card")
		}
		h.River = cards[0]
	case 2:
		if h.Turn != "" || h.River != "" {
			return malformed("no turn or river before 2 undealt cards")
		}
		h.Turn = cards[0]
		h.River = cards[1]
	case 5:
		if h.Flop != nil || h.Turn != "" || h.River != "" {
			return malformed("no dealt board before 5 undealt cards")
		}
		h.Flop = cards[:3]
		h.Turn = cards[3]
		h.River = cards[4]
	default:
		return malformed("1, 2 or 5 undealt cards")
	}
	return nil
}

// backfillWinners writes the winner annotations onto every event of the
// hand, including ones emitted before the Wins line. When a winner took the
// pot without a showdown combination, an earlier Shows line by the same
// player supplies the winning cards.
func (h *Hand) backfillWinners() {
	if len(h.Winners) == 0 {
		return
	}
	for i := range h.Winners {
		if len(h.Winners[i].Cards) > 0 {
			continue
		}
		for j := range h.Events {
			if h.Events[j].Kind == event.KindShows && h.Events[j].PlayerID == h.Winners[i].PlayerID {
				h.Winners[i].Cards = h.Events[j].Cards
				break
			}
		}
	}
	for j := range h.Events {
		h.Events[j].Winners = h.Winners
	}
}

func copySet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k := range src {
		dst[k] = true
	}
	return dst
}

func copyCounts(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
