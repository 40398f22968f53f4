// Package parse extracts typed fields from classified hand-history lines.
// Each event kind has a small, independently testable extractor built on
// anchored markers and regular expressions rather than chained substring
// slicing.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/handscan/handscan/internal/event"
)

const allInSuffix = " and go all in"

// Fields holds the raw typed values pulled out of one line. Which fields
// are populated depends on the event kind.
type Fields struct {
	PlayerID   string
	PlayerName string
	Amount     *int
	AllIn      bool
	Cards      []string
	HandNum    int
	HandLabel  string      // winning hand type on a Wins line
	Stacks     []SeatStack // one per seated player on a PlayerStacks line
}

// SeatStack is one player's entry on a "Player stacks:" line.
type SeatStack struct {
	PlayerID string
	Name     string
	Chips    int
}

var (
	// Identity is the literal text `"<name>" @ "<id>"`.
	identityRe = regexp.MustCompile(`"([^"]+)" @ "([^"]+)"`)
	bracketRe  = regexp.MustCompile(`\[([^\]]*)\]`)
	seatChips  = regexp.MustCompile(`\((\d+)\)`)
	handNumRe  = regexp.MustCompile(`starting hand #(\d+) \(`)
)

// amountMarkers maps each kind that carries an amount to the literal text
// preceding it.
var amountMarkers = map[event.Kind]string{
	event.KindSmallBlind: "posts a small blind of ",
	event.KindBigBlind:   "posts a big blind of ",
	event.KindCalls:      " calls ",
	event.KindWins:       " collected ",
	event.KindJoined:     "stack of ",
	event.KindApproved:   "stack of ",
	event.KindQuits:      "stack of ",
	event.KindStandsUp:   "stack of ",
	event.KindSitsIn:     "stack of ",
}

// Extract pulls the typed fields for a line already classified as kind.
// A missing marker or non-numeric amount yields a MalformedEventError.
func Extract(kind event.Kind, line string) (Fields, error) {
	var f Fields

	switch kind {
	case event.KindRequests, event.KindChecks, event.KindFolds:
		return extractIdentityOnly(kind, line)

	case event.KindSmallBlind, event.KindBigBlind, event.KindCalls,
		event.KindJoined, event.KindApproved, event.KindQuits,
		event.KindStandsUp, event.KindSitsIn:
		f, err := extractIdentityOnly(kind, line)
		if err != nil {
			return f, err
		}
		return extractAmount(kind, line, amountMarkers[kind], f)

	case event.KindRaises:
		f, err := extractIdentityOnly(kind, line)
		if err != nil {
			return f, err
		}
		marker := " raises to "
		if !strings.Contains(line, marker) {
			marker = " bets "
		}
		return extractAmount(kind, line, marker, f)

	case event.KindWins:
		return extractWins(line)

	case event.KindShows:
		f, err := extractIdentityOnly(kind, line)
		if err != nil {
			return f, err
		}
		f.Cards = markerCards(line, "shows a ")
		return f, nil

	case event.KindMyCards:
		f.Cards = markerCards(line, "Your hand is ")
		return f, nil

	case event.KindFlop, event.KindTurn, event.KindRiver, event.KindUndealt:
		cards, ok := bracketCards(line)
		if !ok {
			return f, &MalformedEventError{Kind: kind.String(), Marker: "[", Line: line}
		}
		f.Cards = cards
		return f, nil

	case event.KindPlayerStacks:
		return extractPlayerStacks(line)
	}

	return f, nil
}

// ExtractHandNum parses N from the `starting hand #<N> (` marker on a
// hand's first line. Returns 0 when the marker is absent.
func ExtractHandNum(line string) int {
	m := handNumRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func extractIdentityOnly(kind event.Kind, line string) (Fields, error) {
	var f Fields
	m := identityRe.FindStringSubmatch(line)
	if m == nil {
		return f, &MalformedEventError{Kind: kind.String(), Marker: `"<name>" @ "<id>"`, Line: line}
	}
	f.PlayerName = m[1]
	f.PlayerID = m[2]
	return f, nil
}

func extractAmount(kind event.Kind, line, marker string, f Fields) (Fields, error) {
	_, rest, found := strings.Cut(line, marker)
	if !found {
		return f, &MalformedEventError{Kind: kind.String(), Marker: marker, Line: line}
	}
	if strings.Contains(rest, allInSuffix) {
		f.AllIn = true
		rest = strings.Replace(rest, allInSuffix, "", 1)
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return f, &MalformedEventError{Kind: kind.String(), Marker: marker, Line: line}
	}
	n, err := strconv.Atoi(strings.TrimRight(fields[0], ".,"))
	if err != nil {
		return f, &MalformedEventError{Kind: kind.String(), Marker: marker, Line: line}
	}
	f.Amount = &n
	return f, nil
}

func extractWins(line string) (Fields, error) {
	f, err := extractIdentityOnly(event.KindWins, line)
	if err != nil {
		return f, err
	}
	f, err = extractAmount(event.KindWins, line, amountMarkers[event.KindWins], f)
	if err != nil {
		return f, err
	}

	// Optional winning-hand label and showdown combination, e.g.
	// `collected 430 from pot with Flush (combination: ...)`.
	if _, rest, found := strings.Cut(line, "from pot with "); found {
		label, _, _ := strings.Cut(rest, " (combination:")
		f.HandLabel = strings.TrimSpace(label)
	}
	if _, rest, found := strings.Cut(line, "combination: "); found {
		rest, _, _ = strings.Cut(rest, ")")
		f.Cards = splitCards(rest)
	}
	return f, nil
}

// extractPlayerStacks decodes the one line per hand that lists every seated
// player as repeated `#"<name>" @ "<id>" (<chips>)` groups.
func extractPlayerStacks(line string) (Fields, error) {
	var f Fields
	_, rest, found := strings.Cut(line, "Player stacks:")
	if !found {
		return f, &MalformedEventError{Kind: event.KindPlayerStacks.String(), Marker: "Player stacks:", Line: line}
	}
	for _, group := range strings.Split(rest, "#") {
		id := identityRe.FindStringSubmatch(group)
		if id == nil {
			continue // leading chunk before the first '#'
		}
		chips := seatChips.FindStringSubmatch(group)
		if chips == nil {
			return f, &MalformedEventError{Kind: event.KindPlayerStacks.String(), Marker: "(<chips>)", Line: line}
		}
		n, err := strconv.Atoi(chips[1])
		if err != nil {
			return f, &MalformedEventError{Kind: event.KindPlayerStacks.String(), Marker: "(<chips>)", Line: line}
		}
		f.Stacks = append(f.Stacks, SeatStack{PlayerID: id[2], Name: id[1], Chips: n})
	}
	if len(f.Stacks) == 0 {
		return f, &MalformedEventError{Kind: event.KindPlayerStacks.String(), Marker: "#", Line: line}
	}
	return f, nil
}

// bracketCards returns the comma-separated tokens inside the first [...].
func bracketCards(line string) ([]string, bool) {
	m := bracketRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return splitCards(m[1]), true
}

// markerCards returns the comma-separated cards following a literal marker,
// stripped of a trailing sentence period.
func markerCards(line, marker string) []string {
	_, rest, found := strings.Cut(line, marker)
	if !found {
		return nil
	}
	return splitCards(strings.TrimSuffix(strings.TrimSpace(rest), "."))
}

func splitCards(s string) []string {
	var cards []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			cards = append(cards, tok)
		}
	}
	return cards
}
