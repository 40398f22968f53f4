package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Kind
	}{
		{"small blind", `"alice" @ "x1f2" posts a small blind of 10`, KindSmallBlind},
		{"big blind", `"bob" @ "y3g4" posts a big blind of 20`, KindBigBlind},
		{"fold", `"alice" @ "x1f2" folds`, KindFolds},
		{"call", `"bob" @ "y3g4" calls 200`, KindCalls},
		{"raise", `"alice" @ "x1f2" raises to 400`, KindRaises},
		{"bet", `"alice" @ "x1f2" bets 150`, KindRaises},
		{"check", `"bob" @ "y3g4" checks`, KindChecks},
		{"win", `"bob" @ "y3g4" collected 430 from pot with Two Pairs, A's & 8's (combination: AClubs, ADiamonds, 8Spades, 8Hearts, KClubs)`, KindWins},
		{"show", `"alice" @ "x1f2" shows a AClubs, KDiamonds.`, KindShows},
		{"flop", `Flop:  [2Clubs, 5Diamonds, 9Hearts]`, KindFlop},
		{"turn", `Turn: 2Clubs, 5Diamonds, 9Hearts [KSpades]`, KindTurn},
		{"river", `River: 2Clubs, 5Diamonds, 9Hearts, KSpades [AClubs]`, KindRiver},
		{"undealt", `Undealt cards: [2Clubs, 5Diamonds, 9Hearts, KSpades, AClubs]`, KindUndealt},
		{"player stacks", `Player stacks: #1 "alice" @ "x1f2" (1000) | #2 "bob" @ "y3g4" (1000)`, KindPlayerStacks},
		{"my cards", `Your hand is AClubs, KDiamonds`, KindMyCards},
		{"requests", `The player "carol" @ "z5h6" requested a seat.`, KindRequests},
		{"approved", `The admin approved the player "carol" @ "z5h6" participation with a stack of 1000.`, KindApproved},
		{"joined", `The player "carol" @ "z5h6" joined the game with a stack of 1000.`, KindJoined},
		{"stands up", `The player "carol" @ "z5h6" stand up with the stack of 1350.`, KindStandsUp},
		{"sits in", `The player "carol" @ "z5h6" sit back with the stack of 1350.`, KindSitsIn},
		{"quits", `The player "carol" @ "z5h6" quits the game with a stack of 1350.`, KindQuits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := Classify(tt.line)
			assert.True(t, ok, "line should classify: %s", tt.line)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestClassify_Noise(t *testing.T) {
	noise := []string{
		"The game's creator has started the game.",
		"The game has been paused.",
		"",
		"dead blind adjustment",
	}
	for _, line := range noise {
		kind, ok := Classify(line)
		assert.False(t, ok, "expected no match for %q, got %s", line, kind)
	}
}

// A fold sentence must not be swallowed by looser predicates further down
// the rule table, and admin lines must win over action predicates.
func TestClassify_Priority(t *testing.T) {
	kind, ok := Classify(`Player stacks: #1 "he folds often" @ "x1f2" (500)`)
	assert.True(t, ok)
	assert.Equal(t, KindPlayerStacks, kind)
}

func TestEventKindPredicates(t *testing.T) {
	assert.True(t, (&Event{Kind: KindFlop}).IsBoard())
	assert.True(t, (&Event{Kind: KindUndealt}).IsBoard())
	assert.False(t, (&Event{Kind: KindCalls}).IsBoard())

	assert.True(t, (&Event{Kind: KindRaises}).IsMonetary())
	assert.False(t, (&Event{Kind: KindFolds}).IsMonetary())
}
