package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccumulator() *Accumulator {
	acc := NewAccumulator()

	a := acc.Partial("id1")
	a.Names["Alice"] = true
	d := a.Detail("g1.csv")
	d.Hands = 10
	d.Wins = 3
	d.BuyIn = 1000
	d.LeaveTotal = 1400
	d.LargestWin = 200
	d.LargestLoss = -50
	d.AllIns = []int{500}

	b := acc.Partial("id9")
	b.Names["Alice2"] = true
	d2 := b.Detail("g2.csv")
	d2.Hands = 5
	d2.Wins = 1
	d2.BuyIn = 500
	d2.LeaveTotal = 300
	d2.LargestLoss = -120

	c := acc.Partial("id2")
	c.Names["Bob"] = true
	d3 := c.Detail("g1.csv")
	d3.Hands = 10
	d3.Wins = 7

	return acc
}

func TestMerge_Groups(t *testing.T) {
	players, err := Merge(seedAccumulator(), map[string][]string{
		"alice": {"id1", "id9"},
	})
	require.NoError(t, err)
	require.Len(t, players, 2)

	var alice, bob *Player
	for _, p := range players {
		switch p.Label {
		case "alice":
			alice = p
		case "id2":
			bob = p
		}
	}
	require.NotNil(t, alice)
	require.NotNil(t, bob)

	// Grouped IDs merge into one record with summed counts.
	assert.Equal(t, []string{"id1", "id9"}, alice.IDs)
	assert.ElementsMatch(t, []string{"Alice", "Alice2"}, alice.Names)
	assert.Equal(t, 15, alice.HandsPlayed)
	assert.Equal(t, 4, alice.Wins)
	assert.Equal(t, 1500, alice.BuyIn)
	assert.Equal(t, 1700, alice.LeaveTotal)
	assert.Equal(t, 200, alice.Profit())
	assert.Equal(t, 200, alice.LargestWin)
	assert.Equal(t, -120, alice.LargestLoss)
	assert.Equal(t, []int{500}, alice.AllIns)
	assert.Equal(t, 2, alice.GamesPlayed())
	assert.InDelta(t, 4.0/15.0, alice.WinRate(), 1e-9)

	// Per-game detail survives the merge.
	require.Len(t, alice.Games, 2)
	assert.Equal(t, "g1.csv", alice.Games[0].GameID)
	assert.Equal(t, "g2.csv", alice.Games[1].GameID)

	// Ungrouped IDs pass through as singletons.
	assert.Equal(t, []string{"id2"}, bob.IDs)
	assert.Equal(t, 10, bob.HandsPlayed)
	assert.InDelta(t, 0.7, bob.WinRate(), 1e-9)
}

func TestMerge_NoGroups(t *testing.T) {
	players, err := Merge(seedAccumulator(), nil)
	require.NoError(t, err)
	assert.Len(t, players, 3)
}

func TestMerge_DoubleAssignedID(t *testing.T) {
	_, err := Merge(seedAccumulator(), map[string][]string{
		"alice": {"id1"},
		"bob":   {"id1", "id2"},
	})
	require.Error(t, err)
	var grouping *IdentityGroupingError
	require.True(t, errors.As(err, &grouping))
	assert.Equal(t, "id1", grouping.ID)
}

func TestMerge_GroupForUnseenID(t *testing.T) {
	// Groups may mention IDs that never appeared; they simply contribute
	// nothing.
	players, err := Merge(seedAccumulator(), map[string][]string{
		"ghost": {"nobody"},
	})
	require.NoError(t, err)
	assert.Len(t, players, 3)
}
