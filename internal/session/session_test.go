package session

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handscan/handscan/internal/player"
)

// writeExport writes one session CSV in export order (newest first).
func writeExport(t *testing.T, dir, name string, oldestFirst []string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{"entry", "at"}))
	at := time.Date(2023, 4, 1, 20, 0, 0, 0, time.UTC).Add(time.Duration(len(oldestFirst)) * time.Second)
	for i := len(oldestFirst) - 1; i >= 0; i-- {
		at = at.Add(-time.Second)
		require.NoError(t, w.Write([]string{oldestFirst[i], at.Format("2006-01-02T15:04:05.000Z")}))
	}
	w.Flush()
	require.NoError(t, w.Error())
}

func sessionOne() []string {
	return []string{
		`-- starting hand #1 (No Limit Texas Hold'em) (dealer: "A" @ "id1") --`,
		`The player "A" @ "id1" joined the game with a stack of 1000.`,
		`The player "B" @ "id2" joined the game with a stack of 1000.`,
		`Player stacks: #1 "A" @ "id1" (1000) | #2 "B" @ "id2" (1000)`,
		`"A" @ "id1" posts a small blind of 10`,
		`"B" @ "id2" posts a big blind of 20`,
		`"A" @ "id1" folds`,
		`"B" @ "id2" collected 30 from pot`,
	}
}

func sessionTwo() []string {
	return []string{
		`-- starting hand #1 (No Limit Texas Hold'em) (dealer: "C" @ "id9") --`,
		`The player "AliceAlt" @ "id9" joined the game with a stack of 500.`,
		`The player "B" @ "id2" joined the game with a stack of 500.`,
		`Player stacks: #1 "AliceAlt" @ "id9" (500) | #2 "B" @ "id2" (500)`,
		`"AliceAlt" @ "id9" posts a small blind of 10`,
		`"B" @ "id2" posts a big blind of 20`,
		`"AliceAlt" @ "id9" calls 10`,
		`"B" @ "id2" checks`,
		`Undealt cards: [2Clubs, 5Diamonds, 9Hearts, KSpades, AClubs]`,
		`"AliceAlt" @ "id9" collected 40 from pot with High Card (combination: AClubs, KSpades, 9Hearts, 5Diamonds, 2Clubs)`,
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "g1.csv", sessionOne())
	writeExport(t, dir, "g2.csv", sessionTwo())

	report, err := NewScanner(nil).Scan(context.Background(), dir, nil)
	require.NoError(t, err)

	assert.Len(t, report.Games, 2)
	assert.Equal(t, 2, report.TotalHands())
	assert.Empty(t, report.Rejected)
	assert.Empty(t, report.Failed)
	assert.Len(t, report.Players, 3)

	assert.Equal(t, 1, report.WinningHands.Count("High Card"))
	assert.Equal(t, 1, report.Cards.Count("2Clubs"))
}

func TestScan_IdentityGroups(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "g1.csv", sessionOne())
	writeExport(t, dir, "g2.csv", sessionTwo())

	report, err := NewScanner(nil).Scan(context.Background(), dir, map[string][]string{
		"alice": {"id1", "id9"},
	})
	require.NoError(t, err)
	require.Len(t, report.Players, 2)

	var alice *player.Player
	for _, p := range report.Players {
		if p.Label == "alice" {
			alice = p
		}
	}
	require.NotNil(t, alice)
	assert.Equal(t, []string{"id1", "id9"}, alice.IDs)
	assert.Equal(t, 2, alice.HandsPlayed)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 1500, alice.BuyIn)
	assert.Equal(t, 2, alice.GamesPlayed())
}

// Real exports log the session's founding buy-ins before the first hand
// marker; the money-flow table must still account for them.
func TestScan_BuyInsBeforeFirstHand(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "g1.csv", []string{
		`The game's creator has started the game.`,
		`The player "A" @ "id1" joined the game with a stack of 1000.`,
		`The player "B" @ "id2" joined the game with a stack of 1000.`,
		`-- starting hand #1 (No Limit Texas Hold'em) (dealer: "A" @ "id1") --`,
		`Player stacks: #1 "A" @ "id1" (1000) | #2 "B" @ "id2" (1000)`,
		`"A" @ "id1" posts a small blind of 10`,
		`"B" @ "id2" posts a big blind of 20`,
		`"A" @ "id1" folds`,
		`"B" @ "id2" collected 30 from pot`,
		`The player "B" @ "id2" quits the game with a stack of 1010.`,
	})

	report, err := NewScanner(nil).Scan(context.Background(), dir, nil)
	require.NoError(t, err)

	var b *player.Player
	for _, p := range report.Players {
		if p.Label == "id2" {
			b = p
		}
	}
	require.NotNil(t, b)
	assert.Equal(t, 1000, b.BuyIn)
	assert.Equal(t, 1010, b.LeaveTotal)
	assert.Equal(t, 10, b.Profit())
	assert.Equal(t, 1, b.HandsPlayed)
}

func TestScan_EmptyDirectory(t *testing.T) {
	_, err := NewScanner(nil).Scan(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
	var empty *EmptyDirectoryError
	require.ErrorAs(t, err, &empty)
}

func TestScan_UnreadableFileRecorded(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "g1.csv", sessionOne())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("no,header\nrow,here\n"), 0o644))

	report, err := NewScanner(nil).Scan(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Len(t, report.Games, 1)
	require.Len(t, report.Failed, 1)
	assert.Contains(t, report.Failed[0].Path, "bad.csv")
}

func TestScan_ManyFilesParallel(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		writeExport(t, dir, fmt.Sprintf("g%02d.csv", i), sessionOne())
	}

	report, err := NewScanner(nil).Scan(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Len(t, report.Games, 12)
	assert.Equal(t, 12, report.TotalHands())

	// Per-file results merge deterministically regardless of parse order.
	for _, p := range report.Players {
		assert.Equal(t, 12, p.HandsPlayed)
	}
}
