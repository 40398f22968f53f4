// Package report renders directory-scan results as styled terminal tables.
// Money amounts are scaled by the presentation divisor here and nowhere
// else; the core keeps raw chip units throughout.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/handscan/handscan/internal/fileutil"
	"github.com/handscan/handscan/internal/player"
	"github.com/handscan/handscan/internal/session"
	"github.com/handscan/handscan/internal/stats"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Renderer formats reports. The clock stamps generated output so tests can
// pin it.
type Renderer struct {
	divisor int
	clock   quartz.Clock
}

// NewRenderer returns a renderer using the given money divisor. A nil
// clock means wall-clock time.
func NewRenderer(divisor int, clock quartz.Clock) *Renderer {
	if divisor <= 0 {
		divisor = 100
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Renderer{divisor: divisor, clock: clock}
}

// Money formats a raw chip amount using the presentation divisor.
func (r *Renderer) Money(v int) string {
	if r.divisor == 1 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%.2f", float64(v)/float64(r.divisor))
}

// moneyf is Money for derived values that are no longer whole chips.
func (r *Renderer) moneyf(v float64) string {
	if r.divisor == 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v/float64(r.divisor))
}

// Standings renders the per-player money-flow table, sorted by descending
// profit.
func (r *Renderer) Standings(rep *session.Report) string {
	players := make([]*player.Player, len(rep.Players))
	copy(players, rep.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Profit() > players[j].Profit()
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render(" Standings "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf(
		"%-20s %6s %7s %6s %7s %10s %10s %10s",
		"player", "games", "hands", "wins", "win%", "buy-in", "left with", "profit")))

	for _, p := range players {
		name := p.Label
		if len(p.Names) > 0 {
			name = p.Names[0]
		}
		profit := r.Money(p.Profit())
		switch {
		case p.Profit() > 0:
			profit = winStyle.Render(profit)
		case p.Profit() < 0:
			profit = lossStyle.Render(profit)
		}
		fmt.Fprintf(&b, "%-20s %6d %7d %6d %6.1f%% %10s %10s %10s\n",
			truncate(name, 20),
			p.GamesPlayed(),
			p.HandsPlayed,
			p.Wins,
			p.WinRate()*100,
			r.Money(p.BuyIn),
			r.Money(p.LeaveTotal),
			profit)
	}
	return b.String()
}

// Distributions renders the global card and winning-hand-type frequencies.
func (r *Renderer) Distributions(rep *session.Report, topN int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Winning hands "))
	b.WriteString("\n\n")
	for _, e := range rep.WinningHands.Top(topN) {
		fmt.Fprintf(&b, "%-30s %6d\n", e.Key, e.Count)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(" Cards seen "))
	b.WriteString("\n\n")
	for _, e := range rep.Cards.Top(topN) {
		fmt.Fprintf(&b, "%-12s %6d\n", e.Key, e.Count)
	}
	return b.String()
}

// Player renders one merged player's cross-session detail.
func (r *Renderer) Player(p *player.Player) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", p.Label)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "IDs:          %s\n", strings.Join(p.IDs, ", "))
	fmt.Fprintf(&b, "Names:        %s\n", strings.Join(p.Names, ", "))
	fmt.Fprintf(&b, "Games:        %d\n", p.GamesPlayed())
	fmt.Fprintf(&b, "Hands:        %d\n", p.HandsPlayed)
	fmt.Fprintf(&b, "Wins:         %d (%.1f%%)\n", p.Wins, p.WinRate()*100)
	fmt.Fprintf(&b, "Buy-in:       %s\n", r.Money(p.BuyIn))
	fmt.Fprintf(&b, "Left with:    %s\n", r.Money(p.LeaveTotal))
	fmt.Fprintf(&b, "Profit:       %s\n", r.Money(p.Profit()))
	fmt.Fprintf(&b, "Largest win:  %s\n", r.Money(p.LargestWin))
	fmt.Fprintf(&b, "Largest loss: %s\n", r.Money(p.LargestLoss))
	if len(p.AllIns) > 0 {
		var s stats.Summary
		for _, v := range p.AllIns {
			s.Add(float64(v))
		}
		fmt.Fprintf(&b, "All-ins:      %d (avg %s, median %s, largest %s)\n",
			s.Count, r.moneyf(s.Mean()), r.moneyf(s.Median()), r.moneyf(s.Percentile(1)))
	}

	if len(p.Games) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf(
			"%-24s %7s %6s %10s", "game", "hands", "wins", "net chips")))
		for _, d := range p.Games {
			fmt.Fprintf(&b, "%-24s %7d %6d %10s\n",
				truncate(d.GameID, 24), d.Hands, d.Wins, r.Money(d.NetChips))
		}
	}
	return b.String()
}

// Summary renders the scan health footer: what was parsed and what was
// dropped, so the caller can judge whether rejections are material.
func (r *Renderer) Summary(rep *session.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d files, %d hands, %d players\n",
		len(rep.Games), rep.TotalHands(), len(rep.Players))

	var pots stats.Summary
	for _, g := range rep.Games {
		for _, h := range g.Hands {
			if len(h.Events) > 0 {
				pots.Add(float64(h.FinalPot()))
			}
		}
	}
	if pots.Count > 0 {
		fmt.Fprintf(&b, "pot sizes: avg %s, median %s, p95 %s, stddev %s\n",
			r.moneyf(pots.Mean()), r.moneyf(pots.Median()),
			r.moneyf(pots.Percentile(0.95)), r.moneyf(pots.StdDev()))
	}
	if len(rep.Rejected) > 0 {
		fmt.Fprintf(&b, "%s\n", lossStyle.Render(fmt.Sprintf(
			"%d of %d hands rejected:", len(rep.Rejected), rep.TotalHands()+len(rep.Rejected))))
		for _, rej := range rep.Rejected {
			fmt.Fprintf(&b, "  %s hand #%d: %v\n", rej.GameID, rej.HandNum, rej.Err)
		}
	}
	for _, f := range rep.Failed {
		fmt.Fprintf(&b, "%s\n", lossStyle.Render(fmt.Sprintf("unreadable file: %s (%v)", f.Path, f.Err)))
	}
	if rep.Unrecognized > 0 {
		fmt.Fprintf(&b, "%d unrecognized lines skipped\n", rep.Unrecognized)
	}
	fmt.Fprintf(&b, "%s\n", dimStyle.Render("generated "+r.clock.Now().UTC().Format(time.RFC3339)))
	return b.String()
}

// WriteFile writes rendered output to disk atomically.
func (r *Renderer) WriteFile(path, content string) error {
	return fileutil.WriteAtomic(path, []byte(content), 0o644)
}

// truncate shortens display names by rune so multi-byte names keep a valid
// final character before the ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
