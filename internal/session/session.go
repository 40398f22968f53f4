// Package session orchestrates a full directory scan: every file is one
// independent session, parsed in parallel, then folded into cross-session
// player standings and global distributions.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/handscan/handscan/internal/game"
	"github.com/handscan/handscan/internal/loader"
	"github.com/handscan/handscan/internal/player"
	"github.com/handscan/handscan/internal/stats"
)

// EmptyDirectoryError reports a scan directory holding no session files.
type EmptyDirectoryError struct {
	Dir string
}

func (e *EmptyDirectoryError) Error() string {
	return fmt.Sprintf("no session files found in %s", e.Dir)
}

// FileError records one file that could not be loaded at all. Individual
// malformed hands are recorded per game instead.
type FileError struct {
	Path string
	Err  error
}

// Report is the directory-wide result.
type Report struct {
	Dir     string
	Games   []*game.Game
	Players []*player.Player

	Cards        *stats.Distribution
	WinningHands *stats.Distribution

	Rejected     []game.RejectedHand
	Failed       []FileError
	Unrecognized int
}

// TotalHands returns the number of successfully reconstructed hands across
// all games.
func (r *Report) TotalHands() int {
	total := 0
	for _, g := range r.Games {
		total += g.HandCount()
	}
	return total
}

// Scanner runs directory scans. The per-file parses are independent and
// fan out across workers; the shared accumulator is only ever written by
// the coordinating goroutine after all parses complete.
type Scanner struct {
	logger  *log.Logger
	workers int
}

// NewScanner returns a scanner logging through the given logger.
func NewScanner(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		logger:  logger.WithPrefix("session"),
		workers: runtime.NumCPU(),
	}
}

// Scan parses every file in dir and merges the results into one report.
// Identity groups declare duplicate platform IDs; a malformed grouping
// fails the merge step and therefore the scan.
func (s *Scanner) Scan(ctx context.Context, dir string, groups map[string][]string) (*Report, error) {
	paths, err := sessionFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &EmptyDirectoryError{Dir: dir}
	}

	games := make([]*game.Game, len(paths))
	failures := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			games[i], failures[i] = s.parseFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Dir:          dir,
		Cards:        stats.NewDistribution(),
		WinningHands: stats.NewDistribution(),
	}
	acc := player.NewAccumulator()
	for i, gm := range games {
		if failures[i] != nil {
			s.logger.Warn("skipping unreadable file", "path", paths[i], "err", failures[i])
			report.Failed = append(report.Failed, FileError{Path: paths[i], Err: failures[i]})
			continue
		}
		report.Games = append(report.Games, gm)
		report.Cards.Merge(gm.Cards)
		report.WinningHands.Merge(gm.WinningHands)
		report.Rejected = append(report.Rejected, gm.Rejected...)
		report.Unrecognized += gm.Unrecognized
		game.Aggregate(acc, gm)
	}

	players, err := player.Merge(acc, groups)
	if err != nil {
		return nil, fmt.Errorf("merging identity groups: %w", err)
	}
	report.Players = players

	s.logger.Info("scan complete",
		"files", len(paths),
		"games", len(report.Games),
		"hands", report.TotalHands(),
		"rejected", len(report.Rejected),
		"players", len(players))
	return report, nil
}

// parseFile loads one session export and builds its Game.
func (s *Scanner) parseFile(path string) (*game.Game, error) {
	lines, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	groups := loader.SplitHands(lines)
	return game.Build(filepath.Base(path), groups, s.logger), nil
}

// sessionFiles lists the regular files of dir, sorted for deterministic
// reports. Hidden files are skipped.
func sessionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
