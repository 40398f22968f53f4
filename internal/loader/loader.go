// Package loader reads exported hand-history CSVs into ordered, decoded
// lines and splits them into per-hand groups for reconstruction.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/handscan/handscan/internal/hand"
	"github.com/handscan/handscan/internal/parse"
)

// The export stores timestamps as ISO-8601 with fractional seconds; they
// get truncated to whole seconds before parsing.
const timestampLayout = "2006-01-02T15:04:05"

const handMarker = " starting hand "

// LoadFile reads one exported CSV from disk. The export is Latin-1 encoded
// and newest-first; the returned lines are UTF-8, suit-decoded and
// oldest-first.
func LoadFile(path string) ([]hand.Line, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

// Read decodes one export from r. See LoadFile.
func Read(r io.Reader) ([]hand.Line, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entryCol, atCol, err := headerColumns(records[0])
	if err != nil {
		return nil, err
	}

	lines := make([]hand.Line, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) <= entryCol || len(rec) <= atCol {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i+2, max(entryCol, atCol)+1, len(rec))
		}
		at, err := parseTimestamp(rec[atCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, hand.Line{
			Text: parse.DecodeSuits(rec[entryCol]),
			At:   at,
		})
	}

	// Rows are stored newest-first; processing order is oldest-first.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}

func headerColumns(header []string) (entryCol, atCol int, err error) {
	entryCol, atCol = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "entry":
			entryCol = i
		case "at":
			atCol = i
		}
	}
	if entryCol < 0 || atCol < 0 {
		return 0, 0, fmt.Errorf("csv: header must contain entry and at columns, got %v", header)
	}
	return entryCol, atCol, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(timestampLayout) {
		s = s[:len(timestampLayout)]
	}
	at, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return at, nil
}

// SplitHands groups oldest-first lines into one group per hand, from each
// " starting hand " marker to the line before the next one. Lines before
// the first marker form a marker-less leading group: the session's creation
// banner and initial seatings carry the founding buy-ins, so the first
// marker closes that group out and yields it like any other. A marker line
// always closes the open group, which is also what separates a new
// session's hand #1 from the next hand of the same session when multiple
// exports are concatenated.
func SplitHands(lines []hand.Line) [][]hand.Line {
	var groups [][]hand.Line
	var current []hand.Line
	for _, ln := range lines {
		if strings.Contains(ln.Text, handMarker) {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = []hand.Line{ln}
			continue
		}
		current = append(current, ln)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
