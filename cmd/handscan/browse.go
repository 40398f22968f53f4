package main

import (
	"path/filepath"

	"github.com/handscan/handscan/cmd/handscan/shared"
	"github.com/handscan/handscan/internal/game"
	"github.com/handscan/handscan/internal/loader"
	"github.com/handscan/handscan/internal/tui"
)

// BrowseCmd opens one export in the interactive hand browser.
type BrowseCmd struct {
	File  string `kong:"arg,type='existingfile',help='CSV export to browse'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *BrowseCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	lines, err := loader.LoadFile(c.File)
	if err != nil {
		return err
	}
	g := game.Build(filepath.Base(c.File), loader.SplitHands(lines), logger)

	return tui.Run(g, logger)
}
