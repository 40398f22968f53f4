package main

import (
	"fmt"
	"strings"

	"github.com/handscan/handscan/cmd/handscan/shared"
	"github.com/handscan/handscan/internal/config"
	"github.com/handscan/handscan/internal/report"
	"github.com/handscan/handscan/internal/session"
)

// PlayerCmd prints one player's per-game breakdown.
type PlayerCmd struct {
	Label   string `kong:"arg,help='Player label (group label, or platform ID for ungrouped players)'"`
	Dir     string `kong:"optional,help='Directory of CSV exports (defaults to the configured dir)'"`
	Config  string `kong:"default='handscan.hcl',help='Configuration file'"`
	Divisor int    `kong:"help='Chips per currency unit, overrides the configured divisor'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	dir := c.Dir
	if dir == "" {
		dir = cfg.Dir
	}
	divisor := c.Divisor
	if divisor == 0 {
		divisor = cfg.Divisor
	}

	ctx := shared.SetupSignalHandler(logger)
	rep, err := session.NewScanner(logger).Scan(ctx, dir, cfg.GroupMap())
	if err != nil {
		return err
	}

	r := report.NewRenderer(divisor, nil)
	for _, p := range rep.Players {
		if strings.EqualFold(p.Label, c.Label) {
			fmt.Println(r.Player(p))
			return nil
		}
	}
	return fmt.Errorf("no player %q in %s", c.Label, dir)
}
