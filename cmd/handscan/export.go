package main

import (
	"github.com/handscan/handscan/cmd/handscan/shared"
	"github.com/handscan/handscan/internal/config"
	"github.com/handscan/handscan/internal/session"
	"github.com/handscan/handscan/internal/store"
)

// ExportCmd scans a directory and writes the results to SQLite.
type ExportCmd struct {
	Dir    string `kong:"arg,optional,help='Directory of CSV exports (defaults to the configured dir)'"`
	DB     string `kong:"default='handscan.db',help='SQLite database path'"`
	Config string `kong:"default='handscan.hcl',help='Configuration file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ExportCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	dir := c.Dir
	if dir == "" {
		dir = cfg.Dir
	}

	ctx := shared.SetupSignalHandler(logger)
	rep, err := session.NewScanner(logger).Scan(ctx, dir, cfg.GroupMap())
	if err != nil {
		return err
	}

	s, err := store.Open(c.DB, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveReport(ctx, rep); err != nil {
		return err
	}
	logger.Info("exported scan", "db", c.DB,
		"games", len(rep.Games), "hands", rep.TotalHands(), "players", len(rep.Players))
	return nil
}
