package main

import (
	"fmt"
	"strings"

	"github.com/handscan/handscan/cmd/handscan/shared"
	"github.com/handscan/handscan/internal/config"
	"github.com/handscan/handscan/internal/report"
	"github.com/handscan/handscan/internal/session"
)

// ReportCmd scans a directory of exports and prints the session report.
type ReportCmd struct {
	Dir     string `kong:"arg,optional,help='Directory of CSV exports (defaults to the configured dir)'"`
	Config  string `kong:"default='handscan.hcl',help='Configuration file'"`
	Divisor int    `kong:"help='Chips per currency unit, overrides the configured divisor'"`
	Top     int    `kong:"default='10',help='How many entries to show per distribution'"`
	Output  string `kong:"short='o',help='Write the report to a file instead of stdout'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ReportCmd) Run() error {
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
	content := strings.Join([]string{
		r.Standings(rep),
		r.Distributions(rep, c.Top),
		r.Summary(rep),
	}, "\n")

	if c.Output != "" {
		if err := r.WriteFile(c.Output, content); err != nil {
			return err
		}
		logger.Info("report written", "path", c.Output)
		return nil
	}
	fmt.Println(content)
	return nil
}
