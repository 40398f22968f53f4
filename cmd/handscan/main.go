package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Report  ReportCmd        `cmd:"" help:"Scan a directory of poker night exports and print standings"`
	Player  PlayerCmd        `cmd:"" help:"Show the per-game breakdown for one player"`
	Browse  BrowseCmd        `cmd:"" help:"Browse the hands of one export interactively"`
	Export  ExportCmd        `cmd:"" help:"Export a directory scan to a SQLite database"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handscan"),
		kong.Description("Parser and analyzer for poker night CSV hand logs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
