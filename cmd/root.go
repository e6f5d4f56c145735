package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/gitwork/internal/aggregation"
	"github.com/masmgr/gitwork/internal/discovery"
	"github.com/masmgr/gitwork/internal/git"
	"github.com/masmgr/gitwork/internal/output"
	"github.com/masmgr/gitwork/internal/window"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "gitwork",
		Usage:     "Recent commit activity across every git repository under a directory",
		UsageText: "gitwork [options] [DIR]\n\nOptions must precede DIR.",
		ArgsUsage: "[DIR]",
		Version:   "1.0.0",
		Flags:     feedFlags(),
		Action:    feedAction,
	}
}

func feedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "max-depth",
			Aliases: []string{"L"},
			Usage:   "How many directory levels below DIR to search for repositories",
			Value:   discovery.DefaultMaxDepth,
		},
		&cli.IntFlag{
			Name:  "days",
			Usage: "Show commits from the last N days",
			Value: window.DefaultDays,
		},
		&cli.BoolFlag{
			Name:  "today",
			Usage: "Show commits since local midnight",
		},
		&cli.BoolFlag{
			Name:  "month",
			Usage: "Show commits since the first of the current month",
		},
		&cli.BoolFlag{
			Name:  "last-month",
			Usage: "Show commits from the previous calendar month",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Maximum number of commits to show (0 shows all)",
			Value:   aggregation.DefaultLimit,
		},
		&cli.BoolFlag{
			Name:  "remote",
			Usage: "Run 'git fetch --prune' in each repository first",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Show commits from every author, not only your git identity",
		},
		&cli.BoolFlag{
			Name:  "merges",
			Usage: "Include merge commits",
		},
		&cli.BoolFlag{
			Name:    "raw",
			Aliases: []string{"r"},
			Usage:   "Tab-separated output without colors or summary (same as --format raw)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, raw, json, csv, markdown)",
			Value:   string(output.FormatConsole),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of directories to skip (can be specified multiple times)",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "Repositories scanned in parallel (default: number of CPUs)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History reader (go-git, git-cli)",
			Value: string(git.BackendGoGit),
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log skipped repositories and failed fetches to stderr",
		},
	}
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
