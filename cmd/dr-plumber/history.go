package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dr-plumber/internal/platform/tui"
	"github.com/vovakirdan/dr-plumber/internal/storage"
)

func newHistoryCmd(f *flags) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished games",
		Long: `Show the most recent finished games and overall totals.
In a terminal the list opens in a scrollable table; otherwise it is printed.

Examples:
  dr-plumber history
  dr-plumber history --limit 50
  dr-plumber history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.Open(f.dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if clearAll {
				n, err := store.ClearHistory()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d games.\n", n)
				return nil
			}

			games, err := store.RecentGames(limit)
			if err != nil {
				return err
			}
			totals, err := store.Totals()
			if err != nil {
				return err
			}

			fd := int(os.Stdout.Fd())
			if cmd.OutOrStdout() == os.Stdout && term.IsTerminal(fd) {
				w, h, err := term.GetSize(fd)
				if err != nil {
					w, h = 80, 24
				}
				return tui.RunHistory(games, totals, w, h)
			}
			printHistory(cmd.OutOrStdout(), games, totals)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of games to show")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all recorded games")
	return cmd
}

// printHistory writes the history as plain aligned text.
func printHistory(w io.Writer, games []storage.GameRecord, totals storage.Totals) {
	fmt.Fprintln(w, "Game History")
	fmt.Fprintln(w, tui.TotalsLine(totals))
	fmt.Fprintln(w)

	if len(games) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return
	}

	cols := tui.HistoryColumns()
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", cols[i].Width, c)
		}
		fmt.Fprintln(w, strings.TrimRight("  "+strings.Join(parts, "  "), " "))
	}

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
		rule[i] = strings.Repeat("-", len(c.Title))
	}
	line(header)
	line(rule)
	for _, row := range tui.HistoryRows(games) {
		line(row)
	}
}
