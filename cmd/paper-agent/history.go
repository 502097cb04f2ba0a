// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GodHu777777/paper-reference-agent/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past resolutions",
	Long: `History lists past resolutions from the local log, newest first.
With --search, entries are matched against title and query via
full-text search instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("search", "", "full-text search over titles and queries")
	historyCmd.Flags().Int("limit", 20, "maximum entries to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	if cfg.History.Path == "" {
		return fmt.Errorf("history is disabled (history.path is empty)")
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []history.Entry
	if search != "" {
		entries, err = store.Search(cmd.Context(), search, limit)
	} else {
		entries, err = store.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No history entries.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tQUERY\tTITLE\tVENUE\tPAGES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ResolvedAt.Format("2006-01-02 15:04"),
			e.Query, e.Ref.Title, e.Ref.Venue, e.Ref.Pages)
	}
	return w.Flush()
}
