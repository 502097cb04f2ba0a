// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GodHu777777/paper-reference-agent/internal/cite"
	"github.com/GodHu777777/paper-reference-agent/internal/resolver"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [title ...]",
	Short: "Resolve paper titles to bibliographic records",
	Long: `Resolve looks up each title across the configured sources, fills in
missing page ranges via the extraction cascade, and prints the results
in the requested format. Titles come from the arguments, or one per
line from a file passed with --file.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringP("file", "f", "", "read titles from a file, one per line")
	resolveCmd.Flags().Bool("no-cache", false, "bypass the resolution cache")
	resolveCmd.Flags().String("format", "ref", "output format: ref, bibtex, csl, json, or table")
	resolveCmd.Flags().Int("start", 1, "first reference number for ref output")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	format, _ := cmd.Flags().GetString("format")
	start, _ := cmd.Flags().GetInt("start")

	queries := args
	if file != "" {
		fromFile, err := readQueries(file)
		if err != nil {
			return err
		}
		queries = append(queries, fromFile...)
	}
	if len(queries) == 0 {
		return fmt.Errorf("no titles given: pass them as arguments or with --file")
	}

	app, err := resolver.Build(loadConfig(), os.Stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	results := app.ResolveBatch(cmd.Context(), queries, !noCache)
	if err := printResults(results, format, start); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil || r.Ref == nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries did not resolve", failed, len(results))
	}
	return nil
}

// readQueries reads one title per line, skipping blanks and # comments.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading titles: %w", err)
	}
	defer f.Close()

	var queries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading titles: %w", err)
	}
	return queries, nil
}

func printResults(results []resolver.Result, format string, start int) error {
	switch format {
	case "ref":
		n := start
		for _, r := range results {
			if r.Ref == nil {
				fmt.Printf("[?] %s (not resolved)\n", r.Query)
				continue
			}
			fmt.Println(cite.Reference(toPaper(r.Ref), n))
			n++
		}
		return nil
	case "bibtex":
		for _, r := range results {
			if r.Ref == nil {
				continue
			}
			fmt.Println(cite.BibTeXEntry(toPaper(r.Ref)))
			fmt.Println()
		}
		return nil
	case "csl":
		var papers []cite.Paper
		for _, r := range results {
			if r.Ref != nil {
				papers = append(papers, toPaper(r.Ref))
			}
		}
		return cite.FormatCSL(papers, os.Stdout)
	case "json":
		out := make([]resolvedJSON, 0, len(results))
		for _, r := range results {
			rec := resolvedJSON{Query: r.Query, Ref: r.Ref}
			if r.Err != nil {
				rec.Error = r.Err.Error()
			}
			out = append(out, rec)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tVENUE\tYEAR\tPAGES\tSOURCE")
		for _, r := range results {
			if r.Ref == nil {
				fmt.Fprintf(w, "%s\t(not resolved)\t\t\t\n", r.Query)
				continue
			}
			year := ""
			if r.Ref.Year != 0 {
				year = fmt.Sprintf("%d", r.Ref.Year)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.Ref.Title, r.Ref.Venue, year, r.Ref.Pages, r.Ref.Source)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown format %q: want ref, bibtex, csl, json, or table", format)
	}
}

type resolvedJSON struct {
	Query string          `json:"query"`
	Ref   *types.PaperRef `json:"record,omitempty"`
	Error string          `json:"error,omitempty"`
}

func toPaper(ref *types.PaperRef) cite.Paper {
	return cite.Paper{
		Title:   ref.Title,
		Authors: ref.Authors,
		Venue:   ref.Venue,
		Year:    ref.Year,
		Volume:  ref.Volume,
		Issue:   ref.Issue,
		Pages:   ref.Pages,
		DOI:     ref.DOI,
		URL:     ref.BestURL(),
	}
}
