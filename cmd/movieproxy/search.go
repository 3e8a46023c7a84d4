package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/movieproxy/pkg/title"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search movies by title",
	Long: `Search movies by title.

Examples:
  movieproxy search "The Matrix"
  movieproxy search the avengers --best
  movieproxy search inception --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("best", false, "Show only the closest title match")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	best, _ := cmd.Flags().GetBool("best")

	client := NewClient(serverURL)
	results, err := client.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if best {
		return printBestMatch(query, results)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results.Results) == 0 {
		fmt.Println("No movies found")
		return nil
	}

	printSearchHuman(results)
	return nil
}

func printSearchHuman(r *SearchResponse) {
	fmt.Printf("Found %d movies for %q (%.2fms):\n\n", r.TotalResults, r.Query, r.DurationMs)
	fmt.Printf("  # │ %-42s │ %-10s │ %8s\n", "TITLE", "RELEASED", "ID")
	fmt.Println("────┼────────────────────────────────────────────┼────────────┼──────────")

	for i, item := range r.Results {
		name := item.Title
		if len(name) > 42 {
			name = name[:39] + "..."
		}
		released := ""
		if item.ReleaseDate != nil {
			released = *item.ReleaseDate
		}
		fmt.Printf(" %2d │ %-42s │ %-10s │ %8d\n", i+1, name, released, item.MovieID)
	}
}

// printBestMatch ranks the results against the query and shows the winner.
func printBestMatch(query string, r *SearchResponse) error {
	if len(r.Results) == 0 {
		return fmt.Errorf("no movies found for %q", query)
	}

	titles := make([]string, len(r.Results))
	for i, item := range r.Results {
		titles[i] = item.Title
	}

	m := title.BestMatch(query, titles)
	if m.Index < 0 {
		return fmt.Errorf("no match for %q", query)
	}
	picked := r.Results[m.Index]

	if jsonOutput {
		printJSON(map[string]any{
			"match":      picked,
			"score":      m.Score,
			"confidence": m.Confidence.String(),
		})
		return nil
	}

	released := ""
	if picked.ReleaseDate != nil {
		released = " (" + *picked.ReleaseDate + ")"
	}
	fmt.Printf("%s%s  [id %d, %s confidence]\n", picked.Title, released, picked.MovieID, m.Confidence)
	return nil
}
