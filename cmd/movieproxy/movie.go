package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show details for a movie by TMDB ID",
	Long: `Show details for a movie by TMDB ID.

Examples:
  movieproxy movie 24428
  movieproxy movie 24428 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runMovieCmd,
}

func init() {
	rootCmd.AddCommand(movieCmd)
}

func runMovieCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid movie ID: %s", args[0])
	}

	client := NewClient(serverURL)
	movie, err := client.Movie(id)
	if err != nil {
		return fmt.Errorf("movie lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(movie)
		return nil
	}

	printMovieHuman(movie)
	return nil
}

func printMovieHuman(m *MovieDetailsResponse) {
	fmt.Printf("Title:     %s\n", m.Title)
	fmt.Printf("TMDB ID:   %d\n", m.MovieID)
	if m.ReleaseDate != nil {
		fmt.Printf("Released:  %s\n", *m.ReleaseDate)
	}
	fmt.Printf("Rating:    %.1f\n", m.Rating)
	if m.Summary != "" {
		fmt.Printf("\n%s\n", m.Summary)
	}
	fmt.Printf("\n(%.2fms)\n", m.DurationMs)
}
