package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Server status and cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatusHuman(serverURL, status)
	return nil
}

func printStatusHuman(server string, s *StatusResponse) {
	fmt.Printf("Server:     %s (%s)\n", server, s.Status)
	fmt.Printf("Version:    %s\n", s.Version)
	if !s.MovieData {
		fmt.Println("Movie data: unavailable (no TMDB API key configured)")
		return
	}
	fmt.Println("Movie data: available")
	if s.DetailCache != nil {
		printCacheLine("Details", s.DetailCache)
	}
	if s.SearchCache != nil {
		printCacheLine("Searches", s.SearchCache)
	}
}

func printCacheLine(name string, c *CacheStats) {
	total := c.Hits + c.Misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(c.Hits) / float64(total) * 100
	}
	fmt.Printf("%-9s   %d/%d entries, %d hits / %d misses (%.0f%%), %d evictions\n",
		name+":", c.Entries, c.Capacity, c.Hits, c.Misses, ratio, c.Evictions)
}
