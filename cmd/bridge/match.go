package main

import (
	"github.com/spf13/cobra"

	"github.com/basketbridge/backend/internal/usecase"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Auto-match plain grocery names to both stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}

		items, err := readItems(cmd)
		if err != nil {
			return err
		}

		noCache, _ := cmd.Flags().GetBool("no-cache")
		searchLimit, _ := cmd.Flags().GetInt("search-limit")

		report, err := svc.matcher.MatchItems(cmd.Context(), items, usecase.MatchOptions{
			NoCache:             noCache,
			SearchLimitOverride: searchLimit,
		})
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func init() {
	itemFlags(matchCmd)
	matchCmd.Flags().Bool("no-cache", false, "disable match-cache reads and writes")
	matchCmd.Flags().Int("search-limit", 0, "override configured search limit")
	rootCmd.AddCommand(matchCmd)
}
