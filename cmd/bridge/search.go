package main

import (
	"github.com/spf13/cobra"

	"github.com/basketbridge/backend/internal/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search both store catalogs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		query := args[0]

		results := make(map[string][]domain.Candidate, len(svc.catalogs))
		for _, catalog := range svc.catalogs {
			candidates, err := catalog.Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			results[catalog.ID()] = candidates
		}

		return printJSON(map[string]any{
			"query":   query,
			"results": results,
		})
	},
}

func init() {
	searchCmd.Flags().Int("limit", 5, "results per store")
	rootCmd.AddCommand(searchCmd)
}
