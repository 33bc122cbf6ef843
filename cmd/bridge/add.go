package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/basketbridge/backend/internal/domain"
	"github.com/basketbridge/backend/internal/usecase"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add items to both store carts",
	Long: `add plans cart additions for a batch of items and applies them when
confirmed with --yes. With --auto-match names are resolved against both
catalogs first and the batch is rejected while any item is unresolved;
without it every item must carry manual product ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}

		items, err := readItems(cmd)
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetBool("yes")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		autoMatch, _ := cmd.Flags().GetBool("auto-match")
		noCache, _ := cmd.Flags().GetBool("no-cache")
		searchLimit, _ := cmd.Flags().GetInt("search-limit")

		var (
			planned map[string][]domain.CartLine
			skipped []usecase.SkippedItem
		)
		if autoMatch {
			report, err := svc.matcher.MatchItems(cmd.Context(), items, usecase.MatchOptions{
				NoCache:             noCache,
				SearchLimitOverride: searchLimit,
			})
			if err != nil {
				return err
			}
			if report.Summary.Unresolved > 0 {
				return fmt.Errorf("%w: %d of %d items unresolved, no cart updates applied",
					domain.ErrUnresolvedMatches, report.Summary.Unresolved, report.Summary.Total)
			}
			planned = svc.cart.PlanPurchases(report.ResolvedItems)
		} else {
			planned, skipped = svc.cart.PlanManual(items)
		}

		result, err := svc.cart.Apply(cmd.Context(), planned, skipped, confirm, dryRun)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	itemFlags(addCmd)
	addCmd.Flags().Bool("yes", false, "confirm cart mutations")
	addCmd.Flags().Bool("dry-run", false, "show planned actions only")
	addCmd.Flags().Bool("auto-match", false, "auto-match names to both stores before adding")
	addCmd.Flags().Bool("no-cache", false, "disable match-cache reads and writes")
	addCmd.Flags().Int("search-limit", 0, "override configured search limit")
	rootCmd.AddCommand(addCmd)
}
