package main

import (
	"github.com/spf13/cobra"

	"github.com/basketbridge/backend/internal/domain"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare current cart totals between both stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}

		picnicUnit, _ := cmd.Flags().GetString("picnic-unit")
		includeCarts, _ := cmd.Flags().GetBool("include-carts")

		report, err := svc.checkout.Compare(cmd.Context(), picnicUnit)
		if err != nil {
			return err
		}

		output := map[string]any{"report": report}
		if includeCarts {
			ahCart, err := svc.ah.FetchCart(cmd.Context())
			if err != nil {
				return err
			}
			picnicCart, err := svc.picnic.FetchCart(cmd.Context())
			if err != nil {
				return err
			}
			output["carts"] = map[string]domain.CartSummary{
				svc.ah.ID():     ahCart,
				svc.picnic.ID(): picnicCart,
			}
		}

		return printJSON(output)
	},
}

func init() {
	compareCmd.Flags().String("picnic-unit", "", "how to interpret numeric Picnic totals (cents|eur)")
	compareCmd.Flags().Bool("include-carts", false, "include raw cart summaries in output")
	rootCmd.AddCommand(compareCmd)
}
