package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basketbridge/backend/internal/domain"
)

// itemFlags registers the shared item-input flags on a subcommand. Exactly
// one of the three sources must be used.
func itemFlags(cmd *cobra.Command) {
	cmd.Flags().String("items-file", "", "JSON array file with items")
	cmd.Flags().String("items-json", "", "inline JSON array with items")
	cmd.Flags().Bool("items-stdin", false, "read JSON array from stdin")
	cmd.MarkFlagsOneRequired("items-file", "items-json", "items-stdin")
	cmd.MarkFlagsMutuallyExclusive("items-file", "items-json", "items-stdin")
}

// readItems loads and normalizes the item batch from whichever source flag
// was set.
func readItems(cmd *cobra.Command) ([]domain.Item, error) {
	if path, _ := cmd.Flags().GetString("items-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read items file: %w", err)
		}
		return parseItems(data, path)
	}

	if raw, _ := cmd.Flags().GetString("items-json"); raw != "" {
		return parseItems([]byte(raw), "--items-json")
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("%w: no input received on stdin", domain.ErrInvalidItems)
	}
	return parseItems(raw, "stdin")
}

func parseItems(data []byte, source string) ([]domain.Item, error) {
	var inputs []domain.ItemInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidItems, source, err)
	}

	items := make([]domain.Item, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, input.Normalize())
	}
	return items, nil
}
