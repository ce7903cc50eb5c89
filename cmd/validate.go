// =============================================================================
// Cart Parser - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser validate <source>
//
// OUTPUT:
//   "No validation errors." on success, otherwise one line per error:
//     [row] row 0: Expected row to have 3 cells but received 2.
//     [cell] row 1, column 1: Expected cell to be a positive number but received "abcd".
//
//   The command exits non-zero when the cart is invalid.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vvorobets/cart-parser/internal/report"
	"github.com/vvorobets/cart-parser/internal/validation"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <source>",
	Short: "Validate a cart file without computing its total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		text, err := newResolverReader().ReadFile(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		errs := validation.Validate(text)
		if err := report.WriteErrors(cmd.OutOrStdout(), errs); err != nil {
			return err
		}

		if len(errs) > 0 {
			counts := validation.CountByType(errs)
			logger.Debug("validation failed",
				slog.String("source", name),
				slog.Int("header_errors", counts[validation.ErrorTypeHeader]),
				slog.Int("row_errors", counts[validation.ErrorTypeRow]),
				slog.Int("cell_errors", counts[validation.ErrorTypeCell]),
			)
			return fmt.Errorf("%s is invalid: %d error(s)", name, len(errs))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
