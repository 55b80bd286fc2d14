package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tango/internal/source"
	"github.com/arcanaland/tango/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a flashcard deck",
	Long: `Validate checks that a deck directory, archive or URL has a readable
manifest, that every genre it lists has a card file, and that every card has
a word and a meaning. Duplicates and unlisted card files are reported as
warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := args[0]
		out := cmd.OutOrStdout()

		f, err := source.Open(deckPath, source.WithLogger(log.New(io.Discard)))
		if err != nil {
			return fmt.Errorf("error opening deck: %w", err)
		}

		v := validator.NewValidator(f)
		results, err := v.Validate(cmd.Context())
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.OK() {
			fmt.Fprintf(out, "%s Deck '%s' is valid.\n", color.GreenString("✅"), deckPath)
		} else {
			fmt.Fprintf(out, "%s Deck '%s' has %d validation errors:\n", color.RedString("❌"), deckPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, color.YellowString("\nWarnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if !results.OK() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
