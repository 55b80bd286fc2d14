package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tango",
	Short: "Terminal flashcard viewer for vocabulary decks",
	Long: `Tango shows vocabulary flashcards one at a time in the terminal.
Flip a card to reveal its meaning, move through the deck, shuffle it, filter
it by genre, or reverse the question and answer sides.

Decks are directories, .zip or .7z archives, or http(s) URLs holding a
manifest.json (or deck.toml) and one data/<genre>.json file per genre.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
