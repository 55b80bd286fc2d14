package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/tango/internal/card"
	"github.com/arcanaland/tango/internal/config"
	"github.com/arcanaland/tango/internal/deck"
	"github.com/arcanaland/tango/internal/viewer"
)

var showCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Print both faces of one card",
	Long: `Show prints the question and answer of a single card without starting
the interactive viewer. Cards are numbered from 1 in deck order after the
genre filter is applied.

Examples:
  tango show --index 3
  tango show kotoba --genre animals --index 2
  tango show ./my-deck.zip --index 1 --reverse`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		v, err := settings(cmd, cfg)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), v)
		if err != nil {
			return err
		}

		location, err := resolveDeck(args, cfg)
		if err != nil {
			return err
		}
		store, err := loadDeck(cmd.Context(), location, logger)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		genre := v.GetString("genre")
		if genre == "" {
			genre = deck.AllGenres
		}
		d := deck.FilterByGenre(store.Cards(), genre)
		if len(d) == 0 {
			return fmt.Errorf("no cards in genre %q", genre)
		}

		index := v.GetInt("index")
		if index < 1 || index > len(d) {
			return fmt.Errorf("index %d out of range: deck has %d cards", index, len(d))
		}

		f := viewer.Render(d, index-1, v.GetBool("reverse"), false)
		displayFrame(cmd.OutOrStdout(), f, deckTitle(store, location))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().IntP("index", "i", 1, "Position of the card in the deck, starting at 1")
	showCmd.Flags().StringP("genre", "g", "", "Only count cards of this genre")
	showCmd.Flags().BoolP("reverse", "r", false, "Show the meaning as the question")
}

// terminalWidth returns the width of stdout, or 80 when it is not a
// terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// displayFrame prints the frame as labelled lines, wrapping long values to
// the terminal width.
func displayFrame(w io.Writer, f viewer.Frame, deckName string) {
	const labelWidth = 10
	textWidth := max(20, terminalWidth()-labelWidth-2)

	line := func(label, value string) {
		lines := strings.Split(wordwrap.String(value, textWidth), "\n")
		fmt.Fprintf(w, "  %s%s\n", colorize.CyanString("%-*s", labelWidth, label+":"), colorize.HiWhiteString(lines[0]))
		for _, rest := range lines[1:] {
			fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", labelWidth), colorize.HiWhiteString(rest))
		}
	}

	face := func(label string, c card.Content) {
		if a, ok := c.(card.Annotated); ok {
			line(label, a.Base)
			line("Reading", a.Gloss)
			return
		}
		line(label, c.String())
	}

	fmt.Fprintln(w)
	line("Deck", deckName)
	if f.Genre != "" {
		line("Genre", f.Genre)
	}
	line("Card", f.Counter())
	fmt.Fprintln(w)
	face("Question", f.Question)
	face("Answer", f.Answer)
	fmt.Fprintln(w)
}
