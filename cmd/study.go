package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tango/internal/anim"
	"github.com/arcanaland/tango/internal/config"
	"github.com/arcanaland/tango/internal/deck"
	"github.com/arcanaland/tango/internal/logging"
	"github.com/arcanaland/tango/internal/tui"
	"github.com/arcanaland/tango/internal/viewer"
)

var studyCmd = &cobra.Command{
	Use:   "study [deck]",
	Short: "Study a deck interactively",
	Long: `Study opens the interactive card viewer.

The deck is looked up in your deck library (XDG_DATA_HOME/tango/decks), then
treated as a path or URL. Without an argument the default deck from your
config is used. Every flag can also be set with a TANGO_ environment
variable, e.g. TANGO_GENRE=animals or TANGO_NO_MOUSE=true.

Examples:
  tango study
  tango study kotoba --genre animals --shuffle
  tango study https://example.com/decks/kotoba --reverse`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fd := os.Stdout.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return fmt.Errorf("study needs an interactive terminal; use 'tango show' or 'tango list' instead")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		v, err := settings(cmd, cfg)
		if err != nil {
			return err
		}

		logFile, err := logging.OpenFile(config.GetLogFilePath())
		if err != nil {
			return err
		}
		defer logFile.Close()

		logger, err := newLogger(logFile, v)
		if err != nil {
			return err
		}

		location, err := resolveDeck(args, cfg)
		if err != nil {
			return err
		}

		store, err := loadDeck(cmd.Context(), location, logger)
		if err != nil {
			if !errors.Is(err, deck.ErrNoDataLoaded) {
				return fmt.Errorf("error loading deck: %w", err)
			}
			logger.Error("no cards could be loaded", "location", location, "err", err)
		}

		sched := tui.NewScheduler()
		seq := anim.NewSequencer(sched, cfg.AnimTiming())
		machine := viewer.New(store, seq,
			viewer.WithLogger(logger),
			viewer.WithGenre(v.GetString("genre")),
			viewer.WithReversed(v.GetBool("reverse")),
		)
		if v.GetBool("shuffle") {
			machine.Reshuffle()
		}

		model := tui.New(machine,
			tui.WithScheduler(sched),
			tui.WithLogger(logger),
			tui.WithSwipeThreshold(v.GetInt("swipe-threshold")),
			tui.WithTitle(deckTitle(store, location)),
		)

		var opts []tea.ProgramOption
		if !v.GetBool("no-mouse") {
			opts = append(opts, tea.WithMouseCellMotion())
		}

		logger.Info("starting viewer", "location", location, "cards", store.Len())
		return tui.Run(cmd.Context(), model, opts...)
	},
}

func init() {
	RootCmd.AddCommand(studyCmd)

	studyCmd.Flags().StringP("genre", "g", "", "Only show cards of this genre")
	studyCmd.Flags().BoolP("reverse", "r", false, "Show meanings as questions")
	studyCmd.Flags().BoolP("shuffle", "s", false, "Shuffle the deck before starting")
	studyCmd.Flags().Bool("no-mouse", false, "Disable mouse clicks and swipes")
	studyCmd.Flags().Int("swipe-threshold", tui.DefaultSwipeThreshold, "Minimum horizontal drag, in cells, that counts as a swipe")
}
