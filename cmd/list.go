package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tango/internal/config"
	"github.com/arcanaland/tango/internal/deck"
)

var listCmd = &cobra.Command{
	Use:   "list [deck]",
	Short: "List the cards or genres of a deck",
	Long: `List prints the cards of a deck as a table, in the order the viewer
shows them. With --genres it prints every genre and its card count instead.

Examples:
  tango list
  tango list kotoba --genre animals
  tango list kotoba --genres`,
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

		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "

		if genres, _ := cmd.Flags().GetBool("genres"); genres {
			counts := deck.CountByGenre(store.Cards())
			tbl.AddRow(bold.Sprint("GENRE"), bold.Sprint("CARDS"))
			for _, g := range store.Genres() {
				tbl.AddRow(g, strconv.Itoa(counts[g]))
			}
			tbl.AddRow(deck.AllGenres, strconv.Itoa(store.Len()))
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		}

		genre := v.GetString("genre")
		if genre == "" {
			genre = deck.AllGenres
		}

		tbl.MaxColWidth = 40
		tbl.Wrap = true
		tbl.AddRow(bold.Sprint("#"), bold.Sprint("WORD"), bold.Sprint("READING"), bold.Sprint("MEANING"), bold.Sprint("GENRE"))
		for i, c := range deck.FilterByGenre(store.Cards(), genre) {
			tbl.AddRow(i+1, c.Word, c.Reading, c.Meaning, c.Genre)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tbl)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("genre", "g", "", "Only list cards of this genre")
	listCmd.Flags().Bool("genres", false, "List genres with their card counts")
}
