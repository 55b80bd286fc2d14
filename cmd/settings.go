package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arcanaland/tango/internal/config"
	"github.com/arcanaland/tango/internal/deck"
	"github.com/arcanaland/tango/internal/logging"
	"github.com/arcanaland/tango/internal/source"
)

// settings layers the command's flags and TANGO_* environment variables
// over the config file.
func settings(cmd *cobra.Command, cfg *config.Config) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("genre", cfg.DefaultGenre)
	v.SetDefault("reverse", cfg.Reversed)
	v.SetDefault("swipe-threshold", cfg.SwipeThreshold)
	v.SetDefault("log-level", cfg.LogLevel)

	v.SetEnvPrefix("TANGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}
	return v, nil
}

func newLogger(w io.Writer, v *viper.Viper) (*log.Logger, error) {
	return logging.New(w, v.GetString("log-level"))
}

// resolveDeck returns the location of the deck named in args, or of the
// default deck from the config.
func resolveDeck(args []string, cfg *config.Config) (string, error) {
	name := cfg.DefaultDeck
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return "", fmt.Errorf("no deck given and no default deck configured")
	}
	return config.GetDeckPath(name)
}

// loadDeck opens location and loads its cards. The error wraps
// deck.ErrNoDataLoaded when the deck yielded nothing; the returned store
// is usable either way.
func loadDeck(ctx context.Context, location string, logger *log.Logger) (*deck.Store, error) {
	f, err := source.Open(location,
		source.WithCacheDir(filepath.Join(config.GetCacheDir(), "http")),
		source.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return deck.Load(ctx, f, deck.WithLogger(logger))
}

// deckTitle names a loaded deck for display.
func deckTitle(store *deck.Store, location string) string {
	if store.Name != "" {
		return store.Name
	}
	return strings.TrimSuffix(filepath.Base(location), filepath.Ext(location))
}
