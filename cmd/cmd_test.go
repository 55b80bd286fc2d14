package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func writeTestDeck(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"manifest.json":     `{"name":"Kotoba","genres":["animals","plants"]}`,
		"data/animals.json": `[{"word":"犬","meaning":"dog"},{"word":"猫","meaning":"cat"}]`,
		"data/plants.json":  `[{"word":"桜","meaning":"cherry blossom","reading":"さくら"}]`,
	}
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

// resetFlags restores every flag to its default so commands do not leak
// state between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	t.Cleanup(func() { resetFlags(RootCmd) })

	err := RootCmd.Execute()
	return out.String(), err
}

func TestShowPrintsFaces(t *testing.T) {
	dir := writeTestDeck(t)

	out, err := run(t, "show", dir, "--index", "2")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"Kotoba", "animals", "2/3", "猫", "cat"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowReversedWithReading(t *testing.T) {
	dir := writeTestDeck(t)

	out, err := run(t, "show", dir, "--genre", "plants", "--reverse")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	q := strings.Index(out, "cherry blossom")
	a := strings.Index(out, "桜")
	if q < 0 || a < 0 || q > a {
		t.Fatalf("expected the meaning before the word:\n%s", out)
	}
	if !strings.Contains(out, "さくら") {
		t.Errorf("reading missing:\n%s", out)
	}
}

func TestShowIndexFromEnvironment(t *testing.T) {
	dir := writeTestDeck(t)
	t.Setenv("TANGO_INDEX", "2")

	out, err := run(t, "show", dir)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "猫") || !strings.Contains(out, "2/3") {
		t.Errorf("expected the second card:\n%s", out)
	}
}

func TestShowIndexOutOfRange(t *testing.T) {
	dir := writeTestDeck(t)

	if _, err := run(t, "show", dir, "--index", "9"); err == nil {
		t.Fatalf("expected an error for an index past the end")
	}
}

func TestListGenres(t *testing.T) {
	dir := writeTestDeck(t)

	out, err := run(t, "list", dir, "--genres")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"animals", "plants", "all"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListCardsByGenre(t *testing.T) {
	dir := writeTestDeck(t)

	out, err := run(t, "list", dir, "--genre", "animals")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "犬") || !strings.Contains(out, "猫") {
		t.Errorf("animals missing:\n%s", out)
	}
	if strings.Contains(out, "桜") {
		t.Errorf("filtered list contains a plant:\n%s", out)
	}
}

func TestValidateReportsValidDeck(t *testing.T) {
	dir := writeTestDeck(t)

	out, err := run(t, "validate", dir)
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDeckInitAndSetDefault(t *testing.T) {
	dir := writeTestDeck(t)

	out, err := run(t, "deck", "init")
	if err != nil {
		t.Fatalf("deck init failed: %v", err)
	}
	if !strings.Contains(out, "Deck library initialized") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "deck", "set-default", dir)
	if err != nil {
		t.Fatalf("set-default failed: %v", err)
	}
	if !strings.Contains(out, "Default deck set to") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
