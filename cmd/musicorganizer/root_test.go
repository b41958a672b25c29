package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
	"github.com/spf13/cobra"

	"github.com/pkazmierczak/musicorganizer/internal"
)

func parseFlags(t *testing.T, args ...string) (*cobra.Command, *options) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	opts := &options{}
	bindFlags(cmd.Flags(), opts)
	must.NoError(t, cmd.ParseFlags(args))
	return cmd, opts
}

func TestLoadConfiguration_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	must.NoError(t, os.WriteFile(path, []byte(`
source = "/music/incoming"
destination = "/music/library"
conflict_policy = "skip"
strip_illegal = true
`), 0644))

	cmd, opts := parseFlags(t, "--config", path, "--conflicts", "REPLACE", "--strip-illegal=false", "--no-lock")
	cfg, err := loadConfiguration(cmd, opts)
	must.NoError(t, err)

	must.Eq(t, "/music/incoming", cfg.Source)
	must.Eq(t, "/music/library", cfg.Destination)
	must.Eq(t, internal.PolicyReplace, cfg.ConflictPolicy)
	must.False(t, cfg.StripIllegal)
	must.False(t, cfg.Lock)
}

func TestLoadConfiguration_DefaultsWithoutFile(t *testing.T) {
	cmd, opts := parseFlags(t, "--config", "", "-s", "/in", "-d", "/out")
	cfg, err := loadConfiguration(cmd, opts)
	must.NoError(t, err)

	must.Eq(t, "/in", cfg.Source)
	must.Eq(t, "/out", cfg.Destination)
	must.True(t, cfg.StripIllegal)
	must.True(t, cfg.Lock)
	must.Eq(t, internal.PolicyAsk, cfg.ConflictPolicy)
}

func TestLoadConfiguration_MissingExplicitFile(t *testing.T) {
	cmd, opts := parseFlags(t, "--config", filepath.Join(t.TempDir(), "nope.json"), "-s", "/in", "-d", "/out")
	_, err := loadConfiguration(cmd, opts)
	must.ErrorContains(t, err, "not found")
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	cmd, opts := parseFlags(t, "--config", "", "-s", "/in", "-d", "/out", "--conflicts", "overwrite")
	_, err := loadConfiguration(cmd, opts)
	must.ErrorContains(t, err, "unknown conflict_policy")
}

func TestNewLogger(t *testing.T) {
	must.Eq(t, "debug", newLogger("debug").GetLevel().String())
	must.Eq(t, "info", newLogger("loud").GetLevel().String())
}
