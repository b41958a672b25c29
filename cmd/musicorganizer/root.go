package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pkazmierczak/musicorganizer/internal"
)

// options are the command line settings shared by every subcommand.
type options struct {
	configPath   string
	logLevel     string
	source       string
	destination  string
	policy       string
	stripIllegal bool
	noLock       bool
	jsonOutput   bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "musicorganizer",
		Short:         "Copy songs into an {artist}/{album} library",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	bindFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(newOrganizeCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))

	return rootCmd
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.configPath, "config", "c", "config.json", "Path to the configuration file (optional)")
	flags.StringVar(&opts.logLevel, "log-level", "", "The log level")
	flags.StringVarP(&opts.source, "source", "s", "", "Directory to read songs from")
	flags.StringVarP(&opts.destination, "destination", "d", "", "Library root to copy songs into")
	flags.StringVar(&opts.policy, "conflicts", "", "How to handle songs that already exist: ask, skip or replace")
	flags.BoolVar(&opts.stripIllegal, "strip-illegal", true, "Remove characters that are illegal in file names from artist and album")
	flags.BoolVar(&opts.noLock, "no-lock", false, "Do not lock the destination while organizing")
}

// loadConfiguration reads the config file, when present, and applies the
// flags that were set on the command line on top of it.
func loadConfiguration(cmd *cobra.Command, opts *options) (internal.Config, error) {
	config := internal.DefaultConfig()

	if path := strings.TrimSpace(opts.configPath); path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := internal.LoadConfig(path)
			if err != nil {
				return config, err
			}
			config = loaded
			log.Debugf("loaded config from %s", path)
		} else if cmd.Flags().Changed("config") {
			return config, fmt.Errorf("config file %s not found", path)
		} else {
			log.Debugf("config file %s not found, using defaults", path)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		config.Source = opts.source
	}
	if flags.Changed("destination") {
		config.Destination = opts.destination
	}
	if flags.Changed("conflicts") {
		config.ConflictPolicy = internal.ConflictPolicy(strings.ToLower(opts.policy))
	}
	if flags.Changed("strip-illegal") {
		config.StripIllegal = opts.stripIllegal
	}
	if flags.Changed("no-lock") {
		config.Lock = !opts.noLock
	}
	if flags.Changed("log-level") {
		config.LogLevel = opts.logLevel
	}

	return config, config.Validate()
}

// newLogger builds the logger for one command run.
func newLogger(level string) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)

	logLevel, err := log.ParseLevel(level)
	if err != nil {
		logLevel = log.InfoLevel
		logger.Warnf("invalid log-level %s, set to %v", level, log.InfoLevel)
	}
	logger.SetLevel(logLevel)
	return logger
}
