package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/happyhackingspace/postag"
	"github.com/happyhackingspace/postag/internal/banner"
	"github.com/happyhackingspace/postag/internal/config"
	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/spf13/cobra"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	initialized bool
	rootCmd     *cobra.Command
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:           "postag",
		Short:         "Train and apply domain/general part-of-speech taggers",
		Version:       c.version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initApp()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging and banner")

	defaultHelp := c.rootCmd.HelpFunc()
	c.rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		c.initApp()
		defaultHelp(cmd, args)
	})

	c.rootCmd.AddCommand(c.newTrainCommand())
	c.rootCmd.AddCommand(c.newCalibrateCommand())
	c.rootCmd.AddCommand(c.newTagCommand())
	c.rootCmd.AddCommand(c.newUpCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// SetArgs overrides the command-line arguments, for tests.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// initApp initializes logging and prints the banner.
func (c *CLI) initApp() {
	if c.initialized {
		return
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	if !c.silent {
		fmt.Fprint(os.Stderr, banner.Banner(c.version))
	}
}

// setup loads the configuration, the feature descriptor and the corpus
// shared by train and calibrate.
func setup(inputDir, configPath, featurePath string) (*corpus.Corpus, postag.Options, error) {
	var opts postag.Options
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, opts, err
	}
	d, err := feature.ReadFile(featurePath)
	if err != nil {
		return nil, opts, err
	}
	open, err := corpus.NewOpener(cfg.Format())
	if err != nil {
		return nil, opts, err
	}
	c, err := corpus.Load(inputDir, open)
	if err != nil {
		return nil, opts, err
	}
	slog.Debug("Corpus loaded", "dir", inputDir, "shards", len(c.Files), "format", cfg.Reader.Format)

	opts = postag.Options{
		Descriptor:  d,
		Trainer:     postag.NewTrainer(cfg.TrainerConfig()),
		Workers:     cfg.Workers,
		FoldWorkers: cfg.FoldWorkers,
	}
	return c, opts, nil
}
