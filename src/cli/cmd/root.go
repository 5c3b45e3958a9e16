package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sofmeright/dockertags/src/config"
	"github.com/sofmeright/dockertags/src/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dockertags [wdl-dir]",
	Short: "Report the latest tags of docker images used by WDL workflows",
	Long: `dockertags scans WDL workflow files for pinned docker images and looks up
the latest available tag of each one: first in the local image build
directories, then on Docker Hub, GCR/GHCR (with a gcloud fallback), or Quay.

The result is a TSV report listing every image, the tag in use, the latest
tag ("NA" when none was found), and where the image is declared.

Running dockertags without a subcommand is the same as "dockertags scan".`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		root, err := config.RepoRoot(wd)
		if err != nil {
			return err
		}
		cfg, err = config.Load(cfgFile, wd, root)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		if err := logger.Init(level, logger.Format(cfg.Log.Format)); err != nil {
			return fmt.Errorf("configuring logger: %w", err)
		}
		return nil
	},
	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .dockertags.yml or .dockertags.toml in the working directory, then the repository root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight lookups.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
