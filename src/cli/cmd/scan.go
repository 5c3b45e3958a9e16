package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/dockertags/src/config"
	"github.com/sofmeright/dockertags/src/logger"
	"github.com/sofmeright/dockertags/src/output"
	"github.com/sofmeright/dockertags/src/registry"
	"github.com/sofmeright/dockertags/src/scan"
)

var (
	scanDockerDir string
	scanOutput    string
	scanExclude   []string
	scanTagPolicy string
	scanNoRemote  bool
	scanNoGCloud  bool
	scanQuiet     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [wdl-dir]",
	Short: "Scan workflows and write the image tag report",
	Long: `Scan every workflow file under wdl-dir and write the image tag report.

Without arguments the repository containing the working directory is used:
  <root>/wdl                               workflow files
  <root>/scripts/docker                    image build directories
  <root>/scripts/docker/dockers.in_use.tsv report

Flags override the config file, which overrides these defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func addScanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&scanDockerDir, "docker-dir", "", "image build directory (default: <root>/scripts/docker)")
	f.StringVar(&scanOutput, "output", "", "TSV report path (default: <docker-dir>/dockers.in_use.tsv)")
	f.StringSliceVar(&scanExclude, "exclude", nil, "glob patterns to skip, relative to wdl-dir (comma-separated)")
	f.StringVar(&scanTagPolicy, "tag-policy", "", "latest tag selection: lexical or semver (default: from config, then lexical)")
	f.BoolVar(&scanNoRemote, "no-remote", false, "only consult local build directories")
	f.BoolVar(&scanNoGCloud, "no-gcloud", false, "skip the gcloud fallback for GCR images")
	f.BoolVar(&scanQuiet, "quiet", false, "no progress output")
}

func init() {
	addScanFlags(rootCmd)
	addScanFlags(scanCmd)
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	effective, err := scanConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, rc := effective.Scan, effective.Resolve

	logger.Debug().
		Str("wdl_dir", sc.WDLDir).
		Str("docker_dir", sc.DockerDir).
		Str("output", sc.Output).
		Str("tag_policy", string(rc.TagPolicy)).
		Msg("scan configuration")

	if err := output.RemoveReport(sc.Output); err != nil {
		return err
	}

	opts := registry.Options{
		Remote:       rc.Remote,
		GCloud:       rc.GCloud,
		GCloudBin:    rc.GCloudBin,
		TagPolicy:    string(rc.TagPolicy),
		DockerHubURL: rc.DockerHub,
		Timeout:      time.Duration(rc.Timeout) * time.Second,
	}
	if rc.Local {
		opts.DockerDir = sc.DockerDir
	}
	resolver, err := registry.New(opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	output.Start(w)
	endFold := output.FoldSection(w, "dockertags_scan", "Resolving image tags", true)

	progress := output.NewProgress(cmd.ErrOrStderr(), output.ShowProgress(scanQuiet))
	engine := &scan.Engine{
		RootDir:   sc.WDLDir,
		Extension: sc.Extension,
		Exclude:   sc.Exclude,
		Resolver:  resolver,
		Progress:  progress.Update,
	}

	start := time.Now()
	files, err := engine.CollectFiles()
	if err != nil {
		endFold()
		return fmt.Errorf("collecting workflow files: %w", err)
	}
	logger.Debug().Int("files", len(files)).Msg("collected workflow files")

	results, stats, runErr := engine.Run(cmd.Context(), files)
	progress.Finish()
	endFold()
	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}
	if runErr != nil {
		// Unreadable files are already logged; the report covers the rest.
		logger.Debug().Err(runErr).Msg("scan finished with read errors")
	}

	if err := output.WriteReportFile(sc.Output, results); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	output.Done(w, sc.Output)
	output.Summary(w, stats, time.Since(start), output.UseColor())
	return nil
}

// scanConfig merges flags over the loaded config and fills default paths.
// Flag paths are relative to the working directory; config paths are
// relative to the repository root.
func scanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	effective := *cfg
	sc := &effective.Scan
	rc := &effective.Resolve

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	if len(args) > 0 {
		sc.WDLDir = absFrom(wd, args[0])
	}
	flags := cmd.Flags()
	if flags.Changed("docker-dir") {
		sc.DockerDir = absFrom(wd, scanDockerDir)
	}
	if flags.Changed("output") {
		sc.Output = absFrom(wd, scanOutput)
	}
	if len(scanExclude) > 0 {
		sc.Exclude = append(append([]string{}, sc.Exclude...), scanExclude...)
	}
	if scanTagPolicy != "" {
		rc.TagPolicy = config.TagPolicy(scanTagPolicy)
	}
	if scanNoRemote {
		rc.Remote = false
	}
	if scanNoGCloud {
		rc.GCloud = false
	}
	if err := effective.Validate(); err != nil {
		return nil, err
	}

	root, err := config.RepoRoot(wd)
	if err != nil {
		return nil, err
	}
	sc.ResolvePaths(root)
	return &effective, nil
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
