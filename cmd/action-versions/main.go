package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/action-versions/pkg/config"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	// .env is optional; it only supplies GITHUB_TOKEN for local runs.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "action-versions",
		Short:         "Record the latest release tag of GitHub Actions repositories",
		Long:          `Lists an organization's repositories plus a fixed set of additional ones, resolves each repository's latest vN and vX.Y.Z tags, and writes versions.txt, versions-sha.txt, unversioned.txt and the README sections.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().String("config", ".action-versions.yml", "Path to config file")
	rootCmd.Flags().String("org", "", "Organization whose repositories are listed")
	rootCmd.Flags().StringSlice("additional", nil, "Additional org/repo entries to process")
	rootCmd.Flags().StringSlice("skip", nil, "Repository names of the organization to exclude")
	rootCmd.Flags().String("dir", "", "Directory holding the output files")
	rootCmd.Flags().String("github-token", os.Getenv("GITHUB_TOKEN"), "GitHub token for API access")
	rootCmd.Flags().String("api-url", "", "GitHub API base URL (defaults to api.github.com)")
	rootCmd.Flags().String("output", "", "Summary format: table | json")
	rootCmd.Flags().Bool("dry-run", false, "Resolve versions without writing any file")
	rootCmd.Flags().String("log-level", "", "Log level: debug | info | warn | error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr, log.InfoLevel)

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			logger.Warn("could not load config file, using defaults", "path", cfgPath, "err", err)
		}
		cfg = config.Default()
	}

	cfg = config.MergeFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	return execute(cmd.Context(), cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
