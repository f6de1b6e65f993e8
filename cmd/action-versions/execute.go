package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/action-versions/pkg/cache"
	"github.com/action-versions/pkg/config"
	"github.com/action-versions/pkg/readme"
	"github.com/action-versions/pkg/reporter"
	"github.com/action-versions/pkg/scanner"
	"github.com/action-versions/pkg/vcs"
)

// execute runs one full pass: load the unversioned cache, scan, write the
// version files and README sections, rebuild the cache and print a summary.
// The summary goes to out. Progress lines go to out as well, except with JSON
// output where they go to errOut so that out holds only the JSON document.
func execute(ctx context.Context, cfg *config.Config, logger *log.Logger, out, errOut io.Writer) error {
	progress := out
	if cfg.Output == "json" {
		progress = errOut
	}

	if cfg.Token == "" {
		logger.Warn("no GitHub token set, requests are unauthenticated and heavily rate limited")
	}

	gh, err := vcs.NewClient(cfg.Token, cfg.APIURL)
	if err != nil {
		return err
	}
	client := vcs.NewGitHubClient(gh, logger)

	unversionedPath := cfg.Path(cfg.Files.Unversioned)
	unversioned, err := cache.Load(unversionedPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", unversionedPath, err)
	}
	if len(unversioned) > 0 {
		fmt.Fprintf(progress, "Loaded %d known unversioned repos from cache\n", len(unversioned))
	}

	result, err := scanner.New(client, cfg, logger, progress).Scan(ctx, unversioned)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		logger.Info("dry-run mode: no files written")
		return reporter.New(cfg.Output, out).Report(result)
	}

	versionsPath := cfg.Path(cfg.Files.Versions)
	versionsContent := reporter.VersionsContent(result.Versions)
	if err := reporter.WriteFile(versionsPath, versionsContent); err != nil {
		return fmt.Errorf("write %s: %w", versionsPath, err)
	}

	pinnedPath := cfg.Path(cfg.Files.VersionsSHA)
	pinnedContent := reporter.PinnedContent(result.Pinned)
	if err := reporter.WriteFile(pinnedPath, pinnedContent); err != nil {
		return fmt.Errorf("write %s: %w", pinnedPath, err)
	}

	readmePath := cfg.Path(cfg.Files.Readme)
	err = readme.Update(readmePath, readme.VersionsSection(versionsContent), readme.PinnedSection(pinnedContent))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("README not found, skipping README update", "path", readmePath)
	case err != nil:
		return err
	default:
		fmt.Fprintf(progress, "Updated %s with latest versions\n", readmePath)
	}

	if err := cache.Save(unversionedPath, result.Unversioned); err != nil {
		return fmt.Errorf("write %s: %w", unversionedPath, err)
	}

	if err := reporter.New(cfg.Output, out).Report(result); err != nil {
		return err
	}

	fmt.Fprintf(progress, "\nWrote %d versions to %s\n", len(result.Versions), versionsPath)
	fmt.Fprintf(progress, "Wrote %d versions with SHAs to %s\n", len(result.Pinned), pinnedPath)
	fmt.Fprintf(progress, "Cached %d unversioned repos to %s\n", len(result.Unversioned), unversionedPath)
	return nil
}
