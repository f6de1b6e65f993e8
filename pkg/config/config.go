package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/action-versions/pkg/vcs"
)

type Config struct {
	Org        string   `yaml:"org"`
	Additional []string `yaml:"additional"`
	Skip       []string `yaml:"skip"`
	Files      Files    `yaml:"files"`
	Dir        string   `yaml:"-"`
	DryRun     bool     `yaml:"-"`
	Output     string   `yaml:"-"`
	Token      string   `yaml:"-"`
	APIURL     string   `yaml:"-"`
	LogLevel   string   `yaml:"-"`
}

type Files struct {
	Versions    string `yaml:"versions"`
	VersionsSHA string `yaml:"versions_sha"`
	Unversioned string `yaml:"unversioned"`
	Readme      string `yaml:"readme"`
}

func Default() *Config {
	return &Config{
		Org: "actions",
		Additional: []string{
			"astral-sh/setup-uv",
			"dependabot/fetch-metadata",
			"docker/build-push-action",
			"docker/login-action",
			"docker/metadata-action",
			"docker/setup-buildx-action",
			"docker/setup-qemu-action",
			"golangci/golangci-lint-action",
			"goreleaser/goreleaser-action",
			"ruby/setup-ruby",
			"taiki-e/install-action",
		},
		Skip: []string{
			"action-versions",
			"actions-runner-controller",
			"actions-sync",
			"alpine_nodejs",
			"container-prebuilt-action",
			"gh-actions-cache",
			"github",
			"publish-action",
			"publish-immutable-action",
			"runner",
			"runner-container-hooks",
		},
		Files: Files{
			Versions:    "versions.txt",
			VersionsSHA: "versions-sha.txt",
			Unversioned: "unversioned.txt",
			Readme:      "README.md",
		},
		Dir:      ".",
		Output:   "table",
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("org"); err == nil && v != "" {
		cfg.Org = v
	}
	if v, err := flags.GetStringSlice("additional"); err == nil && len(v) > 0 {
		cfg.Additional = append(cfg.Additional, v...)
	}
	if v, err := flags.GetStringSlice("skip"); err == nil && len(v) > 0 {
		cfg.Skip = append(cfg.Skip, v...)
	}
	if v, err := flags.GetString("dir"); err == nil && v != "" {
		cfg.Dir = v
	}
	if v, err := flags.GetBool("dry-run"); err == nil {
		cfg.DryRun = v
	}
	if v, err := flags.GetString("output"); err == nil && v != "" {
		cfg.Output = v
	}
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetString("api-url"); err == nil && v != "" {
		cfg.APIURL = v
	}
	if v, err := flags.GetString("log-level"); err == nil && v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// Validate checks the configuration before any network activity. Every
// additional repository must be in "org/repo" form.
func (c *Config) Validate() error {
	if c.Org == "" {
		return fmt.Errorf("organization must not be empty")
	}
	if _, err := c.AdditionalRepos(); err != nil {
		return err
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("unsupported output format %q: want table or json", c.Output)
	}
	return nil
}

// AdditionalRepos parses the supplemental repository list in order.
func (c *Config) AdditionalRepos() ([]vcs.RepoRef, error) {
	refs := make([]vcs.RepoRef, 0, len(c.Additional))
	for _, s := range c.Additional {
		ref, err := vcs.ParseRepoRef(s)
		if err != nil {
			return nil, fmt.Errorf("additional repos: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Path resolves one of the configured file names against Dir.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}
