// Package config loads and validates the spider's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/teamspirit/cmdspider/pkg/files"
)

// ErrInputNotFound marks a configured input path that does not exist or is
// not readable. The run cannot proceed until the configuration is fixed.
var ErrInputNotFound = errors.New("input not found")

// Defaults used when the config file leaves a field unset.
const (
	DefaultSourcePath = "src/main/java/net/swordie/ms/client/character/commands/AdminCommands.java"
	DefaultDocsURL    = "https://github.com/KOOKIIEStudios/SpiritSuite"
	DefaultDocsRef    = "refs/heads/main"
	DefaultDocsFile   = "SPIRITCOMMANDS.md"
	DefaultOutputDir  = "output"
)

// Config is the spider's configuration surface.
type Config struct {
	// RepositoryRoot is the checkout of the game-server repository to scan.
	RepositoryRoot string `toml:"repository_root"`
	// SourcePath is the admin commands class, relative to RepositoryRoot.
	SourcePath string `toml:"source_path"`

	// Docs is an optional local docs file. When empty, a cached copy in the
	// working directory is used, or the docs repository is cloned.
	Docs     string `toml:"docs"`
	DocsURL  string `toml:"docs_url"`
	DocsRef  string `toml:"docs_ref"`
	DocsFile string `toml:"docs_file"`

	// OutputDir receives the report files.
	OutputDir string `toml:"output_dir"`

	// CheckDocs, when set, decides the docs comparison without prompting.
	CheckDocs *bool `toml:"check_docs"`

	Verbose bool `toml:"verbose"`
}

// Load reads the config file at path and applies defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: config file %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SourcePath == "" {
		c.SourcePath = DefaultSourcePath
	}
	if c.DocsURL == "" {
		c.DocsURL = DefaultDocsURL
	}
	if c.DocsRef == "" {
		c.DocsRef = DefaultDocsRef
	}
	if c.DocsFile == "" {
		c.DocsFile = DefaultDocsFile
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// SourceFile returns the absolute-ish path of the admin commands class.
func (c *Config) SourceFile() string {
	return filepath.Join(c.RepositoryRoot, c.SourcePath)
}

// Validate checks that every configured input exists before the run starts.
func (c *Config) Validate() error {
	if c.RepositoryRoot == "" {
		return fmt.Errorf("%w: repository_root is not set", ErrInputNotFound)
	}
	if info, err := os.Stat(c.RepositoryRoot); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: repository_root %s is not a directory", ErrInputNotFound, c.RepositoryRoot)
	}
	if err := files.Exists(c.SourceFile()); err != nil {
		return fmt.Errorf("%w: source file: %v", ErrInputNotFound, err)
	}
	if c.Docs != "" {
		if err := files.Exists(c.Docs); err != nil {
			return fmt.Errorf("%w: docs file: %v", ErrInputNotFound, err)
		}
	}
	return nil
}
