package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teamspirit/cmdspider"
	"github.com/teamspirit/cmdspider/internal/config"
	"github.com/teamspirit/cmdspider/internal/logging"
	"github.com/teamspirit/cmdspider/pkg/diff"
	"github.com/teamspirit/cmdspider/pkg/docs"
	"github.com/teamspirit/cmdspider/pkg/extract"
	"github.com/teamspirit/cmdspider/pkg/files"
	"github.com/teamspirit/cmdspider/pkg/report"
)

type scanOptions struct {
	configPath  string
	patternsDir string
	filter      []string
	checkDocs   bool
	noInput     bool
	verbose     bool

	// interactive is true when a missing check-docs decision may be
	// resolved by prompting.
	interactive bool
	// checkDocsSet records whether the --check-docs flag was given.
	checkDocsSet bool
}

func scanCmd() *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract admin commands and write the reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.checkDocsSet = cmd.Flags().Changed("check-docs")
			opts.interactive = !opts.noInput && stdinIsTerminal()
			return runScan(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "cmdspider.toml", "Path to the configuration file.")
	cmd.Flags().StringVar(&opts.patternsDir, "patterns", "",
		"Path to a custom pattern directory (replacing the default embedded patterns).")
	cmd.Flags().StringSliceVar(&opts.filter, "filter", nil,
		"Only report commands whose name or alias matches the wildcard pattern(s).")
	cmd.Flags().BoolVar(&opts.checkDocs, "check-docs", false,
		"Compare the extracted commands against the docs (skips the prompt).")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Never prompt; assume no docs comparison unless configured.")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging.")
	return cmd
}

func runScan(ctx context.Context, opts *scanOptions, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}
	logger, err := logging.New(opts.verbose || cfg.Verbose, filepath.Join(cfg.OutputDir, "spider.log"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	specs, err := loadPatternSpecs(opts.patternsDir)
	if err != nil {
		return err
	}
	extractor, err := extract.NewExtractor(specs)
	if err != nil {
		return err
	}

	checkDocs, err := decideCheckDocs(opts, cfg, stdin, stdout)
	if err != nil {
		return err
	}
	logger.Info("starting scan",
		zap.String("source", cfg.SourceFile()),
		zap.Bool("check_docs", checkDocs))

	var (
		commands []extract.Command
		sections docs.Sections
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		fsys, err := files.LocalFS(cfg.RepositoryRoot)
		if err != nil {
			return err
		}
		commands, err = extractor.ExtractFile(fsys, filepath.ToSlash(cfg.SourcePath))
		return err
	})
	if checkDocs {
		eg.Go(func() error {
			var err error
			sections, err = loadDocs(egCtx, cfg, logger)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Debug("extraction finished", zap.Int("commands", len(commands)))

	commands = filterCommands(commands, opts.filter)

	writer := report.NewWriter(cfg.OutputDir)
	if _, err := writer.WriteCommands(commands); err != nil {
		return err
	}
	if len(commands) == 0 {
		fmt.Fprintln(stdout, color.YellowString("No commands found."))
	} else {
		report.RenderTable(stdout, commands, getTerminalWidth())
	}

	if checkDocs {
		newCommands := diff.NewCommands(commands, sections)
		if _, err := writer.WriteNewCommands(newCommands); err != nil {
			return err
		}
		dead := diff.DeadAliases(commands, sections)
		if _, err := writer.WriteDeadAliases(dead); err != nil {
			return err
		}
		deadCount := 0
		for _, aliases := range dead {
			deadCount += len(aliases)
		}
		fmt.Fprintln(stdout, color.GreenString("Docs check: %d undocumented command(s), %d outdated alias(es).",
			len(newCommands), deadCount))
	}

	fmt.Fprintln(stdout, "Reports written to", writer.Dir())
	return nil
}

func loadPatternSpecs(dir string) ([]extract.PatternSpec, error) {
	if dir == "" {
		return cmdspider.LoadPatterns()
	}
	specs, err := extract.LoadFromYAMLDir(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load custom patterns: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no patterns found in directory: %s", dir)
	}
	return specs, nil
}

// decideCheckDocs resolves whether to run the docs comparison: the flag
// wins, then the config file, then an interactive prompt.
func decideCheckDocs(opts *scanOptions, cfg *config.Config, stdin io.Reader, stdout io.Writer) (bool, error) {
	if opts.checkDocsSet {
		return opts.checkDocs, nil
	}
	if cfg.CheckDocs != nil {
		return *cfg.CheckDocs, nil
	}
	if !opts.interactive {
		return false, nil
	}
	return confirmDocsCheck(stdin, stdout)
}

func confirmDocsCheck(stdin io.Reader, stdout io.Writer) (bool, error) {
	fmt.Fprint(stdout, "Would you also like to check for admin commands that are not already in the docs? (y/n) ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid input %q, please use only 'y' or 'n'", strings.TrimSpace(line))
	}
}

// loadDocs resolves the docs file: a configured local copy first, then a
// cached download in the working directory, then a fresh clone of the docs
// repository.
func loadDocs(ctx context.Context, cfg *config.Config, logger *zap.Logger) (docs.Sections, error) {
	if cfg.Docs != "" {
		logger.Debug("using configured docs file", zap.String("path", cfg.Docs))
		f, err := os.Open(cfg.Docs)
		if err != nil {
			return nil, fmt.Errorf("%w: docs file %s", config.ErrInputNotFound, cfg.Docs)
		}
		defer f.Close()
		return docs.Parse(f)
	}
	if cached, ok := files.FindCached(cfg.DocsFile); ok {
		logger.Info("loading docs from local cache", zap.String("path", cached))
		f, err := os.Open(cached)
		if err != nil {
			return nil, fmt.Errorf("%w: cached docs file %s", config.ErrInputNotFound, cached)
		}
		defer f.Close()
		return docs.Parse(f)
	}
	logger.Info("no local docs found, cloning docs repository",
		zap.String("url", cfg.DocsURL), zap.String("ref", cfg.DocsRef))
	fsys, err := files.Clone(ctx, cfg.DocsURL, cfg.DocsRef)
	if err != nil {
		return nil, fmt.Errorf("cloning docs repository: %w", err)
	}
	return docs.ParseFile(fsys, cfg.DocsFile)
}

func filterCommands(commands []extract.Command, patterns []string) []extract.Command {
	if len(patterns) == 0 {
		return commands
	}
	var filtered = make([]extract.Command, 0, len(commands))
	for _, cmd := range commands {
		if matchesAny(cmd, patterns) {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}

func matchesAny(cmd extract.Command, patterns []string) bool {
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if wildcard.Match(p, cmd.Name) {
			return true
		}
		for _, alias := range cmd.Aliases {
			if wildcard.Match(p, alias) {
				return true
			}
		}
	}
	return false
}
