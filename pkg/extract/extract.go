// Package extract scans a source file for admin command definitions.
package extract

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Command is a single extracted admin command.
type Command struct {
	Name       string   `yaml:"name" json:"name"`
	Aliases    []string `yaml:"aliases,flow" json:"aliases"`
	Permission string   `yaml:"permission,omitempty" json:"permission,omitempty"`
	Line       int      `yaml:"line,omitempty" json:"line,omitempty"`
}

// Extractor applies compiled patterns to the lines of a source file.
type Extractor struct {
	patterns []*Pattern
}

// NewExtractor compiles the given pattern specs into an Extractor.
func NewExtractor(specs []PatternSpec) (*Extractor, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no patterns defined")
	}
	patterns := make([]*Pattern, 0, len(specs))
	for _, spec := range specs {
		p, err := Compile(spec)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", spec.Name, err)
		}
		patterns = append(patterns, p)
	}
	return &Extractor{patterns: patterns}, nil
}

// Extract scans the reader line by line and returns the commands it finds,
// deduplicated by name in first-seen order. Lines that match no pattern, or
// that match one only partially, are skipped without error.
func (e *Extractor) Extract(r io.Reader) ([]Command, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var (
		commands []Command
		seen     = make(map[string]struct{})
	)
	for i := range lines {
		for _, p := range e.patterns {
			for _, cmd := range p.apply(lines, i) {
				if _, ok := seen[cmd.Name]; ok {
					continue
				}
				seen[cmd.Name] = struct{}{}
				cmd.Line = i + 1
				commands = append(commands, cmd)
			}
		}
	}
	return commands, nil
}

// ExtractFile opens the named file in fsys and extracts commands from it.
func (e *Extractor) ExtractFile(fsys fs.FS, name string) ([]Command, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening source file %s: %w", name, err)
	}
	defer f.Close()
	return e.Extract(f)
}

// Aliases flattens the alias lists of all commands, preserving order.
func Aliases(commands []Command) []string {
	var out []string
	for _, cmd := range commands {
		out = append(out, cmd.Aliases...)
	}
	return out
}
