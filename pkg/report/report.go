// Package report writes the spider's output files and terminal summary.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/teamspirit/cmdspider/pkg/docs"
	"github.com/teamspirit/cmdspider/pkg/extract"
)

const (
	// CommandsFile lists every extracted command.
	CommandsFile = "AdminCommands.yaml"
	// NewCommandsFile lists commands missing from the docs.
	NewCommandsFile = "NewCommands.yaml"
	// DeadAliasesFile lists documented aliases no longer in code.
	DeadAliasesFile = "DeadCommands.txt"
)

// UpToDateNotice is written instead of a command list when there is
// nothing new to document.
const UpToDateNotice = "SpiritSuite docs is already up to date."

// Writer writes report files into an output directory, creating it on
// first use.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteCommands dumps the full extracted command list. An empty extraction
// is a valid result and produces a report saying so.
func (w *Writer) WriteCommands(commands []extract.Command) (string, error) {
	if len(commands) == 0 {
		return w.writeFile(CommandsFile, []byte("# no commands found\n[]\n"))
	}
	data, err := yaml.Marshal(commands)
	if err != nil {
		return "", fmt.Errorf("encoding commands: %w", err)
	}
	return w.writeFile(CommandsFile, data)
}

// WriteNewCommands dumps the commands absent from the docs, or an
// up-to-date notice when there are none.
func (w *Writer) WriteNewCommands(commands []extract.Command) (string, error) {
	if len(commands) == 0 {
		return w.writeFile(NewCommandsFile, []byte(UpToDateNotice+"\n"))
	}
	data, err := yaml.Marshal(commands)
	if err != nil {
		return "", fmt.Errorf("encoding new commands: %w", err)
	}
	return w.writeFile(NewCommandsFile, data)
}

// WriteDeadAliases writes the per-level list of documented aliases that are
// no longer present in code. Empty levels are reported as NONE.
func (w *Writer) WriteDeadAliases(dead map[docs.Level][]string) (string, error) {
	var b strings.Builder
	b.WriteString("=== Outdated Aliases ===\n")
	b.WriteString("These are aliases in the docs that are no longer part of the repository.\n\n")
	for _, level := range docs.Levels {
		fmt.Fprintf(&b, "%s Commands:\n", level)
		b.WriteString("=====================\n")
		if aliases := dead[level]; len(aliases) > 0 {
			for _, alias := range aliases {
				b.WriteString(alias + "\n")
			}
		} else {
			b.WriteString("NONE\n")
		}
		b.WriteString("\n")
	}
	return w.writeFile(DeadAliasesFile, []byte(b.String()))
}

func (w *Writer) writeFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", w.dir, err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}

// RenderTable prints a summary table of the extracted commands.
func RenderTable(out io.Writer, commands []extract.Command, width int) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetAllowedRowLength(width)
	tbl.AppendHeader(table.Row{"Command", "Aliases", "Permission", "Line"})
	for _, cmd := range commands {
		tbl.AppendRow(table.Row{cmd.Name, strings.Join(cmd.Aliases, ", "), cmd.Permission, cmd.Line})
	}
	tbl.Render()
}
