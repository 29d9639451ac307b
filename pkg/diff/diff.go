// Package diff compares extracted commands against documented ones.
package diff

import (
	"github.com/teamspirit/cmdspider/pkg/docs"
	"github.com/teamspirit/cmdspider/pkg/extract"
)

// Comparison is a two-way set difference between code and docs identifiers.
type Comparison struct {
	CodeOnly []string
	DocsOnly []string
}

// Compare computes code − docs and docs − code, with exact string matching.
// Each side keeps its original order, collapsing duplicates to the first
// occurrence.
func Compare(code, docs []string) Comparison {
	return Comparison{
		CodeOnly: subtract(code, docs),
		DocsOnly: subtract(docs, code),
	}
}

func subtract(from, remove []string) []string {
	removeSet := make(map[string]struct{}, len(remove))
	for _, s := range remove {
		removeSet[s] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(from))
	for _, s := range from {
		if _, ok := removeSet[s]; ok {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NewCommands returns the extracted commands for which none of the aliases
// appear in the docs section matching their permission level. These are
// either missing from the docs or listed at the wrong level.
func NewCommands(commands []extract.Command, sections docs.Sections) []extract.Command {
	var out []extract.Command
	for _, cmd := range commands {
		level := docs.LevelOf(cmd.Permission)
		documented := false
		for _, alias := range cmd.Aliases {
			if sections.Contains(level, alias) {
				documented = true
				break
			}
		}
		if !documented {
			out = append(out, cmd)
		}
	}
	return out
}

// DeadAliases returns, per level, the documented aliases that no extracted
// command carries any more.
func DeadAliases(commands []extract.Command, sections docs.Sections) map[docs.Level][]string {
	live := make(map[string]struct{})
	for _, alias := range extract.Aliases(commands) {
		live[alias] = struct{}{}
	}
	dead := make(map[docs.Level][]string)
	for _, level := range docs.Levels {
		for _, alias := range sections[level] {
			if _, ok := live[alias]; !ok {
				dead[level] = append(dead[level], alias)
			}
		}
	}
	return dead
}
