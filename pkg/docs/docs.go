// Package docs parses the SpiritSuite command documentation.
package docs

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Level is a command permission level, as named in the docs headings.
type Level string

const (
	Player     Level = "Player"
	Tester     Level = "Tester"
	Intern     Level = "Intern"
	GameMaster Level = "GameMaster"
	Admin      Level = "Admin"
)

// Levels lists all permission levels in ascending order of privilege.
var Levels = []Level{Player, Tester, Intern, GameMaster, Admin}

// LevelOf maps a permission name from source code to a docs level.
// Unrecognized names are treated as Admin, the most restrictive level.
func LevelOf(name string) Level {
	for _, l := range Levels {
		if string(l) == name {
			return l
		}
	}
	return Admin
}

// Sections holds the documented command aliases per permission level,
// each list in document order.
type Sections map[Level][]string

// Parse reads the docs file and collects command aliases per section.
//
// Sections are delimited by "## <Level> level commands:" headings. Only
// lines of the form "**!name**\" (a bold command with a trailing hard
// line break) declare a command; other bold mentions, such as usage
// examples, are ignored. This mirrors the docs formatting convention.
func Parse(r io.Reader) (Sections, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading docs: %w", err)
	}

	sections := make(Sections)
	level := Player
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		if l, ok := headingLevel(line); ok {
			level = l
			continue
		}
		if name, ok := commandLine(line); ok {
			sections[level] = append(sections[level], name)
		}
	}
	return sections, nil
}

// ParseFile opens the named docs file in fsys and parses it.
func ParseFile(fsys fs.FS, name string) (Sections, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening docs file %s: %w", name, err)
	}
	defer f.Close()
	return Parse(f)
}

func headingLevel(line string) (Level, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	rest := strings.TrimPrefix(line, "## ")
	for _, l := range Levels {
		if strings.HasPrefix(rest, string(l)+" level commands") {
			return l, true
		}
	}
	return "", false
}

func commandLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	start := strings.Index(line, "**!")
	if start < 0 || !strings.HasSuffix(line, `**\`) {
		return "", false
	}
	name := line[start+3 : len(line)-3]
	if name == "" {
		return "", false
	}
	return name, true
}

// All flattens the sections into one alias list, in level order.
func (s Sections) All() []string {
	var out []string
	for _, l := range Levels {
		out = append(out, s[l]...)
	}
	return out
}

// Contains reports whether the alias is documented at the given level.
func (s Sections) Contains(level Level, alias string) bool {
	for _, a := range s[level] {
		if a == alias {
			return true
		}
	}
	return false
}
