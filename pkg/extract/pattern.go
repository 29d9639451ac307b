package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternSpec defines an extraction pattern (usually in YAML).
//
// A spec describes one of two shapes. A "capture" pattern has a Capture
// regex whose first group yields a command identifier, one per match, in
// left-to-right order; this covers quoted-literal equality checks such as
// `.equals("heal")`. An "annotation" pattern has an Aliases regex applied
// to lines gated by When, with the command's class name taken from the
// following line; this covers Swordie-style `@Command({...}, Level)`
// declarations.
type PatternSpec struct {
	Name string `yaml:"name,omitempty"`

	// When gates a line: if set, the pattern only applies to lines
	// containing this substring.
	When string `yaml:"when,omitempty"`

	// Capture extracts identifiers directly; group 1 is the identifier.
	Capture string `yaml:"capture,omitempty"`

	// Aliases extracts a delimited alias list; group 1 is the list body.
	Aliases string `yaml:"aliases,omitempty"`

	// AliasesFallback extracts a single alias when Aliases does not match.
	AliasesFallback string `yaml:"aliases_fallback,omitempty"`

	// Permission extracts the required permission level; group 1 is the level.
	Permission string `yaml:"permission,omitempty"`

	// NameFromNextLine takes the command name from a class declaration on
	// the line after the match, falling back to the first alias.
	NameFromNextLine bool `yaml:"name_from_next_line,omitempty"`
}

// Pattern is a compiled PatternSpec.
type Pattern struct {
	spec            PatternSpec
	capture         *regexp.Regexp
	aliases         *regexp.Regexp
	aliasesFallback *regexp.Regexp
	permission      *regexp.Regexp
}

var classNameRe = regexp.MustCompile(`class\s+(\w+)`)

// Compile validates and compiles a pattern spec.
func Compile(spec PatternSpec) (*Pattern, error) {
	if spec.Capture == "" && spec.Aliases == "" {
		return nil, fmt.Errorf("pattern must define capture or aliases")
	}
	if spec.Capture != "" && spec.Aliases != "" {
		return nil, fmt.Errorf("pattern cannot define both capture and aliases")
	}
	p := &Pattern{spec: spec}
	var err error
	if spec.Capture != "" {
		if p.capture, err = compileGroup(spec.Capture); err != nil {
			return nil, err
		}
	}
	if spec.Aliases != "" {
		if p.aliases, err = compileGroup(spec.Aliases); err != nil {
			return nil, err
		}
	}
	if spec.AliasesFallback != "" {
		if p.aliasesFallback, err = compileGroup(spec.AliasesFallback); err != nil {
			return nil, err
		}
	}
	if spec.Permission != "" {
		if p.permission, err = compileGroup(spec.Permission); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func compileGroup(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("expression %q needs a capture group", expr)
	}
	return re, nil
}

// Name returns the pattern's configured name.
func (p *Pattern) Name() string { return p.spec.Name }

// Kind reports whether the pattern is a capture or annotation pattern.
func (p *Pattern) Kind() string {
	if p.capture != nil {
		return "capture"
	}
	return "annotation"
}

// apply runs the pattern against lines[i], returning zero or more commands.
func (p *Pattern) apply(lines []string, i int) []Command {
	line := lines[i]
	if p.spec.When != "" && !strings.Contains(line, p.spec.When) {
		return nil
	}

	if p.capture != nil {
		var out []Command
		for _, m := range p.capture.FindAllStringSubmatch(line, -1) {
			out = append(out, Command{Name: m[1], Aliases: []string{m[1]}})
		}
		return out
	}

	aliases := p.extractAliases(line)
	if len(aliases) == 0 {
		return nil
	}
	cmd := Command{Aliases: aliases, Name: aliases[0]}
	if p.permission != nil {
		if m := p.permission.FindStringSubmatch(line); m != nil {
			cmd.Permission = m[1]
		}
	}
	if p.spec.NameFromNextLine && i+1 < len(lines) {
		if m := classNameRe.FindStringSubmatch(lines[i+1]); m != nil {
			cmd.Name = m[1]
		}
	}
	return []Command{cmd}
}

func (p *Pattern) extractAliases(line string) []string {
	if m := p.aliases.FindStringSubmatch(line); m != nil {
		return splitAliases(m[1])
	}
	if p.aliasesFallback != nil {
		if m := p.aliasesFallback.FindStringSubmatch(line); m != nil {
			return []string{strings.TrimSpace(m[1])}
		}
	}
	return nil
}

func splitAliases(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
