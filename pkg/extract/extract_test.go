package extract_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamspirit/cmdspider"
	"github.com/teamspirit/cmdspider/pkg/extract"
)

func defaultExtractor(t *testing.T) *extract.Extractor {
	t.Helper()
	specs, err := cmdspider.LoadPatterns()
	require.NoError(t, err)
	e, err := extract.NewExtractor(specs)
	require.NoError(t, err)
	return e
}

func names(commands []extract.Command) []string {
	var out []string
	for _, cmd := range commands {
		out = append(out, cmd.Name)
	}
	return out
}

func TestExtractLiteralChecks(t *testing.T) {
	source := strings.Join([]string{
		`if (cmd.equals("heal")) {`,
		`} else if (cmd.equals("fly")) {`,
		`} else if (cmd.equals("kill")) {`,
		`}`,
	}, "\n")

	commands, err := defaultExtractor(t).Extract(strings.NewReader(source))
	require.NoError(t, err)
	assert.Equal(t, []string{"heal", "fly", "kill"}, names(commands))
}

func TestExtractAnnotations(t *testing.T) {
	source := strings.Join([]string{
		`@Command(names = {"heal", "h"}, requiredType = Type.GameMaster)`,
		`public static class Heal extends AdminCommand {`,
		`}`,
		`@Command(names = "offsetmob", requiredType = Type.Admin)`,
		`public static class OffsetMob extends AdminCommand {`,
		`}`,
	}, "\n")

	commands, err := defaultExtractor(t).Extract(strings.NewReader(source))
	require.NoError(t, err)
	require.Len(t, commands, 2)

	assert.Equal(t, "Heal", commands[0].Name)
	assert.Equal(t, []string{"heal", "h"}, commands[0].Aliases)
	assert.Equal(t, "GameMaster", commands[0].Permission)
	assert.Equal(t, 1, commands[0].Line)

	assert.Equal(t, "OffsetMob", commands[1].Name)
	assert.Equal(t, []string{"offsetmob"}, commands[1].Aliases)
	assert.Equal(t, "Admin", commands[1].Permission)
	assert.Equal(t, 4, commands[1].Line)
}

func TestExtractEdgeCases(t *testing.T) {
	e := defaultExtractor(t)

	cases := []struct {
		name   string
		source string
		expect []string
	}{
		{
			name:   "empty_file",
			source: "",
			expect: nil,
		},
		{
			name:   "no_matches",
			source: "package foo\n// just a comment\nreturn nil\n",
			expect: nil,
		},
		{
			name:   "duplicates_collapse_to_first_seen",
			source: "if (a.equals(\"heal\")) {\nif (b.equals(\"fly\")) {\nif (c.equals(\"heal\")) {\n",
			expect: []string{"heal", "fly"},
		},
		{
			name:   "multiple_matches_per_line_left_to_right",
			source: `if (s.equals("warp") || s.contains("goto")) {`,
			expect: []string{"warp", "goto"},
		},
		{
			name:   "case_sensitive",
			source: "if (s.equals(\"Heal\")) {\nif (s.equals(\"heal\")) {\n",
			expect: []string{"Heal", "heal"},
		},
		{
			name:   "malformed_annotation_skipped",
			source: "@Command(\npublic static class Broken {\n",
			expect: nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			commands, err := e.Extract(strings.NewReader(c.source))
			assert.NoError(t, err)
			assert.Equal(t, c.expect, names(commands))
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	source := `if (cmd.equals("heal")) {` + "\n" + `@Command(names = {"fly"}, requiredType = Type.Admin)` + "\n"
	e := defaultExtractor(t)

	first, err := e.Extract(strings.NewReader(source))
	require.NoError(t, err)
	second, err := e.Extract(strings.NewReader(source))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractFile(t *testing.T) {
	fsys := fstest.MapFS{
		"AdminCommands.java": &fstest.MapFile{Data: []byte(`if (cmd.equals("heal")) {`)},
	}
	e := defaultExtractor(t)

	commands, err := e.ExtractFile(fsys, "AdminCommands.java")
	require.NoError(t, err)
	assert.Equal(t, []string{"heal"}, names(commands))

	_, err = e.ExtractFile(fsys, "Missing.java")
	assert.Error(t, err)
}

func TestAliases(t *testing.T) {
	commands := []extract.Command{
		{Name: "Heal", Aliases: []string{"heal", "h"}},
		{Name: "Fly", Aliases: []string{"fly"}},
	}
	assert.Equal(t, []string{"heal", "h", "fly"}, extract.Aliases(commands))
}
