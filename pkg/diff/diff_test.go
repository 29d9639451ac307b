package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamspirit/cmdspider/pkg/diff"
	"github.com/teamspirit/cmdspider/pkg/docs"
	"github.com/teamspirit/cmdspider/pkg/extract"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		name     string
		code     []string
		docs     []string
		codeOnly []string
		docsOnly []string
	}{
		{
			name:     "two_way_difference",
			code:     []string{"heal", "fly", "kill"},
			docs:     []string{"heal", "fly", "teleport"},
			codeOnly: []string{"kill"},
			docsOnly: []string{"teleport"},
		},
		{
			name: "equal_sets",
			code: []string{"heal", "fly"},
			docs: []string{"heal", "fly"},
		},
		{
			name:     "empty_docs",
			code:     []string{"heal"},
			codeOnly: []string{"heal"},
		},
		{
			name:     "empty_code",
			docs:     []string{"heal"},
			docsOnly: []string{"heal"},
		},
		{
			name:     "order_preserved_and_duplicates_collapsed",
			code:     []string{"z", "a", "z", "m"},
			docs:     []string{"x", "x"},
			codeOnly: []string{"z", "a", "m"},
			docsOnly: []string{"x"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := diff.Compare(c.code, c.docs)
			assert.Equal(t, c.codeOnly, result.CodeOnly)
			assert.Equal(t, c.docsOnly, result.DocsOnly)
		})
	}
}

func TestNewCommands(t *testing.T) {
	sections := docs.Sections{
		docs.Player:     {"heal", "fly"},
		docs.GameMaster: {"kill"},
	}
	commands := []extract.Command{
		// Documented via its second alias.
		{Name: "Fly", Aliases: []string{"flight", "fly"}, Permission: "Player"},
		// Not documented at all.
		{Name: "Warp", Aliases: []string{"warp"}, Permission: "GameMaster"},
		// Documented, but at the wrong level.
		{Name: "Kill", Aliases: []string{"kill"}, Permission: "Admin"},
	}

	missing := diff.NewCommands(commands, sections)
	assert.Equal(t, []string{"Warp", "Kill"}, func() []string {
		var names []string
		for _, cmd := range missing {
			names = append(names, cmd.Name)
		}
		return names
	}())
}

func TestDeadAliases(t *testing.T) {
	sections := docs.Sections{
		docs.Player: {"heal", "oldheal"},
		docs.Admin:  {"shutdown"},
	}
	commands := []extract.Command{
		{Name: "Heal", Aliases: []string{"heal"}, Permission: "Player"},
	}

	dead := diff.DeadAliases(commands, sections)
	assert.Equal(t, []string{"oldheal"}, dead[docs.Player])
	assert.Equal(t, []string{"shutdown"}, dead[docs.Admin])
	assert.Empty(t, dead[docs.GameMaster])
}

func TestDeadAliasesAllLive(t *testing.T) {
	sections := docs.Sections{docs.Player: {"heal"}}
	commands := []extract.Command{{Name: "Heal", Aliases: []string{"heal"}, Permission: "Player"}}
	assert.Empty(t, diff.DeadAliases(commands, sections))
}
