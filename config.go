// Package cmdspider extracts admin command definitions from a Swordie-like
// game-server source file and compares them against the SpiritSuite docs.
package cmdspider

import (
	"embed"

	"github.com/teamspirit/cmdspider/pkg/extract"
)

//go:embed patterns
var patternData embed.FS

// LoadPatterns loads the default embedded extraction patterns.
func LoadPatterns() ([]extract.PatternSpec, error) {
	return extract.LoadFromYAMLDir(patternData, "patterns")
}
