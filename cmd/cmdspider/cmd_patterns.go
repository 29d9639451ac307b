package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/teamspirit/cmdspider/pkg/extract"
)

func patternsCmd() *cobra.Command {
	var patternsDir string
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Validate and list the extraction patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := loadPatternSpecs(patternsDir)
			if err != nil {
				return err
			}
			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.AppendHeader(table.Row{"Pattern", "Kind", "When"})
			for _, spec := range specs {
				p, err := extract.Compile(spec)
				if err != nil {
					return fmt.Errorf("pattern %q: %w", spec.Name, err)
				}
				tbl.AppendRow(table.Row{p.Name(), p.Kind(), spec.When})
			}
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&patternsDir, "patterns", "",
		"Path to a custom pattern directory (replacing the default embedded patterns).")
	return cmd
}
