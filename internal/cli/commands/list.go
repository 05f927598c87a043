package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/snowpark-explorer/internal/present"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [functions|procedures|all]",
		Short: "List user-defined functions and stored procedures",
		Long: `List the UDFs, UDTFs and stored procedures of the configured database and schema
with their imports, packages, handler and creation date.

Output adapts to environment:
  - Terminal: Styled table with the first line of each body
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, csv, html, json, yaml`,
		Example: `  # List functions and procedures
  snowpark-explorer list

  # List only stored procedures as JSON
  snowpark-explorer list procedures --output json

  # Keep going when one object cannot be described
  snowpark-explorer list --partial`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"functions", "procedures", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := categoriesFromArgs(args)
			if err != nil {
				return err
			}
			return runList(cmd, cats)
		},
	}

	return cmd
}

func categoriesFromArgs(args []string) ([]core.Category, error) {
	if len(args) == 0 || args[0] == "all" {
		return core.Categories(), nil
	}
	cat, err := core.ParseCategory(args[0])
	if err != nil {
		return nil, err
	}
	return []core.Category{cat}, nil
}

func runList(cmd *cobra.Command, cats []core.Category) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := cmdCtx.Explorer.LoadCategories(cmd.Context(), cats...)
	if err != nil {
		return fmt.Errorf("failed to list callables: %w", err)
	}

	return cmdCtx.Renderer.Render(cmd.OutOrStdout(), present.Groups(results))
}
