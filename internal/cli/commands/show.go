package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the source body of a function or procedure",
		Long: `Print the metadata and full body of every callable with the given name.

Overloads are printed one after another. Names match case-insensitively.`,
		Example: `  # Show every overload of ADD
  snowpark-explorer show add

  # Only look at stored procedures
  snowpark-explorer show load_orders --category procedures`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cats []core.Category
			if category != "" {
				cat, err := core.ParseCategory(category)
				if err != nil {
					return err
				}
				cats = append(cats, cat)
			}
			return runShow(cmd, args[0], cats)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Restrict to functions or procedures")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"functions", "procedures"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runShow(cmd *cobra.Command, name string, cats []core.Category) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := cmdCtx.Explorer.Find(cmd.Context(), name, cats...)
	if err != nil {
		return fmt.Errorf("failed to load callables: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no function or procedure named %q in %s.%s",
			name, cmdCtx.Cfg.Target.Database, cmdCtx.Cfg.Target.Schema)
	}

	return cmdCtx.Renderer.RenderDetail(cmd.OutOrStdout(), records)
}
