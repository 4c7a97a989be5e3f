package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polymer/pkg/pipeline"
)

// viewCommand opens the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags    chainFlags
		render   renderFlags
		savePath string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore a chain in the terminal",
		Long: `Open an interactive terminal viewer. Arrow keys rotate the chain, +/- zoom,
r generates a new chain with the same parameters, s saves the current chain as
XYZ and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var po pipeline.Options
			flags.apply(cmd, c.Config, &po)
			render.apply(cmd, c.Config, &po)
			// Validation also installs a discarding logger, which keeps
			// log lines out of the alternate screen.
			if err := po.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			p := tea.NewProgram(NewViewerModel(ctx, runner, po, savePath), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	render.register(cmd)
	cmd.Flags().StringVar(&savePath, "save", pipeline.DefaultFilename, "file written when pressing s")

	return cmd
}
