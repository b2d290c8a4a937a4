package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name[@version]>...",
		Short: "Print the binary each reference resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := parseReferences(args)
			if err != nil {
				return err
			}

			resolved, err := c.app.Resolve(cmd.Context(), refs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ref := range resolved {
				_, _ = fmt.Fprintf(out, "%s %s\n", ref.Name, ref.Path)
			}
			return nil
		},
	}
}
