package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fuse/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var (
		typeName   string
		methodName string
		input      string
		origin     string
		refs       []string
	)

	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Compile a fragment and invoke its entry point once",
		Long: `Compile a fragment and invoke its entry point once, printing the result as JSON.

The source is Go text, a path ending in .go or .fuse, or "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			opts, err := requestOptions(typeName, methodName, refs)
			if err != nil {
				return err
			}
			if origin != "" {
				file, line, err := parseOrigin(origin)
				if err != nil {
					return err
				}
				opts = append(opts, domain.WithOrigin(file, line))
			}

			value, err := parseInput(input)
			if err != nil {
				return err
			}

			result, err := c.app.Invoke(cmd.Context(), domain.NewCompilationRequest(source, opts...), value)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", domain.DefaultTypeName, "Entry type to bind")
	cmd.Flags().StringVarP(&methodName, "method", "m", domain.DefaultMethodName, "Entry method to invoke")
	cmd.Flags().StringArrayVarP(&refs, "ref", "r", nil, "Reference as name[@version] (repeatable)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input value as JSON")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin of the fragment as file[:line], used for line markers")
	return cmd
}
