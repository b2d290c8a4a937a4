package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	var (
		typeName   string
		methodName string
		refs       []string
	)

	cmd := &cobra.Command{
		Use:   "check <sources...>",
		Short: "Compile fragments concurrently and report which ones bind",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := requestOptions(typeName, methodName, refs)
			if err != nil {
				return err
			}

			results := c.app.Check(cmd.Context(), args, opts...)

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.OK() {
					_, _ = fmt.Fprintf(out, "ok    %s\n", r.Source)
					continue
				}
				failed++
				_, _ = fmt.Fprintf(out, "FAIL  %s\n", r.Source)
				for _, line := range strings.Split(r.Err.Error(), "\n") {
					_, _ = fmt.Fprintf(out, "      %s\n", line)
				}
			}

			if failed > 0 {
				return zerr.Wrap(domain.ErrCheckFailed, fmt.Sprintf("%d of %d sources failed", failed, len(results)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", domain.DefaultTypeName, "Entry type to bind")
	cmd.Flags().StringVarP(&methodName, "method", "m", domain.DefaultMethodName, "Entry method to bind")
	cmd.Flags().StringArrayVarP(&refs, "ref", "r", nil, "Reference as name[@version] (repeatable)")
	return cmd
}
