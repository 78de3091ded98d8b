package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/jsonsubschema"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the subschema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), jsonsubschema.Version)
			return nil
		},
	}
}
