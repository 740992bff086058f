package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neboloop/socialshare/internal/svc"
)

func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the registered settings fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := svc.BuildSchema()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tTYPE\tSECTION\tDEFAULT")
			for _, f := range schema.Fields() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", f.Key, f.Type, f.Section, f.Default)
			}
			return w.Flush()
		},
	}
}
