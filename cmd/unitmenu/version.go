package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/unitmenu"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			bi := unitmenu.GetBuildInfo()
			if bi.Revision == "" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "unitmenu %s\n", bi.Version)
				return err
			}
			rev := bi.Revision
			if len(rev) > 12 {
				rev = rev[:12]
			}
			if bi.Modified {
				rev += "+dirty"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "unitmenu %s (%s)\n", bi.Version, rev)
			return err
		},
	}
}
