package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/prereqplanner/internal/app/models/dto"
)

func newParseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Parse prerequisite text and print the requirement tree",
		Example: `  prereqctl parse "(MATH 221 or MATH 275) and junior standing"
  prereqctl parse --json "CHICLA/SPANISH 222"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preview := dto.NewParseResponse(strings.Join(args, " "))
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(preview)
			}

			fmt.Fprintf(out, "tree:       %s\n", preview.Rendered)
			fmt.Fprintf(out, "kind:       %s\n", preview.Tree.Kind())
			if len(preview.Groups) == 0 {
				fmt.Fprintln(out, "groups:     (none)")
			}
			for i, g := range preview.Groups {
				fmt.Fprintf(out, "group %d:    %s\n", i+1, g)
			}
			for _, a := range preview.Advisories {
				fmt.Fprintf(out, "advisory:   %s\n", a)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full parse result as JSON")
	return cmd
}
