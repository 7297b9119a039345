package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/catalog"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates and their props",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.collaborators(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			sess := a.newSession(c, a.errOut)
			if err := sess.LoadCatalog(cmd.Context()); err != nil {
				return err
			}
			entries := sess.Catalog()

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Label, e.Filename, describeProps(e)})
			}
			return writeTable(a.out, []string{"LABEL", "FILENAME", "PROPS"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}

func describeProps(e catalog.Entry) string {
	if len(e.Props) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(e.Props))
	for _, p := range e.Props {
		parts = append(parts, fmt.Sprintf("%s:%s", p.Label, p.Kind))
	}
	return strings.Join(parts, ", ")
}
