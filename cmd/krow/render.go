package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/internal/errors"
	"github.com/vango-dev/krow/internal/snapshot"
)

func (c *cli) renderCmd() *cobra.Command {
	var (
		document bool
		ops      bool
	)

	cmd := &cobra.Command{
		Use:   "render <demo>",
		Short: "Render a demo to HTML",
		Long: `Mount a demo on an in-memory surface and print the resulting markup.

Examples:
  krow render counter
  krow render todos --document > todos.html
  krow render list --ops`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lookupDemo(args[0])
			if err != nil {
				return err
			}
			snap, err := snapshot.Render(cmd.Context(), d.Name, d.New, krow.WithLogger(c.logger))
			if err != nil {
				return errors.New("K302").WithDetail(d.Name).Wrap(err)
			}

			w := cmd.OutOrStdout()
			switch {
			case ops:
				for _, op := range snap.Ops {
					fmt.Fprintln(w, op)
				}
			case document:
				w.Write(snap.Document())
			default:
				fmt.Fprintln(w, snap.HTML)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&document, "document", "d", false, "Wrap the markup in a complete HTML document")
	cmd.Flags().BoolVar(&ops, "ops", false, "Print the surface writes instead of the markup")
	cmd.MarkFlagsMutuallyExclusive("document", "ops")

	return cmd
}
