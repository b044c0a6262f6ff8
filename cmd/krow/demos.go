package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/krow/internal/demo"
	"github.com/vango-dev/krow/internal/errors"
)

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the bundled demo applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range demo.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", d.Name, d.Description)
			}
			return nil
		},
	}
}

// lookupDemo resolves a demo name or returns a K201 error.
func lookupDemo(name string) (demo.Demo, error) {
	d, ok := demo.Lookup(name)
	if !ok {
		return demo.Demo{}, errors.New("K201").
			WithDetail(fmt.Sprintf("%q is not a demo", name)).
			WithSuggestion("Run `krow demos` to list the available demos")
	}
	return d, nil
}
