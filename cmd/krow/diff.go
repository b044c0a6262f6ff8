package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/krow/internal/errors"
	"github.com/vango-dev/krow/pkg/diff"
)

var (
	addColor    = color.New(color.FgGreen)
	removeColor = color.New(color.FgRed)
	moveColor   = color.New(color.FgYellow)
	noopColor   = color.New(color.Faint)
)

func (c *cli) diffCmd() *cobra.Command {
	var objects bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show the edits turning one list into another",
		Long: `Run the sequence differ the patch engine uses for children and print
the add, remove, move and noop operations it produces. Lists are
comma-separated.

With --objects, items are key=value pairs and the object differ is used
instead.

Examples:
  krow diff a,b,c c,a,d
  krow diff --objects id=1,title=old id=1,title=new,done=true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if objects {
				return runObjectsDiff(w, args[0], args[1])
			}
			return runSequenceDiff(w, splitList(args[0]), splitList(args[1]))
		},
	}

	cmd.Flags().BoolVar(&objects, "objects", false, "Compare key=value maps instead of sequences")

	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runSequenceDiff(w io.Writer, old, next []string) error {
	ops := diff.SequenceComparable(old, next)

	counts := map[diff.OpKind]int{}
	for _, op := range ops {
		counts[op.Kind]++
		switch op.Kind {
		case diff.OpAdd:
			addColor.Fprintf(w, "+ add %q at %d\n", op.Item, op.Index)
		case diff.OpRemove:
			removeColor.Fprintf(w, "- remove %q at %d\n", op.Item, op.Index)
		case diff.OpMove:
			moveColor.Fprintf(w, "~ move %q %d -> %d\n", op.Item, op.From, op.Index)
		case diff.OpNoop:
			noopColor.Fprintf(w, "  noop %q at %d\n", op.Item, op.Index)
		}
	}

	got, err := diff.Apply(old, ops)
	if err != nil || !slices.Equal(got, next) {
		return errors.New("K202").
			WithDetail(fmt.Sprintf("replaying the edits gave %v, want %v", got, next)).
			Wrap(err)
	}

	fmt.Fprintf(w, "\n%d added, %d removed, %d moved, %d unchanged\n",
		counts[diff.OpAdd], counts[diff.OpRemove], counts[diff.OpMove], counts[diff.OpNoop])
	return nil
}

func parseObject(w io.Writer, s string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range splitList(s) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.New("K202").
				WithDetail(fmt.Sprintf("%q is not a key=value pair", pair)).
				WithSuggestion("Write objects as key=value,key=value")
		}
		if _, dup := out[k]; dup {
			warn(w, "duplicate key %q, the last value wins", k)
		}
		out[k] = v
	}
	return out, nil
}

func runObjectsDiff(w io.Writer, oldArg, newArg string) error {
	old, err := parseObject(w, oldArg)
	if err != nil {
		return err
	}
	next, err := parseObject(w, newArg)
	if err != nil {
		return err
	}

	d := diff.Objects(old, next, func(a, b string) bool { return a == b })
	for _, k := range d.Added {
		addColor.Fprintf(w, "+ %s=%s\n", k, next[k])
	}
	for _, k := range d.Removed {
		removeColor.Fprintf(w, "- %s=%s\n", k, old[k])
	}
	for _, k := range d.Updated {
		moveColor.Fprintf(w, "~ %s=%s -> %s\n", k, old[k], next[k])
	}
	if d.Empty() {
		fmt.Fprintln(w, "no differences")
	}
	return nil
}
