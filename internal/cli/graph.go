package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goctave/pkg/dag"
	"github.com/matzehuels/goctave/pkg/errors"
	graphio "github.com/matzehuels/goctave/pkg/io"
	"github.com/matzehuels/goctave/pkg/render/nodelink"
	"github.com/matzehuels/goctave/pkg/resolver"
)

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

type graphOptions struct {
	format   string
	output   string
	from     string
	detailed bool
}

// graphCommand creates the graph command, which resolves an atom without
// writing anything and prints the dependency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph [atom]",
		Short: "Print the dependency graph of a package",
		Long: `Resolve a package and its dependencies without writing ebuilds and print
the resulting graph as Graphviz DOT, SVG or JSON. The JSON output also
lists the packages in the order they have to be emerged.

With --from, a graph saved earlier with --format json is read instead of
resolving an atom, so no package database is needed.`,
		Example: `  goctave graph signal
  goctave graph --format svg -o signal.svg signal
  goctave graph --format json -o signal.json signal
  goctave graph --from signal.json --format svg -o signal.svg`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.from != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			atom := ""
			if len(args) > 0 {
				atom = args[0]
			}
			return c.runGraph(cmd, atom, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", formatDOT, "output format: dot, svg or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.from, "from", "", "read a JSON graph file instead of resolving an atom")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include every metadata entry in node labels")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, s string, opts graphOptions) error {
	switch opts.format {
	case formatDOT, formatSVG, formatJSON:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want dot, svg or json)", opts.format)
	}
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		g   *dag.DAG
		err error
	)
	if opts.from != "" {
		g, err = readGraph(opts.from)
		if err != nil {
			return err
		}
		logger.Debug("Loaded graph", "file", opts.from, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	} else {
		store, err := c.openStore()
		if err != nil {
			return err
		}
		res := resolver.New(store, c.newRenderer(ctx, store), resolver.Options{Logger: logger.Debugf})

		g, err = res.Plan(ctx, s)
		if err != nil {
			return withAtom(s, err)
		}
		logger.Debug("Planned graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	}

	var data []byte
	switch opts.format {
	case formatJSON:
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	case formatSVG:
		if data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})); err != nil {
			return err
		}
	default:
		data = []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed}))
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Wrote %s graph", opts.format)
	printFile(opts.output)
	return nil
}

func readGraph(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open graph file")
	}
	defer f.Close()

	g, err := graphio.ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph %s", path)
	}
	return g, nil
}
