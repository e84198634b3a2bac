package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/goctave/pkg/resolver"
)

type createOptions struct {
	force      bool
	noDeps     bool
	noManifest bool
	keywords   string
}

// createCommand creates the create command for generating ebuilds.
func (c *CLI) createCommand() *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create <atom>",
		Short: "Create the ebuild of a package and of its dependencies",
		Long: `Create the ebuild of an octave-forge package in the overlay.

The atom selects the version:

  signal                  latest version
  signal-1.0.10           that exact version
  >=g-octave/signal-1.0.9 highest version satisfying the comparator
  pkg:generic/g-octave/signal@1.0.10

Dependencies on other octave-forge packages get their ebuilds too, unless
--nodeps is given. Existing ebuilds are kept unless --force is given.`,
		Example: `  goctave create signal
  goctave create --force "<=signal-1.0.10"
  goctave create --nodeps --keywords "~amd64" optim`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCreate(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "rewrite ebuilds that already exist")
	cmd.Flags().BoolVar(&opts.noDeps, "nodeps", false, "only create the ebuild of the requested package")
	cmd.Flags().BoolVar(&opts.noManifest, "no-manifest", false, "skip the manifest step")
	cmd.Flags().StringVar(&opts.keywords, "keywords", "", "ACCEPT_KEYWORDS for the written ebuilds (default from config)")

	return cmd
}

func (c *CLI) runCreate(cmd *cobra.Command, s string, opts createOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	store, err := c.openStore()
	if err != nil {
		return err
	}
	renderer := c.newRenderer(ctx, store)

	res := resolver.New(store, renderer, resolver.Options{
		Force:    opts.force,
		NoDeps:   opts.noDeps,
		Manifest: !opts.noManifest,
		Keywords: opts.keywords,
		Logger:   logger.Debugf,
	})

	prog := newProgress(logger)
	art, err := res.Create(ctx, s)
	if err != nil {
		return withAtom(s, err)
	}
	prog.done("Resolved " + s)

	if art.Written {
		printSuccess("Created %s", art.Ref)
	} else {
		printInfo("%s already exists, use --force to rewrite it", art.Ref)
	}
	printFile(art.Path)
	printDetail("purl %s", art.PURL())
	for _, p := range art.Patches {
		printDetail("patch %s", p)
	}

	if n := res.Graph().NodeCount() - 1; n > 0 && !opts.noDeps {
		printDetail("%d dependencies resolved", n)
	}
	return nil
}
