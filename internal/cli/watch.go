package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goctave/pkg/atom"
	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/metadata"
	"github.com/matzehuels/goctave/pkg/patches"
	"github.com/matzehuels/goctave/pkg/resolver"
)

// watchCommand creates the watch command, which regenerates existing
// ebuilds whenever one of their patches changes.
func (c *CLI) watchCommand() *cobra.Command {
	var noManifest bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate ebuilds when their patches change",
		Long: `Watch the patches directory of the package database. When a patch is
written, added or removed, every ebuild it applies to that already exists in
the overlay is created again. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, !noManifest)
		},
	}

	cmd.Flags().BoolVar(&noManifest, "no-manifest", false, "skip the manifest step")
	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, manifest bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	store, err := c.openStore()
	if err != nil {
		return err
	}
	renderer := c.newRenderer(ctx, store)

	w, err := patches.NewWatcher(store.PatchesRoot())
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	defer w.Stop()

	printInfo("Watching %s", w.Dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			logger.Debug("Patch changed", "file", change.File, "removed", change.Removed)
			for _, ref := range affected(store, renderer, filepath.Base(change.File)) {
				res := resolver.New(store, renderer, resolver.Options{
					Force:    true,
					NoDeps:   true,
					Manifest: manifest,
					Logger:   logger.Debugf,
				})
				art, err := res.Create(ctx, ref)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					logger.Debug("Regenerate failed", "atom", ref, "err", err)
					printWarning("Could not regenerate %s: %s", ref, errors.UserMessage(err))
					continue
				}
				printSuccess("Regenerated %s", art.Ref)
			}
		}
	}
}

// catalog is a Store that can enumerate its packages.
type catalog interface {
	metadata.Store
	Names() []string
}

// existence is the part of the renderer affected needs.
type existence interface {
	Exists(name, ver string) bool
}

// affected returns the pinned atoms of the existing ebuilds the patch file
// applies to.
func affected(store catalog, r existence, file string) []string {
	var refs []string
	for _, name := range store.Names() {
		vs, err := store.AllVersions(name)
		if err != nil {
			continue
		}
		for _, v := range vs {
			if patches.Match(file, name, v) && r.Exists(name, v) {
				refs = append(refs, atom.Ref(name, v))
			}
		}
	}
	return refs
}
