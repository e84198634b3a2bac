package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goctave/pkg/atom"
	"github.com/matzehuels/goctave/pkg/errors"
)

// versionsCommand creates the versions command listing the known versions
// of a package, oldest first.
func (c *CLI) versionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <name>",
		Short: "List the known versions of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := errors.ValidatePackageName(name); err != nil {
				return err
			}
			store, err := c.openStore()
			if err != nil {
				return err
			}
			vs, err := store.AllVersions(name)
			if err != nil {
				return err
			}
			if len(vs) == 0 {
				return errors.New(errors.ErrCodePackageNotFound, "package not found: %s", name)
			}
			latest, err := store.LatestVersion(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range vs {
				line := atom.Ref(name, v)
				if v == latest {
					line += " (latest)"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
