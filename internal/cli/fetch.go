package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goctave/pkg/buildinfo"
	"github.com/matzehuels/goctave/pkg/mirror"
)

// fetchCommand creates the fetch command, which brings the package
// database up to date with the configured mirror.
func (c *CLI) fetchCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the package database from the mirror",
		Long: `Download the package database listed in the mirror's index.toml into the
db directory. Files whose digest already matches are skipped and verified
downloads are kept in the cache for later runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = c.Config.DBMirror
			}
			return c.runFetch(cmd, url)
		},
	}

	cmd.Flags().StringVar(&url, "mirror", "", "mirror URL (default db_mirror from config)")
	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, url string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := c.Config.EnsureDirs(); err != nil {
		return err
	}
	downloads, err := c.newCache()
	if err != nil {
		return err
	}
	defer downloads.Close()

	syncer := &mirror.Syncer{
		URL:    url,
		Root:   c.Config.DB,
		Getter: mirror.NewBreakerGetter(mirror.NewFetcher(mirror.WithUserAgent(buildinfo.UserAgent()))),
		Cache:  downloads,
		TTL:    c.Config.CacheTTL,
		Logger: logger.Debugf,
	}

	spinner := newSpinnerWithContext(ctx, "Fetching package database...")
	spinner.Start()
	res, err := syncer.Sync(ctx)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.StopWithSuccess("Package database is up to date")
	printKeyValue("Fetched", strconv.Itoa(res.Fetched))
	printKeyValue("Cached", strconv.Itoa(res.Cached))
	printKeyValue("Current", strconv.Itoa(res.Current))
	printDetail("Directory: %s", c.Config.DB)
	return nil
}
