// Package cli implements the goctave command-line interface.
//
// # Commands
//
//   - create: generate the ebuild of a package and of its dependencies
//   - graph: print the dependency graph of a package as DOT or SVG
//   - versions: list the known versions of a package
//   - fetch: download the package database from the mirror
//   - watch: regenerate ebuilds when their patches change
//   - cache: manage the download cache
//
// # Configuration
//
// Settings come from /etc/g-octave.cfg (or --config), GOCTAVE_* environment
// variables and the --db/--overlay flags, in increasing priority.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context and tags every line with a run id.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/goctave/internal/config"
	"github.com/matzehuels/goctave/pkg/buildinfo"
	"github.com/matzehuels/goctave/pkg/cache"
	"github.com/matzehuels/goctave/pkg/errors"
	"github.com/matzehuels/goctave/pkg/metadata"
	"github.com/matzehuels/goctave/pkg/recipe"
)

const appName = "goctave"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	v          *viper.Viper
	logOut     io.Writer
	configFile string
	verbose    bool
	logFile    io.Closer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      config.New(),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "goctave generates ebuilds for octave-forge packages",
		Long:              `goctave generates Gentoo ebuilds for the octave-forge packages of its package database, resolving each package's dependencies on other octave-forge packages and generating their ebuilds as well.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default "+config.DefaultFile+")")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.String("db", "", "package database directory")
	flags.String("overlay", "", "overlay directory ebuilds are written to")
	_ = c.v.BindPFlag("db", flags.Lookup("db"))
	_ = c.v.BindPFlag("overlay", flags.Lookup("overlay"))

	root.AddCommand(c.createCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches a run-scoped logger to the
// command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.v, c.configFile)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := logLevel(cfg.LogLevel, c.verbose)
	if err != nil {
		return err
	}
	c.SetLogLevel(level)

	if cfg.LogFile != "" {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			return err
		}
		c.logFile = f
		c.Logger.SetOutput(io.MultiWriter(c.logOut, f))
	}

	runID := uuid.NewString()
	logger := c.Logger.With("run", runID[:8])
	logger.Debug("Loaded configuration", "db", cfg.DB, "overlay", cfg.Overlay)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, logger))
	return nil
}

// Close releases the log file opened for the last command, if any.
func (c *CLI) Close() {
	if c.logFile != nil {
		c.Logger.SetOutput(c.logOut)
		_ = c.logFile.Close()
		c.logFile = nil
	}
}

// openStore opens the package database.
func (c *CLI) openStore() (*metadata.DirStore, error) {
	if _, err := os.Stat(c.Config.DB); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "package database not found, run %q first", appName+" fetch")
	}
	return metadata.OpenDir(c.Config.DB, c.Config.CategoryList())
}

// newRenderer creates a Renderer writing into the configured overlay.
func (c *CLI) newRenderer(ctx context.Context, store metadata.Store) *recipe.Renderer {
	logger := loggerFromContext(ctx)
	return recipe.NewRenderer(store, recipe.Config{
		Overlay:  c.Config.Overlay,
		Keywords: c.Config.AcceptKeywords,
		Manifest: recipe.NewCommandRunner(c.Config.ManifestCommand),
		Logger:   logger.Infof,
	})
}

// newCache opens the download cache selected by the configuration.
func (c *CLI) newCache() (cache.Cache, error) {
	return cache.New(c.Config.CacheURL, c.Config.CacheDir())
}

// withAtom tags err with the atom the user asked for.
func withAtom(atom string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s", atom)
}

// FormatError renders err for the terminal without error codes.
func FormatError(err error) string {
	return fmt.Sprintf("%s %s", styleIconError.Render(iconError), errors.UserMessage(err))
}
