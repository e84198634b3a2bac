package recipe

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/goctave/pkg/errors"
)

// DefaultManifestCommand is the package manager tool that digests an ebuild.
const DefaultManifestCommand = "ebuild"

// ManifestRunner generates the Manifest next to a freshly written ebuild.
type ManifestRunner interface {
	Run(ctx context.Context, ebuild string) error
}

// CommandRunner runs "<Command> <ebuild> manifest".
type CommandRunner struct {
	Command string
}

// NewCommandRunner returns a runner for command, or for
// DefaultManifestCommand when command is empty.
func NewCommandRunner(command string) *CommandRunner {
	if command == "" {
		command = DefaultManifestCommand
	}
	return &CommandRunner{Command: command}
}

// Run executes the manifest command. A non-zero exit status, or a command
// that cannot be started, yields a MANIFEST_FAILED error.
func (c *CommandRunner) Run(ctx context.Context, ebuild string) error {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Command, ebuild, "manifest")
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return errors.Wrap(errors.ErrCodeManifestFailed, err, "failed to create Manifest for %s", ebuild)
		}
		return errors.Wrap(errors.ErrCodeManifestFailed, err, "failed to create Manifest for %s: %s", ebuild, msg)
	}
	return nil
}

// ManifestFunc adapts a function to the ManifestRunner interface.
type ManifestFunc func(ctx context.Context, ebuild string) error

// Run calls f.
func (f ManifestFunc) Run(ctx context.Context, ebuild string) error { return f(ctx, ebuild) }
