// Package registry provides an exec-based npm registry publisher.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes the registry client in a package directory.
// It is injectable so tests can substitute a fake.
type Runner func(ctx context.Context, dir string, args ...string) error

// execRunner runs npm via os/exec, attaching exit code and output as error
// metadata on failure.
func execRunner(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "npm", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "npm command failed"), "args", strings.Join(args, " "))
		wrapped = zerr.With(wrapped, "output", strings.TrimSpace(string(out)))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			wrapped = zerr.With(wrapped, "exit_code", exitErr.ExitCode())
		}
		return wrapped
	}
	return nil
}

// NPM implements ports.Publisher by shelling out to the npm binary.
type NPM struct {
	run    Runner
	logger ports.Logger
}

// New creates a new NPM publisher using the real npm binary.
func New(logger ports.Logger) *NPM {
	return &NPM{run: execRunner, logger: logger}
}

// NewWithRunner creates an NPM publisher with a custom runner. Used for testing.
func NewWithRunner(run Runner, logger ports.Logger) *NPM {
	return &NPM{run: run, logger: logger}
}

var _ ports.Publisher = (*NPM)(nil)

// Publish runs one npm publish in the package directory. The call blocks
// until npm exits; a dry run passes --dry-run through to npm untouched.
func (n *NPM) Publish(ctx context.Context, req ports.PublishRequest) error {
	args := []string{"publish", "--tag", req.DistTag}
	if req.Access != "" {
		args = append(args, "--access", req.Access)
	}
	if req.DryRun {
		args = append(args, "--dry-run")
	}

	if req.DryRun {
		n.logger.Info(fmt.Sprintf("dry run: npm %s in %s", strings.Join(args, " "), req.Dir))
	}

	return n.run(ctx, req.Dir, args...)
}
