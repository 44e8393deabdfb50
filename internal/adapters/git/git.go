// Package git provides an exec-based version-control adapter.
package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes a git subcommand and returns its trimmed stdout.
// It is injectable so tests can substitute a fake.
type Runner func(ctx context.Context, args ...string) (string, error)

// execRunner runs git via os/exec, attaching exit code and stderr as error
// metadata on failure.
func execRunner(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "git command failed"), "args", strings.Join(args, " "))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			wrapped = zerr.With(wrapped, "exit_code", exitErr.ExitCode())
			wrapped = zerr.With(wrapped, "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", wrapped
	}
	return strings.TrimSpace(string(out)), nil
}

// Git implements ports.VCS by shelling out to the git binary.
type Git struct {
	run Runner
}

// New creates a new Git adapter using the real git binary.
func New() *Git {
	return &Git{run: execRunner}
}

// NewWithRunner creates a Git adapter with a custom runner. Used for testing.
func NewWithRunner(run Runner) *Git {
	return &Git{run: run}
}

var _ ports.VCS = (*Git)(nil)

// LastReleaseTag returns the most recent v-prefixed tag reachable from HEAD.
// A repository without any release tag reports ok=false, not an error.
func (g *Git) LastReleaseTag(ctx context.Context) (string, bool, error) {
	tag, err := g.run(ctx, "describe", "--tags", "--abbrev=0", "--match", "v*")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, err
	}
	return tag, tag != "", nil
}

// ChangedFiles lists file names changed between the marker and HEAD.
func (g *Git) ChangedFiles(ctx context.Context, since string) ([]string, error) {
	out, err := g.run(ctx, "diff", "--name-only", since+"..HEAD")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitSubjectsSince lists commit subject lines after the marker, oldest first.
func (g *Git) CommitSubjectsSince(ctx context.Context, since string) ([]string, error) {
	out, err := g.run(ctx, "log", "--reverse", "--pretty=format:%s", since+"..HEAD")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CurrentBranch returns the name of the checked-out branch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// StageAll stages every pending change in the working tree.
func (g *Git) StageAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", "-A")
	return err
}

// Commit records a commit with the given message.
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// Tag creates a lightweight tag at HEAD.
func (g *Git) Tag(ctx context.Context, name string) error {
	_, err := g.run(ctx, "tag", name)
	return err
}

// PushWithTags pushes commits and their tags to the remote.
func (g *Git) PushWithTags(ctx context.Context) error {
	_, err := g.run(ctx, "push", "--follow-tags")
	return err
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
