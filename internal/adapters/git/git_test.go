package git_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/adapters/git"
	"go.trai.ch/zerr"
)

// fakeRunner records every invocation and replays canned results.
type fakeRunner struct {
	calls [][]string
	out   string
	err   error
}

func (f *fakeRunner) run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.out, f.err
}

func TestGit_LastReleaseTag(t *testing.T) {
	t.Run("returns the most recent release tag", func(t *testing.T) {
		runner := &fakeRunner{out: "v1.4.0"}
		g := git.NewWithRunner(runner.run)

		tag, ok, err := g.LastReleaseTag(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v1.4.0", tag)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"describe", "--tags", "--abbrev=0", "--match", "v*"}, runner.calls[0])
	})

	t.Run("no tag yet is not an error", func(t *testing.T) {
		exitErr := zerr.Wrap(&exec.ExitError{}, "git command failed")
		g := git.NewWithRunner((&fakeRunner{err: exitErr}).run)

		tag, ok, err := g.LastReleaseTag(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, tag)
	})

	t.Run("other failures surface", func(t *testing.T) {
		boom := zerr.New("git binary missing")
		g := git.NewWithRunner((&fakeRunner{err: boom}).run)

		_, _, err := g.LastReleaseTag(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestGit_ChangedFiles(t *testing.T) {
	t.Run("splits the diff output into file names", func(t *testing.T) {
		runner := &fakeRunner{out: "packages/a/index.js\npackages/b/lib.js"}
		g := git.NewWithRunner(runner.run)

		files, err := g.ChangedFiles(context.Background(), "v1.0.0")
		require.NoError(t, err)
		assert.Equal(t, []string{"packages/a/index.js", "packages/b/lib.js"}, files)
		assert.Equal(t, []string{"diff", "--name-only", "v1.0.0..HEAD"}, runner.calls[0])
	})

	t.Run("empty diff yields no files", func(t *testing.T) {
		g := git.NewWithRunner((&fakeRunner{out: ""}).run)

		files, err := g.ChangedFiles(context.Background(), "v1.0.0")
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestGit_CommitSubjectsSince(t *testing.T) {
	runner := &fakeRunner{out: "feat: widget\nfix: handle nil"}
	g := git.NewWithRunner(runner.run)

	subjects, err := g.CommitSubjectsSince(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"feat: widget", "fix: handle nil"}, subjects)
	assert.Equal(t, []string{"log", "--reverse", "--pretty=format:%s", "v1.0.0..HEAD"}, runner.calls[0])
}

func TestGit_ReleaseCommands(t *testing.T) {
	runner := &fakeRunner{out: "main"}
	g := git.NewWithRunner(runner.run)
	ctx := context.Background()

	branch, err := g.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	require.NoError(t, g.StageAll(ctx))
	require.NoError(t, g.Commit(ctx, "chore(release): v1.1.0"))
	require.NoError(t, g.Tag(ctx, "v1.1.0"))
	require.NoError(t, g.PushWithTags(ctx))

	assert.Equal(t, [][]string{
		{"rev-parse", "--abbrev-ref", "HEAD"},
		{"add", "-A"},
		{"commit", "-m", "chore(release): v1.1.0"},
		{"tag", "v1.1.0"},
		{"push", "--follow-tags"},
	}, runner.calls)
}
