package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/cmd/lockstep/commands"
	"go.trai.ch/lockstep/internal/app"
	"go.trai.ch/lockstep/internal/core/domain"
)

// recordingApp captures the options each operation was invoked with.
type recordingApp struct {
	versionOpts *app.VersionOptions
	publishOpts *app.PublishOptions
	err         error
}

func (r *recordingApp) Version(_ context.Context, opts app.VersionOptions) error {
	r.versionOpts = &opts
	return r.err
}

func (r *recordingApp) Publish(_ context.Context, opts app.PublishOptions) error {
	r.publishOpts = &opts
	return r.err
}

func execute(t *testing.T, a commands.Application, args ...string) error {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	cli.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	return cli.Execute(context.Background())
}

func TestVersionCommand(t *testing.T) {
	t.Run("defaults to a patch bump", func(t *testing.T) {
		a := &recordingApp{}
		require.NoError(t, execute(t, a, "version"))

		require.NotNil(t, a.versionOpts)
		assert.Equal(t, domain.BumpPatch, a.versionOpts.Type)
		assert.False(t, a.versionOpts.SkipCI)
		assert.False(t, a.versionOpts.NoGitCommit)
	})

	t.Run("wires every flag through", func(t *testing.T) {
		a := &recordingApp{}
		require.NoError(t, execute(t, a, "version", "-t", "minor", "--ci", "--no-git-commit"))

		require.NotNil(t, a.versionOpts)
		assert.Equal(t, domain.BumpMinor, a.versionOpts.Type)
		assert.True(t, a.versionOpts.SkipCI)
		assert.True(t, a.versionOpts.NoGitCommit)
	})

	t.Run("accepts auto", func(t *testing.T) {
		a := &recordingApp{}
		require.NoError(t, execute(t, a, "version", "--type", "auto"))
		assert.Equal(t, domain.BumpAuto, a.versionOpts.Type)
	})

	t.Run("rejects unknown bump types before touching the app", func(t *testing.T) {
		a := &recordingApp{}
		err := execute(t, a, "version", "--type", "gigantic")

		assert.ErrorIs(t, err, domain.ErrUnknownBumpType)
		assert.Nil(t, a.versionOpts)
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		a := &recordingApp{}
		require.Error(t, execute(t, a, "version", "extra"))
	})
}

func TestPublishCommand(t *testing.T) {
	t.Run("wires every flag through", func(t *testing.T) {
		a := &recordingApp{}
		require.NoError(t, execute(t, a, "publish", "--tag", "latest", "--access", "public", "--dry", "--git-push"))

		require.NotNil(t, a.publishOpts)
		assert.Equal(t, "latest", a.publishOpts.Tag)
		assert.Equal(t, "public", a.publishOpts.Access)
		assert.True(t, a.publishOpts.DryRun)
		assert.True(t, a.publishOpts.GitPush)
	})

	t.Run("flags default to off", func(t *testing.T) {
		a := &recordingApp{}
		require.NoError(t, execute(t, a, "publish", "--tag", "alpha"))

		require.NotNil(t, a.publishOpts)
		assert.Equal(t, "alpha", a.publishOpts.Tag)
		assert.Empty(t, a.publishOpts.Access)
		assert.False(t, a.publishOpts.DryRun)
		assert.False(t, a.publishOpts.GitPush)
	})

	t.Run("application errors surface to the caller", func(t *testing.T) {
		a := &recordingApp{err: domain.ErrMissingTag}
		err := execute(t, a, "publish")

		assert.ErrorIs(t, err, domain.ErrMissingTag)
	})
}

func TestVersionFlag(t *testing.T) {
	a := &recordingApp{}
	cli := commands.New(a)
	cli.SetArgs([]string{"--version"})

	var out bytes.Buffer
	cli.SetOutput(&out, &bytes.Buffer{})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "lockstep version")
}
