package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/adapters/registry"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/lockstep/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fakeRunner struct {
	dirs  []string
	calls [][]string
	err   error
}

func (f *fakeRunner) run(_ context.Context, dir string, args ...string) error {
	f.dirs = append(f.dirs, dir)
	f.calls = append(f.calls, args)
	return f.err
}

func newLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return logger
}

func TestNPM_Publish(t *testing.T) {
	t.Run("runs npm publish with the dist tag", func(t *testing.T) {
		runner := &fakeRunner{}
		n := registry.NewWithRunner(runner.run, newLogger(t))

		err := n.Publish(context.Background(), ports.PublishRequest{Dir: "packages/a", DistTag: "latest"})
		require.NoError(t, err)
		assert.Equal(t, []string{"packages/a"}, runner.dirs)
		assert.Equal(t, []string{"publish", "--tag", "latest"}, runner.calls[0])
	})

	t.Run("appends access when set", func(t *testing.T) {
		runner := &fakeRunner{}
		n := registry.NewWithRunner(runner.run, newLogger(t))

		err := n.Publish(context.Background(), ports.PublishRequest{
			Dir:     "packages/a",
			Access:  "public",
			DistTag: "main-beta",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"publish", "--tag", "main-beta", "--access", "public"}, runner.calls[0])
	})

	t.Run("dry run passes --dry-run through to npm", func(t *testing.T) {
		runner := &fakeRunner{}
		n := registry.NewWithRunner(runner.run, newLogger(t))

		err := n.Publish(context.Background(), ports.PublishRequest{
			Dir:     "packages/a",
			DistTag: "latest",
			DryRun:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"publish", "--tag", "latest", "--dry-run"}, runner.calls[0])
	})

	t.Run("npm failures surface unchanged", func(t *testing.T) {
		boom := zerr.New("E403 forbidden")
		n := registry.NewWithRunner((&fakeRunner{err: boom}).run, newLogger(t))

		err := n.Publish(context.Background(), ports.PublishRequest{Dir: "packages/a", DistTag: "latest"})
		assert.ErrorIs(t, err, boom)
	})
}
