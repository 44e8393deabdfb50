package sequencer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/lockstep/internal/core/ports/mocks"
	"go.trai.ch/lockstep/internal/engine/sequencer"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func chainWorkspace() *domain.Workspace {
	return domain.BuildWorkspace([]*domain.PackageRecord{
		{Name: "a", Version: "1.0.0", Dir: "packages/a", Dependencies: map[string]string{"b": "^1.0.0"}},
		{Name: "b", Version: "1.0.0", Dir: "packages/b", Dependencies: map[string]string{"c": "~1.0.0"}},
		{Name: "c", Version: "1.0.0", Dir: "packages/c"},
	})
}

func TestResolveDistTag(t *testing.T) {
	tests := []struct {
		name   string
		branch string
		tag    string
		want   string
	}{
		{name: "latest is exempt from prefixing", branch: "main", tag: "latest", want: "latest"},
		{name: "alpha on a feature branch", branch: "feature-x", tag: "alpha", want: "feature-x-alpha"},
		{name: "beta on main", branch: "main", tag: "beta", want: "main-beta"},
		{name: "latest is matched literally", branch: "main", tag: "Latest", want: "main-Latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sequencer.ResolveDistTag(tt.branch, tt.tag))
		})
	}
}

func TestSequencer_PlanPublish(t *testing.T) {
	t.Run("orders dependencies before dependents", func(t *testing.T) {
		s := sequencer.New(nil, nil)

		plan, err := s.PlanPublish(chainWorkspace(), "main", "latest")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, plan.Order)
		assert.Equal(t, "latest", plan.DistTag)
	})

	t.Run("propagates cycle errors", func(t *testing.T) {
		w := domain.BuildWorkspace([]*domain.PackageRecord{
			{Name: "a", Version: "1.0.0", Dependencies: map[string]string{"b": "^1.0.0"}},
			{Name: "b", Version: "1.0.0", Dependencies: map[string]string{"a": "^1.0.0"}},
		})

		s := sequencer.New(nil, nil)
		_, err := s.PlanPublish(w, "main", "latest")
		assert.ErrorIs(t, err, domain.ErrCycleDetected)
	})
}

func TestSequencer_Run(t *testing.T) {
	t.Run("publishes every package in plan order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mocks.NewMockPublisher(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any()).AnyTimes()

		w := chainWorkspace()
		s := sequencer.New(publisher, logger)
		plan, err := s.PlanPublish(w, "main", "latest")
		require.NoError(t, err)

		gomock.InOrder(
			publisher.EXPECT().Publish(gomock.Any(), ports.PublishRequest{Dir: "packages/c", DistTag: "latest"}),
			publisher.EXPECT().Publish(gomock.Any(), ports.PublishRequest{Dir: "packages/b", DistTag: "latest"}),
			publisher.EXPECT().Publish(gomock.Any(), ports.PublishRequest{Dir: "packages/a", DistTag: "latest"}),
		)

		require.NoError(t, s.Run(context.Background(), w, plan, "", false))
	})

	t.Run("passes access and dry-run through to the publisher", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mocks.NewMockPublisher(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any()).AnyTimes()

		w := domain.BuildWorkspace([]*domain.PackageRecord{
			{Name: "solo", Version: "2.0.0", Dir: "packages/solo"},
		})
		s := sequencer.New(publisher, logger)
		plan := sequencer.Plan{Order: []string{"solo"}, DistTag: "main-beta"}

		publisher.EXPECT().Publish(gomock.Any(), ports.PublishRequest{
			Dir:     "packages/solo",
			Access:  "public",
			DistTag: "main-beta",
			DryRun:  true,
		})

		require.NoError(t, s.Run(context.Background(), w, plan, "public", true))
	})

	t.Run("first failure aborts the remaining sequence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mocks.NewMockPublisher(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any()).AnyTimes()

		w := chainWorkspace()
		s := sequencer.New(publisher, logger)
		plan, err := s.PlanPublish(w, "main", "latest")
		require.NoError(t, err)

		boom := zerr.New("registry rejected the tarball")
		gomock.InOrder(
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(boom),
		)

		err = s.Run(context.Background(), w, plan, "", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unknown plan entry fails before publishing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mocks.NewMockPublisher(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any()).AnyTimes()

		w := domain.BuildWorkspace(nil)
		s := sequencer.New(publisher, logger)
		plan := sequencer.Plan{Order: []string{"ghost"}, DistTag: "latest"}

		err := s.Run(context.Background(), w, plan, "", false)
		assert.ErrorIs(t, err, domain.ErrPackageNotFound)
	})
}
