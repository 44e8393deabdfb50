// Package sequencer implements the ordered publish sequencer.
package sequencer

import (
	"context"
	"fmt"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Plan is the ephemeral publish plan for one invocation: the topologically
// sorted package names and the fully resolved distribution tag.
type Plan struct {
	Order   []string
	DistTag string
}

// Sequencer turns a workspace into a publish plan and executes it strictly
// in order. Publishing is deliberately serial: a dependency must exist in
// the registry before any dependent that references it is published, and
// in-order side effects keep registry state debuggable.
type Sequencer struct {
	publisher ports.Publisher
	logger    ports.Logger
}

// New creates a new Sequencer.
func New(publisher ports.Publisher, logger ports.Logger) *Sequencer {
	return &Sequencer{
		publisher: publisher,
		logger:    logger,
	}
}

// ResolveDistTag resolves the final distribution tag for the given branch.
// Only the literal tag "latest" is exempt from branch prefixing.
func ResolveDistTag(branch, tag string) string {
	if tag == "latest" {
		return tag
	}
	return branch + "-" + tag
}

// PlanPublish computes the publish order for the workspace and resolves the
// distribution tag against the current branch.
func (s *Sequencer) PlanPublish(w *domain.Workspace, branch, tag string) (Plan, error) {
	order, err := domain.TopoSort(w.Packages, w.Graph)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Order: order, DistTag: ResolveDistTag(branch, tag)}, nil
}

// Run publishes every package in plan order. Each publish is synchronous
// and blocking; the first failure aborts the remaining sequence. Already
// published packages are not rolled back.
func (s *Sequencer) Run(ctx context.Context, w *domain.Workspace, plan Plan, access string, dryRun bool) error {
	for _, name := range plan.Order {
		record, ok := w.ByName[name]
		if !ok {
			return zerr.With(domain.ErrPackageNotFound, "package", name)
		}

		s.logger.Info(fmt.Sprintf("publishing %s with tag %s", name, plan.DistTag))
		err := s.publisher.Publish(ctx, ports.PublishRequest{
			Dir:     record.Dir,
			Access:  access,
			DistTag: plan.DistTag,
			DryRun:  dryRun,
		})
		if err != nil {
			return zerr.With(zerr.Wrap(err, "publish failed"), "package", name)
		}
	}
	return nil
}
