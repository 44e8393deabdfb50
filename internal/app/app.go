// Package app implements the application layer for lockstep.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/lockstep/internal/engine/sequencer"
	"go.trai.ch/zerr"
)

// App ties the workspace graph, version policy and publish sequencer
// together behind the two top-level operations. All state is owned by one
// invocation; nothing is shared across invocations.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.ManifestStore
	vcs          ports.VCS
	logger       ports.Logger
	sequencer    *sequencer.Sequencer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.ManifestStore,
	vcs ports.VCS,
	log ports.Logger,
	seq *sequencer.Sequencer,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		vcs:          vcs,
		logger:       log,
		sequencer:    seq,
	}
}

// VersionOptions configuration for the Version operation.
type VersionOptions struct {
	Type        domain.BumpType
	SkipCI      bool
	NoGitCommit bool
}

// Version bumps every workspace package to the next lockstep version,
// rewrites internal dependency ranges, persists the manifests and records
// the release in version control. Git actions are all-or-nothing from the
// orchestrator's perspective: a failure aborts without rolling back
// manifests that were already written.
func (a *App) Version(ctx context.Context, opts VersionOptions) error {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	marker, hasMarker, err := a.vcs.LastReleaseTag(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve last release tag")
	}

	if hasMarker {
		changed, changedErr := a.vcs.ChangedFiles(ctx, marker)
		if changedErr != nil {
			return zerr.Wrap(changedErr, "failed to list changed files")
		}
		if len(changed) == 0 {
			a.logger.Info(fmt.Sprintf("no changes since %s, nothing to version", marker))
			return nil
		}
	}

	kind := opts.Type
	if kind == domain.BumpAuto {
		kind, err = a.classifyHistory(ctx, marker, hasMarker)
		if err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("commit history classified as %s bump", kind))
	}

	packages, err := a.store.Discover(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to discover packages")
	}

	workspace := domain.BuildWorkspace(packages)
	shared, err := workspace.SharedVersion()
	if err != nil {
		return err
	}

	current, err := domain.ParseVersion(shared)
	if err != nil {
		return err
	}
	next := current.Bump(kind)

	if err := a.rewriteWorkspace(workspace, next.String()); err != nil {
		return err
	}

	if err := a.store.UpdateRootVersion(cfg, next.String()); err != nil {
		return zerr.Wrap(err, "failed to update root manifest")
	}

	a.logger.Info(fmt.Sprintf("bumped %d packages from %s to %s", len(packages), shared, next))

	if opts.NoGitCommit {
		return nil
	}
	return a.recordRelease(ctx, next.String(), opts.SkipCI)
}

// classifyHistory derives the bump type from commit subjects since the last
// release marker. With no marker, or no commits since it, classification
// defaults to a patch bump.
func (a *App) classifyHistory(ctx context.Context, marker string, hasMarker bool) (domain.BumpType, error) {
	if !hasMarker {
		return domain.ClassifyCommits(nil), nil
	}

	subjects, err := a.vcs.CommitSubjectsSince(ctx, marker)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read commit history")
	}
	return domain.ClassifyCommits(subjects), nil
}

// rewriteWorkspace sets every record to the next version, rewrites internal
// dependency ranges with their operators preserved and persists each record.
// External dependency ranges are left untouched.
func (a *App) rewriteWorkspace(w *domain.Workspace, next string) error {
	for _, pkg := range w.Packages {
		pkg.Version = next

		for _, deps := range pkg.DependencyMaps() {
			for depName, depRange := range deps {
				if _, internal := w.ByName[depName]; !internal {
					continue
				}
				deps[depName] = domain.PreserveOperator(depRange, next)
			}
		}

		if err := a.store.Write(pkg); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to persist manifest"), "package", pkg.Name)
		}
	}
	return nil
}

// recordRelease stages, commits and tags the release. The three actions are
// sequential and not retried; the first failure surfaces unchanged.
func (a *App) recordRelease(ctx context.Context, version string, skipCI bool) error {
	if err := a.vcs.StageAll(ctx); err != nil {
		return zerr.Wrap(err, "failed to stage changes")
	}

	message := "chore(release): v" + version
	if skipCI {
		message += " [skip ci]"
	}
	if err := a.vcs.Commit(ctx, message); err != nil {
		return zerr.Wrap(err, "failed to commit release")
	}

	if err := a.vcs.Tag(ctx, "v"+version); err != nil {
		return zerr.Wrap(err, "failed to tag release")
	}

	a.logger.Info("tagged release v" + version)
	return nil
}

// PublishOptions configuration for the Publish operation.
type PublishOptions struct {
	Tag     string
	Access  string
	DryRun  bool
	GitPush bool
}

// Publish pushes every workspace package to the registry in dependency
// order. A failure partway leaves the workspace partially published; this
// is surfaced as an error, never rolled back.
func (a *App) Publish(ctx context.Context, opts PublishOptions) error {
	if opts.Tag == "" {
		return domain.ErrMissingTag
	}

	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	packages, err := a.store.Discover(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to discover packages")
	}
	workspace := domain.BuildWorkspace(packages)

	branch, err := a.vcs.CurrentBranch(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve current branch")
	}

	plan, err := a.sequencer.PlanPublish(workspace, branch, opts.Tag)
	if err != nil {
		return err
	}

	access := opts.Access
	if access == "" {
		access = cfg.Access
	}

	if err := a.sequencer.Run(ctx, workspace, plan, access, opts.DryRun); err != nil {
		return err
	}

	if opts.GitPush && !opts.DryRun {
		if err := a.vcs.PushWithTags(ctx); err != nil {
			return zerr.Wrap(err, "failed to push release")
		}
	}

	a.logger.Info(fmt.Sprintf("published %d packages with tag %s", len(plan.Order), plan.DistTag))
	return nil
}
