package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/pinfile/internal/engine/checker"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// Format is the report format: text, json, markdown or html.
	Format string
	// Tree overrides the configured dependency tree file.
	Tree string
	// Strict fails the check on warnings too.
	Strict bool
	// Watch reruns the check whenever a manifest or the tree changes.
	Watch bool
}

// Check validates the given manifests, or the configured one when paths is empty.
// It returns domain.ErrCheckFailed when a manifest fails.
func (a *App) Check(ctx context.Context, paths []string, opts CheckOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{cfg.Manifest}
	}

	reporter, err := a.reporters.Reporter(opts.Format)
	if err != nil {
		return err
	}

	runErr := a.checkOnce(ctx, cfg, paths, reporter, opts)
	if !opts.Watch {
		return runErr
	}
	if runErr != nil && !errors.Is(runErr, domain.ErrCheckFailed) {
		return runErr
	}

	return a.watch(ctx, cfg, paths, reporter, opts)
}

func (a *App) watch(
	ctx context.Context,
	cfg *domain.Config,
	paths []string,
	reporter ports.Reporter,
	opts CheckOptions,
) error {
	files := append([]string(nil), paths...)
	if tree := watchedTree(cfg, opts); tree != "" {
		files = append(files, tree)
	}

	if err := a.watcher.Start(ctx, files); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info(fmt.Sprintf("watching %d files for changes", len(files)))
	for event := range a.watcher.Events() {
		a.logger.Info("changed: " + strings.Join(event.Paths, ", "))
		if err := a.checkOnce(ctx, cfg, paths, reporter, opts); err != nil && !errors.Is(err, domain.ErrCheckFailed) {
			a.logger.Error(err)
		}
	}
	return nil
}

func watchedTree(cfg *domain.Config, opts CheckOptions) string {
	if opts.Tree != "" {
		return opts.Tree
	}
	return cfg.Tree
}

// checkOnce checks every manifest concurrently and writes the reports in input order.
func (a *App) checkOnce(
	ctx context.Context,
	cfg *domain.Config,
	paths []string,
	reporter ports.Reporter,
	opts CheckOptions,
) error {
	ctx, span := a.tracer.Start(ctx, "check")
	defer span.End()

	graph, err := a.loadTree(ctx, cfg, opts.Tree)
	if err != nil {
		span.RecordError(err)
		return err
	}

	a.tracer.EmitPlan(ctx, paths)

	checkOpts := checker.Options{
		Severities: cfg.Severities(),
		Ignore:     cfg.Excluded,
	}

	reports := make([]domain.Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			_, mspan := a.tracer.Start(gctx, path, ports.WithManifest(path))
			defer mspan.End()

			m, err := a.codec.Read(path)
			if err != nil {
				mspan.RecordError(err)
				return err
			}
			reports[i] = a.checker.Check(m, graph, checkOpts)
			mspan.SetAttribute(ports.AttrViolations, len(reports[i].Violations))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to check manifests")
	}

	if err := reporter.WriteReports(a.stdout, reports); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}

	for _, r := range reports {
		if r.Failed(opts.Strict) {
			return domain.ErrCheckFailed
		}
	}
	return nil
}
