package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/zerr"
)

// DiffOptions configuration for the Diff method.
type DiffOptions struct {
	// Format is the output format: text, json, markdown or html.
	Format string
	// ExitCode returns domain.ErrDiffFound when the manifests differ.
	ExitCode bool
}

// Diff compares the pins of two manifests. A reference is a file path,
// "snapshot:<id>" or "snapshot:latest". An empty to is the configured manifest.
func (a *App) Diff(ctx context.Context, from, to string, opts DiffOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if to == "" {
		to = cfg.Manifest
	}

	reporter, err := a.reporters.Reporter(opts.Format)
	if err != nil {
		return err
	}

	_, span := a.tracer.Start(ctx, "diff")
	defer span.End()

	a.tracer.EmitPlan(ctx, []string{from, to})

	left, err := a.resolveRef(cfg, from, to)
	if err != nil {
		span.RecordError(err)
		return err
	}
	right, err := a.resolveRef(cfg, to, from)
	if err != nil {
		span.RecordError(err)
		return err
	}

	d := domain.ComputeDiff(left, right)
	if err := reporter.WriteDiff(a.stdout, &d); err != nil {
		return zerr.Wrap(err, "failed to write diff")
	}

	if opts.ExitCode && !d.Empty() {
		return domain.ErrDiffFound
	}
	return nil
}

// resolveRef loads the manifest a diff operand names. "snapshot:latest"
// resolves against the other operand, or the configured manifest when that
// is a snapshot too.
func (a *App) resolveRef(cfg *domain.Config, ref, other string) (*domain.Manifest, error) {
	id, isSnapshot := strings.CutPrefix(ref, domain.SnapshotRefPrefix)
	if !isSnapshot {
		return a.codec.Read(ref)
	}

	var snap *domain.Snapshot
	var err error
	if id == domain.SnapshotLatest {
		target := other
		if strings.HasPrefix(target, domain.SnapshotRefPrefix) {
			target = cfg.Manifest
		}
		abs, absErr := filepath.Abs(target)
		if absErr != nil {
			return nil, zerr.With(zerr.Wrap(absErr, "failed to resolve path"), "path", target)
		}
		snap, err = a.store.Latest(cfg.StateDir, abs)
	} else {
		snap, err = a.store.Get(cfg.StateDir, id)
	}
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, zerr.With(domain.ErrSnapshotNotFound, "ref", ref)
	}

	return a.codec.Parse(domain.SnapshotRefPrefix+snap.ID, []byte(snap.Content)), nil
}

// SnapshotSave stores the current content of a manifest, or the configured
// one when path is empty, and prints its id.
func (a *App) SnapshotSave(_ context.Context, path string) (domain.Snapshot, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return domain.Snapshot{}, err
	}
	if path == "" {
		path = cfg.Manifest
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path)
	}

	m, err := a.codec.Read(abs)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := a.store.Put(cfg.StateDir, domain.Snapshot{
		Path:      abs,
		CreatedAt: a.now().UTC(),
		Content:   string(a.codec.Render(m)),
	})
	if err != nil {
		return domain.Snapshot{}, zerr.Wrap(err, "failed to save snapshot")
	}

	a.logger.Info(fmt.Sprintf("saved snapshot of %s", relPath(cfg, abs)))
	_, _ = fmt.Fprintln(a.stdout, snap.ID)
	return snap, nil
}

// ListOptions configuration for the listing methods.
type ListOptions struct {
	// JSON prints machine-readable output instead of a table.
	JSON bool
}

// SnapshotList prints the stored snapshots, newest first.
func (a *App) SnapshotList(_ context.Context, opts ListOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	snaps, err := a.store.List(cfg.StateDir)
	if err != nil {
		return zerr.Wrap(err, "failed to list snapshots")
	}

	if opts.JSON {
		if snaps == nil {
			snaps = []domain.Snapshot{}
		}
		return a.writeJSON(snaps)
	}
	if len(snaps) == 0 {
		a.logger.Info("no snapshots saved")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		pins := len(a.codec.Parse(s.Path, []byte(s.Content)).Pins())
		rows = append(rows, []string{
			s.ID,
			s.CreatedAt.Local().Format(time.DateTime),
			relPath(cfg, s.Path),
			strconv.Itoa(pins),
		})
	}
	return a.writeTable([]string{"ID", "CREATED", "MANIFEST", "PINS"}, rows)
}

// SnapshotShow prints the content of a stored snapshot.
func (a *App) SnapshotShow(_ context.Context, id string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	snap, err := a.store.Get(cfg.StateDir, strings.TrimPrefix(id, domain.SnapshotRefPrefix))
	if err != nil {
		return err
	}
	if snap == nil {
		return zerr.With(domain.ErrSnapshotNotFound, "ref", id)
	}

	if _, err := fmt.Fprint(a.stdout, snap.Content); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
