package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/pinfile/internal/engine/sorter"
	"go.trai.ch/zerr"
)

// FormatOptions configuration for the Format method.
type FormatOptions struct {
	// Write replaces the file instead of printing the result.
	Write bool
	// Check only reports whether the file is formatted.
	Check bool
}

// Format rewrites a manifest in canonical form.
// In check mode it returns domain.ErrNotFormatted when the file would change.
func (a *App) Format(ctx context.Context, path string, opts FormatOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		path = cfg.Manifest
	}

	_, span := a.tracer.Start(ctx, "format", ports.WithManifest(path))
	defer span.End()

	m, err := a.codec.Read(path)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return a.emit(path, m, a.sorter.Format(m), opts.Write, opts.Check)
}

// OrderOptions configuration for the Order method.
type OrderOptions struct {
	// Tree overrides the configured dependency tree file.
	Tree string
	// Write replaces the file instead of printing the result.
	Write bool
	// Check only reports whether the pins are in dependency order.
	Check bool
}

// Order moves the pins of a manifest into dependency order.
// In check mode it returns domain.ErrNotFormatted when the file would change.
func (a *App) Order(ctx context.Context, path string, opts OrderOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		path = cfg.Manifest
	}

	ctx, span := a.tracer.Start(ctx, "order", ports.WithManifest(path))
	defer span.End()

	graph, err := a.requireTree(ctx, cfg, opts.Tree)
	if err != nil {
		span.RecordError(err)
		return err
	}

	m, err := a.codec.Read(path)
	if err != nil {
		span.RecordError(err)
		return err
	}

	ordered, err := a.sorter.Reorder(m, graph)
	if err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, "failed to order manifest"), "path", path)
	}

	return a.emit(path, m, ordered, opts.Write, opts.Check)
}

// emit prints, writes or compares a rewritten manifest.
func (a *App) emit(path string, before, after *domain.Manifest, write, check bool) error {
	unchanged := sorter.Equal(before, after)

	switch {
	case check:
		if !unchanged {
			a.logger.Warn(fmt.Sprintf("%s would be rewritten", path))
			return domain.ErrNotFormatted
		}
		return nil
	case write:
		if unchanged {
			a.logger.Info(fmt.Sprintf("%s is unchanged", path))
			return nil
		}
		if err := a.codec.Write(path, after); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("rewrote %s", path))
		return nil
	default:
		if _, err := a.stdout.Write(a.codec.Render(after)); err != nil {
			return zerr.Wrap(err, "failed to write output")
		}
		return nil
	}
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	// Tree overrides the configured dependency tree file.
	Tree string
	// Output is the file to write. Empty or "-" prints the manifest.
	Output string
}

// Generate builds a manifest pinning every installed package of the tree.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	ctx, span := a.tracer.Start(ctx, "generate")
	defer span.End()

	graph, err := a.requireTree(ctx, cfg, opts.Tree)
	if err != nil {
		span.RecordError(err)
		return err
	}

	header := cfg.Header
	if len(header) == 0 {
		tree := opts.Tree
		if tree == "" {
			tree = cfg.Tree
		}
		header = []string{"generated by pinfile from " + filepath.Base(tree)}
	}

	m, err := a.sorter.Generate(graph, sorter.GenerateOptions{
		Header:  header,
		Exclude: cfg.Exclude,
		VCS:     cfg.VCS,
	})
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to generate manifest")
	}
	span.SetAttribute(ports.AttrPins, len(m.Pins()))

	if opts.Output == "" || opts.Output == "-" {
		if _, err := a.stdout.Write(a.codec.Render(m)); err != nil {
			return zerr.Wrap(err, "failed to write output")
		}
		return nil
	}

	m.Path = opts.Output
	if err := a.codec.Write(opts.Output, m); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote %d pins to %s", len(m.Pins()), opts.Output))
	return nil
}
