package app

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

// IndexOptions configuration for the Index method.
type IndexOptions struct {
	// Patterns are file name globs selecting manifests. Empty uses the config.
	Patterns []string
}

// Index records the pins of every manifest found below roots in the inventory.
// An empty roots indexes the project root.
func (a *App) Index(ctx context.Context, roots []string, opts IndexOptions) (domain.ScanSummary, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return domain.ScanSummary{}, err
	}
	if len(roots) == 0 {
		roots = []string{cfg.Root}
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = cfg.InventoryPatterns
	}

	ctx, span := a.tracer.Start(ctx, "index")
	defer span.End()

	paths, err := a.finder.Find(roots, patterns)
	if err != nil {
		span.RecordError(err)
		return domain.ScanSummary{}, err
	}
	if len(paths) == 0 {
		return domain.ScanSummary{}, zerr.With(domain.ErrNoManifests, "patterns", strings.Join(patterns, ", "))
	}
	a.tracer.EmitPlan(ctx, paths)

	manifests := make([]*domain.Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := a.codec.Read(p)
		if err != nil {
			span.RecordError(err)
			return domain.ScanSummary{}, err
		}
		m.Path = relPath(cfg, p)
		manifests = append(manifests, m)
	}

	inv, err := a.openInventory(ctx, cfg)
	if err != nil {
		return domain.ScanSummary{}, err
	}
	defer inv.Close() //nolint:errcheck // best effort

	summary, err := inv.Record(ctx, a.newScanID(), manifests)
	if err != nil {
		span.RecordError(err)
		return domain.ScanSummary{}, zerr.Wrap(err, "failed to index manifests")
	}

	a.logger.Info(fmt.Sprintf("indexed %d pins from %d manifests", summary.Pins, summary.Manifests))
	return summary, nil
}

func (a *App) openInventory(ctx context.Context, cfg *domain.Config) (ports.Inventory, error) {
	inv, err := a.inventory.Open(ctx, domain.InventoryPath(cfg.StateDir))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open inventory")
	}
	return inv, nil
}

// Query prints every indexed pin of a package.
func (a *App) Query(ctx context.Context, name string, opts ListOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	inv, err := a.openInventory(ctx, cfg)
	if err != nil {
		return err
	}
	defer inv.Close() //nolint:errcheck // best effort

	pins, err := inv.Lookup(ctx, name)
	if err != nil {
		return err
	}

	if opts.JSON {
		if pins == nil {
			pins = []domain.InventoryPin{}
		}
		return a.writeJSON(pins)
	}
	if len(pins) == 0 {
		a.logger.Warn(fmt.Sprintf("%s is not pinned in any indexed manifest", name))
		return nil
	}

	rows := make([][]string, 0, len(pins))
	for _, p := range pins {
		rows = append(rows, []string{
			p.Manifest,
			strconv.Itoa(p.Line),
			p.Name,
			p.Version,
			p.Kind.String(),
			p.ScanTime.Local().Format(time.DateTime),
		})
	}
	return a.writeTable([]string{"MANIFEST", "LINE", "NAME", "VERSION", "KIND", "INDEXED"}, rows)
}

// Drift prints the packages pinned at different versions across indexed manifests.
func (a *App) Drift(ctx context.Context, opts ListOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	inv, err := a.openInventory(ctx, cfg)
	if err != nil {
		return err
	}
	defer inv.Close() //nolint:errcheck // best effort

	drifts, err := inv.Drift(ctx)
	if err != nil {
		return err
	}

	if opts.JSON {
		if drifts == nil {
			drifts = []domain.Drift{}
		}
		return a.writeJSON(drifts)
	}
	if len(drifts) == 0 {
		a.logger.Info("no version drift across indexed manifests")
		return nil
	}

	var rows [][]string
	for _, d := range drifts {
		versions := make([]string, 0, len(d.Versions))
		for v := range d.Versions {
			versions = append(versions, v)
		}
		slices.Sort(versions)
		for i, v := range versions {
			key := ""
			if i == 0 {
				key = d.Key
			}
			rows = append(rows, []string{key, v, strings.Join(d.Versions[v], ", ")})
		}
	}
	return a.writeTable([]string{"PACKAGE", "VERSION", "MANIFESTS"}, rows)
}
