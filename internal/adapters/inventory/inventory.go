// Package inventory records manifest pins in a SQLite database.
package inventory

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

var (
	_ ports.InventoryOpener = (*Opener)(nil)
	_ ports.Inventory       = (*Inventory)(nil)
)

const driverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id         TEXT PRIMARY KEY,
	scanned_at TEXT NOT NULL,
	manifests  INTEGER NOT NULL,
	pins       INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pins (
	manifest TEXT NOT NULL,
	line     INTEGER NOT NULL,
	name     TEXT NOT NULL,
	key      TEXT NOT NULL,
	kind     TEXT NOT NULL,
	version  TEXT NOT NULL,
	scan_id  TEXT NOT NULL REFERENCES scans(id),
	PRIMARY KEY (manifest, line)
);
CREATE INDEX IF NOT EXISTS pins_key ON pins(key);
`

// Opener implements ports.InventoryOpener.
type Opener struct {
	now func() time.Time
}

// NewOpener creates a new Opener stamping scans with the wall clock.
func NewOpener() *Opener {
	return &Opener{now: time.Now}
}

// Open opens or creates the inventory database at path.
func (o *Opener) Open(ctx context.Context, path string) (ports.Inventory, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInventoryOpenFailed.Error()), "path", path)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInventoryOpenFailed.Error()), "path", path)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range append(pragmas, schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInventoryOpenFailed.Error()), "path", path)
		}
	}

	return &Inventory{db: db, now: o.now}, nil
}

// Inventory implements ports.Inventory.
type Inventory struct {
	db  *sql.DB
	now func() time.Time
}

// Record replaces the rows of each manifest in a single transaction.
func (i *Inventory) Record(
	ctx context.Context, scanID string, manifests []*domain.Manifest,
) (summary domain.ScanSummary, err error) {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ScanSummary{}, zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error())
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	summary = domain.ScanSummary{ID: scanID, Manifests: len(manifests)}
	for _, m := range manifests {
		summary.Pins += len(m.Pins())
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, scanned_at, manifests, pins) VALUES (?, ?, ?, ?)`,
		scanID, i.now().UTC().Format(time.RFC3339Nano), summary.Manifests, summary.Pins,
	); err != nil {
		return domain.ScanSummary{}, zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "scan", scanID)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO pins (manifest, line, name, key, kind, version, scan_id) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return domain.ScanSummary{}, zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error())
	}
	defer insert.Close() //nolint:errcheck // closed with the transaction

	for _, m := range manifests {
		if _, err = tx.ExecContext(ctx, `DELETE FROM pins WHERE manifest = ?`, m.Path); err != nil {
			return domain.ScanSummary{}, zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", m.Path)
		}
		for _, e := range m.Pins() {
			if _, err = insert.ExecContext(ctx,
				m.Path, e.Line, e.Name, e.Key(), e.Kind.String(), e.Resolved(), scanID,
			); err != nil {
				return domain.ScanSummary{}, zerr.With(
					zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", m.Path),
					"line", e.Line)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.ScanSummary{}, zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error())
	}
	return summary, nil
}

// Lookup returns every recorded pin of the package, by manifest then line.
func (i *Inventory) Lookup(ctx context.Context, name string) ([]domain.InventoryPin, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT p.manifest, p.name, p.key, p.kind, p.version, p.line, p.scan_id, s.scanned_at
		FROM pins p JOIN scans s ON s.id = p.scan_id
		WHERE p.key = ?
		ORDER BY p.manifest, p.line`, domain.NormalizeName(name))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error()), "package", name)
	}
	defer rows.Close() //nolint:errcheck // read-only query

	var pins []domain.InventoryPin
	for rows.Next() {
		var (
			pin       domain.InventoryPin
			kind      string
			scannedAt string
		)
		if err := rows.Scan(&pin.Manifest, &pin.Name, &pin.Key, &kind, &pin.Version, &pin.Line,
			&pin.ScanID, &scannedAt); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
		}
		if err := pin.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
		}
		if pin.ScanTime, err = time.Parse(time.RFC3339Nano, scannedAt); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
		}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
	}
	return pins, nil
}

// Drift returns the packages pinned at more than one version, by key.
func (i *Inventory) Drift(ctx context.Context) ([]domain.Drift, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT DISTINCT key, version, manifest FROM pins
		WHERE key IN (SELECT key FROM pins GROUP BY key HAVING COUNT(DISTINCT version) > 1)
		ORDER BY key, version, manifest`)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
	}
	defer rows.Close() //nolint:errcheck // read-only query

	var drift []domain.Drift
	for rows.Next() {
		var key, version, manifest string
		if err := rows.Scan(&key, &version, &manifest); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
		}
		if len(drift) == 0 || drift[len(drift)-1].Key != key {
			drift = append(drift, domain.Drift{Key: key, Versions: make(map[string][]string)})
		}
		d := &drift[len(drift)-1]
		d.Versions[version] = append(d.Versions[version], manifest)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInventoryQueryFailed.Error())
	}
	return drift, nil
}

// Close closes the database.
func (i *Inventory) Close() error {
	return i.db.Close()
}
