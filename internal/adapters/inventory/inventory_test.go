package inventory_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/inventory"
	"go.trai.ch/pinfile/internal/adapters/manifest"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
)

var scanTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func open(t *testing.T) ports.Inventory {
	t.Helper()
	opener := inventory.NewOpenerWithClock(func() time.Time { return scanTime })
	inv, err := opener.Open(context.Background(), filepath.Join(t.TempDir(), "state", "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = inv.Close() })
	return inv
}

func parse(path, content string) *domain.Manifest {
	return manifest.NewCodec().Parse(path, []byte(content))
}

func TestInventory_RecordAndLookup(t *testing.T) {
	ctx := context.Background()
	inv := open(t)

	summary, err := inv.Record(ctx, "scan-1", []*domain.Manifest{
		parse("/w/a/requirements.txt", "# header\nsix==1.16.0\nnumpy==1.21.6\n"),
		parse("/w/b/requirements.txt", "Six==1.15.0\ngit+https://github.com/fhcrc/taxtastic.git@abc1234\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ScanSummary{ID: "scan-1", Manifests: 2, Pins: 4}, summary)

	got, err := inv.Lookup(ctx, "SIX")
	require.NoError(t, err)

	want := []domain.InventoryPin{
		{Manifest: "/w/a/requirements.txt", Name: "six", Key: "six", Kind: domain.KindRegistry,
			Version: "1.16.0", Line: 2, ScanID: "scan-1", ScanTime: scanTime},
		{Manifest: "/w/b/requirements.txt", Name: "Six", Key: "six", Kind: domain.KindRegistry,
			Version: "1.15.0", Line: 1, ScanID: "scan-1", ScanTime: scanTime},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
	}

	vcs, err := inv.Lookup(ctx, "taxtastic")
	require.NoError(t, err)
	require.Len(t, vcs, 1)
	assert.Equal(t, domain.KindVCS, vcs[0].Kind)
	assert.Equal(t, "abc1234", vcs[0].Version)

	none, err := inv.Lookup(ctx, "pandas")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInventory_RecordReplacesManifestRows(t *testing.T) {
	ctx := context.Background()
	inv := open(t)

	_, err := inv.Record(ctx, "scan-1", []*domain.Manifest{parse("/w/requirements.txt", "six==1.15.0\nnumpy==1.21.6\n")})
	require.NoError(t, err)
	_, err = inv.Record(ctx, "scan-2", []*domain.Manifest{parse("/w/requirements.txt", "six==1.16.0\n")})
	require.NoError(t, err)

	six, err := inv.Lookup(ctx, "six")
	require.NoError(t, err)
	require.Len(t, six, 1)
	assert.Equal(t, "1.16.0", six[0].Version)
	assert.Equal(t, "scan-2", six[0].ScanID)

	numpy, err := inv.Lookup(ctx, "numpy")
	require.NoError(t, err)
	assert.Empty(t, numpy)
}

func TestInventory_RecordRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	inv := open(t)

	_, err := inv.Record(ctx, "scan-1", []*domain.Manifest{parse("/w/requirements.txt", "six==1.15.0\n")})
	require.NoError(t, err)

	// Reusing a scan id violates the primary key.
	_, err = inv.Record(ctx, "scan-1", []*domain.Manifest{parse("/w/requirements.txt", "six==1.16.0\n")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInventoryWriteFailed.Error())

	six, err := inv.Lookup(ctx, "six")
	require.NoError(t, err)
	require.Len(t, six, 1)
	assert.Equal(t, "1.15.0", six[0].Version)
}

func TestInventory_Drift(t *testing.T) {
	ctx := context.Background()
	inv := open(t)

	_, err := inv.Record(ctx, "scan-1", []*domain.Manifest{
		parse("/w/a.txt", "six==1.16.0\nnumpy==1.21.6\npandas==1.3.5\n"),
		parse("/w/b.txt", "six==1.15.0\nnumpy==1.21.6\n"),
		parse("/w/c.txt", "Six==1.15.0\npandas==1.4.0\n"),
	})
	require.NoError(t, err)

	got, err := inv.Drift(ctx)
	require.NoError(t, err)

	want := []domain.Drift{
		{Key: "pandas", Versions: map[string][]string{"1.3.5": {"/w/a.txt"}, "1.4.0": {"/w/c.txt"}}},
		{Key: "six", Versions: map[string][]string{"1.15.0": {"/w/b.txt", "/w/c.txt"}, "1.16.0": {"/w/a.txt"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Drift mismatch (-want +got):\n%s", diff)
	}
}

func TestInventory_DriftEmpty(t *testing.T) {
	inv := open(t)
	got, err := inv.Drift(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpener_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.db")

	first, err := inventory.NewOpener().Open(ctx, path)
	require.NoError(t, err)
	_, err = first.Record(ctx, "scan-1", []*domain.Manifest{parse("/w/requirements.txt", "six==1.16.0\n")})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := inventory.NewOpener().Open(ctx, path)
	require.NoError(t, err)
	defer second.Close() //nolint:errcheck // test cleanup

	six, err := second.Lookup(ctx, "six")
	require.NoError(t, err)
	assert.Len(t, six, 1)
}
