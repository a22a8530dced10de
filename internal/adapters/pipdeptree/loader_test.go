package pipdeptree_test

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/pipdeptree"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/zerr"
)

func walkKeys(t *testing.T, g *domain.Graph) []string {
	t.Helper()
	require.NoError(t, g.Validate())
	var keys []string
	for p := range g.Walk() {
		keys = append(keys, p.Key.String())
	}
	return keys
}

func TestLoader_Load(t *testing.T) {
	for _, file := range []string{"flat.json", "tree.json"} {
		t.Run(file, func(t *testing.T) {
			g, err := pipdeptree.NewLoader().Load(filepath.Join("testdata", file))
			require.NoError(t, err)

			assert.Equal(t, 7, g.Len())

			pandas, ok := g.Get(domain.NewInternedString("pandas"))
			require.True(t, ok)
			assert.Equal(t, "1.3.5", pandas.Version)
			assert.Len(t, pandas.Dependencies, 3)
			assert.Equal(t, ">=1.17.3", pandas.Required[domain.NewInternedString("numpy")])

			six, ok := g.Get(domain.NewInternedString("six"))
			require.True(t, ok)
			assert.Equal(t, "1.16.0", six.Version)
			assert.False(t, six.Missing)

			bio, ok := g.Get(domain.NewInternedString("biopython"))
			require.True(t, ok)
			assert.True(t, bio.Missing)
			assert.Empty(t, bio.Version)

			keys := walkKeys(t, g)
			assert.Less(t, slices.Index(keys, "six"), slices.Index(keys, "python-dateutil"))
			assert.Less(t, slices.Index(keys, "python-dateutil"), slices.Index(keys, "pandas"))
			assert.Less(t, slices.Index(keys, "biopython"), slices.Index(keys, "taxtastic"))
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	g, err := pipdeptree.Decode([]byte("  []\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestDecode_NormalisesKeys(t *testing.T) {
	g, err := pipdeptree.Decode([]byte(`[{"package": {"key": "Python_Dateutil", "package_name": "Python-Dateutil", "installed_version": "2.8.2"}, "dependencies": []}]`))
	require.NoError(t, err)

	p, ok := g.Get(domain.NewInternedString("python-dateutil"))
	require.True(t, ok)
	assert.Equal(t, "Python-Dateutil", p.Name)
}

func TestDecode_Cycle(t *testing.T) {
	g, err := pipdeptree.Decode([]byte(`[
		{"package": {"key": "a", "package_name": "a", "installed_version": "1"}, "dependencies": [{"key": "b", "package_name": "b", "installed_version": "1"}]},
		{"package": {"key": "b", "package_name": "b", "installed_version": "1"}, "dependencies": [{"key": "a", "package_name": "a", "installed_version": "1"}]}
	]`))
	require.NoError(t, err, "cycles are reported by Validate, not Decode")
	assert.Error(t, g.Validate())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "pipdeptree: command not found"},
		{name: "object instead of array", data: `{"package": {}}`},
		{name: "entry without key", data: `[{"installed_version": "1.0"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipdeptree.Decode([]byte(tt.data))
			require.Error(t, err)
			zErr, ok := err.(*zerr.Error)
			require.True(t, ok)
			assert.Equal(t, domain.ErrTreeParseFailed.Error(), zErr.Message())
		})
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := pipdeptree.NewLoader().Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrTreeReadFailed.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, path, zErr.Metadata()["path"])
}
