package sorter_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/manifest"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/engine/sorter"
	"go.trai.ch/zerr"
)

func parse(content string) *domain.Manifest {
	return manifest.NewCodec().Parse("requirements.txt", []byte(content))
}

func render(m *domain.Manifest) string {
	return string(manifest.NewCodec().Render(m))
}

func add(t *testing.T, g *domain.Graph, name, version string, deps ...string) {
	t.Helper()
	keys := make([]domain.InternedString, 0, len(deps))
	for _, d := range deps {
		keys = append(keys, domain.NewInternedString(d))
	}
	require.NoError(t, g.AddPackage(&domain.Package{
		Key:          domain.NewInternedString(domain.NormalizeName(name)),
		Name:         name,
		Version:      version,
		Dependencies: keys,
	}))
}

func scienceGraph(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	add(t, g, "pandas", "1.3.5", "numpy", "python-dateutil", "pytz")
	add(t, g, "python-dateutil", "2.8.2", "six")
	add(t, g, "numpy", "1.21.6")
	add(t, g, "six", "1.16.0")
	add(t, g, "pytz", "2022.7")
	add(t, g, "setuptools", "65.5.0")
	add(t, g, "taxtastic", "0.9.2", "biopython")
	require.NoError(t, g.AddPackage(&domain.Package{
		Key: domain.NewInternedString("biopython"), Name: "biopython", Missing: true,
	}))
	return g
}

func TestReorder(t *testing.T) {
	in := strings.Join([]string{
		"# install order matters",
		"",
		"# data frames",
		"pandas==1.3.5",
		"pytz==2022.7",
		"# arrays",
		"numpy==1.21.6",
		"python-dateutil==2.8.2",
		"six==1.16.0",
		"# end",
	}, "\n") + "\n"

	want := strings.Join([]string{
		"# install order matters",
		"",
		"pytz==2022.7",
		"# arrays",
		"numpy==1.21.6",
		"six==1.16.0",
		"python-dateutil==2.8.2",
		"# data frames",
		"pandas==1.3.5",
		"# end",
	}, "\n") + "\n"

	out, err := sorter.New().Reorder(parse(in), scienceGraph(t))
	require.NoError(t, err)

	if diff := cmp.Diff(want, render(out)); diff != "" {
		t.Errorf("Reorder mismatch (-want +got):\n%s", diff)
	}
	for i, e := range out.Entries {
		assert.Equal(t, i+1, e.Line)
	}
}

func TestReorder_StableWhenOrdered(t *testing.T) {
	in := "numpy==1.21.6\nsix==1.16.0\npytz==2022.7\npython-dateutil==2.8.2\npandas==1.3.5\n"

	out, err := sorter.New().Reorder(parse(in), scienceGraph(t))
	require.NoError(t, err)
	assert.Equal(t, in, render(out))
}

func TestReorder_DuplicatesFollowFirstPin(t *testing.T) {
	in := "pandas==1.3.5\nnumpy==1.21.6\npandas==1.3.5\n"

	out, err := sorter.New().Reorder(parse(in), scienceGraph(t))
	require.NoError(t, err)
	assert.Equal(t, "numpy==1.21.6\npandas==1.3.5\npandas==1.3.5\n", render(out))
}

func TestReorder_UnknownPackagesKeepPosition(t *testing.T) {
	in := "requests==2.28.1\npandas==1.3.5\ngit+https://github.com/fhcrc/deenurp.git@abc1234#egg=deenurp\nnumpy==1.21.6\n"

	out, err := sorter.New().Reorder(parse(in), scienceGraph(t))
	require.NoError(t, err)
	assert.Equal(t,
		"requests==2.28.1\ngit+https://github.com/fhcrc/deenurp.git@abc1234#egg=deenurp\nnumpy==1.21.6\npandas==1.3.5\n",
		render(out))
}

func TestReorder_Cycle(t *testing.T) {
	g := domain.NewGraph()
	add(t, g, "a", "1", "b")
	add(t, g, "b", "1", "a")

	_, err := sorter.New().Reorder(parse("a==1\nb==1\n"), g)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCycleDetected.Error(), zErr.Message())
	assert.Equal(t, "a -> b -> a", zErr.Metadata()["cycle"])
}

func TestGenerate(t *testing.T) {
	opts := sorter.GenerateOptions{
		Header:  []string{"# generated by pinfile", "do not edit"},
		Exclude: []string{"SetupTools"},
		VCS: map[string]domain.Entry{
			"taxtastic": manifest.ParseLine(0, "git+https://github.com/fhcrc/taxtastic.git@d1a7c9f#egg=taxtastic"),
		},
	}

	m, err := sorter.New().Generate(scienceGraph(t), opts)
	require.NoError(t, err)

	want := strings.Join([]string{
		"# generated by pinfile",
		"# do not edit",
		"",
		"numpy==1.21.6",
		"pytz==2022.7",
		"six==1.16.0",
		"python-dateutil==2.8.2",
		"pandas==1.3.5",
		"git+https://github.com/fhcrc/taxtastic.git@d1a7c9f#egg=taxtastic",
	}, "\n") + "\n"

	if diff := cmp.Diff(want, render(m)); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 9, m.Entries[len(m.Entries)-1].Line)
}

func TestGenerate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	add(t, g, "a", "1", "b")
	add(t, g, "b", "1", "a")

	_, err := sorter.New().Generate(g, sorter.GenerateOptions{})
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	in := strings.Join([]string{
		"",
		"  # header  ",
		"",
		"",
		"numpy == 1.21.6",
		"six==1.16.0  # needed by dateutil",
		"Six==1.16.0",
		"six==1.15.0",
		"   ",
		"not a pin ",
		"",
		"",
	}, "\n") + "\n"

	want := strings.Join([]string{
		"# header",
		"",
		"numpy==1.21.6",
		"# needed by dateutil",
		"six==1.16.0",
		"six==1.15.0",
		"",
		"not a pin",
	}, "\n") + "\n"

	s := sorter.New()
	out := s.Format(parse(in))

	if diff := cmp.Diff(want, render(out)); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, sorter.Equal(parse(in), out))

	again := s.Format(out)
	assert.True(t, sorter.Equal(out, again))
	assert.True(t, sorter.Equal(parse(want), again))
}

func TestFormat_DuplicateDropsItsComment(t *testing.T) {
	in := "numpy==1.0  # first\nsix==1.16\nnumpy==1.0  # dup note\n"
	want := "# first\nnumpy==1.0\nsix==1.16\n"

	out := sorter.New().Format(parse(in))

	if diff := cmp.Diff(want, render(out)); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}
