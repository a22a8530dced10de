package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"numpy", "numpy"},
		{"NumPy", "numpy"},
		{"python_dateutil", "python-dateutil"},
		{"Python.Dateutil", "python-dateutil"},
		{"zope..interface", "zope-interface"},
		{"a-_.b", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeName(tt.in))
		})
	}
}

func TestIsCommitHash(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"abc1234", true},
		{"d1a7c9f0e1b2c3d4e5f60718293a4b5c6d7e8f90", true},
		{"D1A7C9F", true},
		{"0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", true},
		{"abc123", false},
		{"v1.0.0", false},
		{"master", false},
		{"0123456789abcdef0123456789abcdef0123456789", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsCommitHash(tt.ref))
		})
	}
}

func TestEntry_Pin(t *testing.T) {
	registry := domain.Entry{Kind: domain.KindRegistry, Name: "Bio_Python", Version: "1.79", Raw: " Bio_Python == 1.79 "}
	assert.Equal(t, "Bio_Python==1.79", registry.Pin())
	assert.Equal(t, "bio-python", registry.Key())
	assert.Equal(t, "==1.79", registry.Target())
	assert.Equal(t, "1.79", registry.Resolved())

	vcs := domain.Entry{
		Kind:     domain.KindVCS,
		Name:     "taxtastic",
		URL:      "git+https://github.com/fhcrc/taxtastic.git",
		Ref:      "abc1234",
		Fragment: "egg=taxtastic",
	}
	assert.Equal(t, "git+https://github.com/fhcrc/taxtastic.git@abc1234#egg=taxtastic", vcs.Pin())
	assert.Equal(t, "git+https://github.com/fhcrc/taxtastic.git@abc1234", vcs.Target())
	assert.Equal(t, "abc1234", vcs.Resolved())

	comment := domain.Entry{Kind: domain.KindComment, Raw: "  # note  "}
	assert.Equal(t, "# note", comment.Pin())
	assert.Empty(t, comment.Target())
}

func TestEntryKind_Text(t *testing.T) {
	data, err := json.Marshal(domain.Entry{Kind: domain.KindVCS})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"vcs"}`, string(data))

	var e domain.Entry
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"registry"}`), &e))
	assert.Equal(t, domain.KindRegistry, e.Kind)
	assert.True(t, e.Kind.IsPin())
	assert.False(t, domain.KindComment.IsPin())
}

func TestManifest_Helpers(t *testing.T) {
	m := &domain.Manifest{
		Path: "requirements.txt",
		Entries: []domain.Entry{
			{Line: 1, Kind: domain.KindComment, Raw: "# header"},
			{Line: 2, Kind: domain.KindComment, Raw: "# more"},
			{Line: 3, Kind: domain.KindBlank},
			{Line: 4, Kind: domain.KindRegistry, Name: "six", Version: "1.16.0"},
			{Line: 5, Kind: domain.KindComment, Raw: "# not header"},
			{Line: 6, Kind: domain.KindVCS, Name: "taxtastic", URL: "git+https://x/taxtastic.git", Ref: "abc1234"},
			{Line: 7, Kind: domain.KindInvalid, Raw: "???"},
		},
	}

	assert.Len(t, m.Header(), 2)
	assert.Len(t, m.Pins(), 2)

	assert.Equal(t, domain.Stats{Registry: 1, VCS: 1, Comments: 3, Invalid: 1}, m.Stats())
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"off", "warning", "error"} {
		sev, err := domain.ParseSeverity(s)
		require.NoError(t, err)
		assert.Equal(t, s, sev.String())
	}

	_, err := domain.ParseSeverity("fatal")
	require.Error(t, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "fatal", zErr.Metadata()["severity"])
}

func TestReport(t *testing.T) {
	r := domain.Report{
		Violations: []domain.Violation{
			{Line: 5, Rule: domain.RuleSyntax, Severity: domain.SeverityError},
			{Line: 2, Rule: domain.RuleSpacing, Severity: domain.SeverityWarning},
			{Line: 2, Rule: domain.RuleDuplicate, Severity: domain.SeverityWarning},
		},
	}
	r.Sort()

	got := make([]domain.Rule, 0, len(r.Violations))
	for _, v := range r.Violations {
		got = append(got, v.Rule)
	}
	assert.Equal(t, []domain.Rule{domain.RuleDuplicate, domain.RuleSpacing, domain.RuleSyntax}, got)
	assert.Equal(t, 2, r.Count(domain.SeverityWarning))
	assert.True(t, r.HasErrors())
	assert.True(t, r.Failed(false))

	warnOnly := domain.Report{Violations: []domain.Violation{{Severity: domain.SeverityWarning}}}
	assert.False(t, warnOnly.Failed(false))
	assert.True(t, warnOnly.Failed(true))
}

func TestDefaultSeverities(t *testing.T) {
	sev := domain.DefaultSeverities()
	assert.Len(t, sev, 12)
	assert.Equal(t, domain.SeverityOff, sev[domain.RuleHeader])
	assert.Equal(t, domain.SeverityWarning, sev[domain.RuleDuplicate])
	assert.Equal(t, domain.SeverityError, sev[domain.RuleConflict])
	assert.True(t, domain.KnownRule(domain.RuleCycle))
	assert.False(t, domain.KnownRule("nope"))
}

func TestComputeDiff(t *testing.T) {
	reg := func(name, version string) domain.Entry {
		return domain.Entry{Kind: domain.KindRegistry, Name: name, Version: version}
	}
	from := &domain.Manifest{Path: "old.txt", Entries: []domain.Entry{
		reg("six", "1.15.0"),
		reg("numpy", "1.21.0"),
		reg("pandas", "1.3.0"),
		reg("biopython", "1.79"),
	}}
	to := &domain.Manifest{Path: "new.txt", Entries: []domain.Entry{
		reg("numpy", "1.21.0"),
		reg("Six", "1.16.0"),
		reg("pandas", "1.3.0"),
		reg("scipy", "1.7.0"),
	}}

	want := domain.Diff{
		From:    "old.txt",
		To:      "new.txt",
		Added:   []domain.Change{{Name: "scipy", To: "scipy==1.7.0"}},
		Removed: []domain.Change{{Name: "biopython", From: "biopython==1.79"}},
		Changed: []domain.Change{{Name: "Six", From: "1.15.0", To: "1.16.0"}},
		Moved:   []string{"Six"},
	}

	got := domain.ComputeDiff(from, to)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeDiff mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got.Empty())

	same := domain.ComputeDiff(from, from)
	assert.True(t, same.Empty())
	assert.Empty(t, same.Moved)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := domain.DefaultConfig("/work")
	assert.Equal(t, "/work/requirements.txt", cfg.Manifest)
	assert.Equal(t, "/work/.pinfile", cfg.StateDir)
	assert.True(t, cfg.Excluded("SetupTools"))
	assert.False(t, cfg.Excluded("numpy"))
	assert.Equal(t, domain.SeverityOff, cfg.Severities()[domain.RuleHeader])

	cfg.Rules = map[domain.Rule]domain.Severity{domain.RuleHeader: domain.SeverityWarning}
	assert.Equal(t, domain.SeverityWarning, cfg.Severities()[domain.RuleHeader])
	assert.Equal(t, domain.SeverityError, cfg.Severities()[domain.RuleSyntax])
}
