package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/cmd/pinfile/commands"
	"go.trai.ch/pinfile/internal/app"
	"go.trai.ch/pinfile/internal/build"
	"go.trai.ch/pinfile/internal/core/domain"
)

// mockApp records the last call it received.
type mockApp struct {
	global  app.GlobalOptions
	method  string
	args    []string
	opts    any
	callErr error
}

func (m *mockApp) record(method string, opts any, args ...string) error {
	m.method = method
	m.opts = opts
	if len(args) > 0 {
		m.args = args
	}
	return m.callErr
}

func (m *mockApp) Configure(opts app.GlobalOptions) { m.global = opts }

func (m *mockApp) Check(_ context.Context, paths []string, opts app.CheckOptions) error {
	return m.record("check", opts, paths...)
}

func (m *mockApp) Format(_ context.Context, path string, opts app.FormatOptions) error {
	return m.record("fmt", opts, path)
}

func (m *mockApp) Order(_ context.Context, path string, opts app.OrderOptions) error {
	return m.record("order", opts, path)
}

func (m *mockApp) Generate(_ context.Context, opts app.GenerateOptions) error {
	return m.record("generate", opts)
}

func (m *mockApp) Diff(_ context.Context, from, to string, opts app.DiffOptions) error {
	return m.record("diff", opts, from, to)
}

func (m *mockApp) SnapshotSave(_ context.Context, path string) (domain.Snapshot, error) {
	return domain.Snapshot{}, m.record("snapshot save", nil, path)
}

func (m *mockApp) SnapshotList(_ context.Context, opts app.ListOptions) error {
	return m.record("snapshot list", opts)
}

func (m *mockApp) SnapshotShow(_ context.Context, id string) error {
	return m.record("snapshot show", nil, id)
}

func (m *mockApp) Index(_ context.Context, roots []string, opts app.IndexOptions) (domain.ScanSummary, error) {
	return domain.ScanSummary{}, m.record("index", opts, roots...)
}

func (m *mockApp) Query(_ context.Context, name string, opts app.ListOptions) error {
	return m.record("query", opts, name)
}

func (m *mockApp) Drift(_ context.Context, opts app.ListOptions) error {
	return m.record("drift", opts)
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	return m.record("clean", opts)
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_WireFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		method   string
		wantArgs []string
		wantOpts any
	}{
		{
			name:     "check",
			args:     []string{"check", "a.txt", "b.txt", "-f", "json", "--tree", "t.json", "--strict", "-w"},
			method:   "check",
			wantArgs: []string{"a.txt", "b.txt"},
			wantOpts: app.CheckOptions{Format: "json", Tree: "t.json", Strict: true, Watch: true},
		},
		{
			name:     "check defaults",
			args:     []string{"check"},
			method:   "check",
			wantArgs: nil,
			wantOpts: app.CheckOptions{Format: "text"},
		},
		{
			name:     "fmt",
			args:     []string{"fmt", "requirements.txt", "--check"},
			method:   "fmt",
			wantArgs: []string{"requirements.txt"},
			wantOpts: app.FormatOptions{Check: true},
		},
		{
			name:     "order",
			args:     []string{"order", "-t", "tree.json", "-w"},
			method:   "order",
			wantArgs: []string{""},
			wantOpts: app.OrderOptions{Tree: "tree.json", Write: true},
		},
		{
			name:     "generate",
			args:     []string{"generate", "-o", "requirements.txt"},
			method:   "generate",
			wantArgs: nil,
			wantOpts: app.GenerateOptions{Output: "requirements.txt"},
		},
		{
			name:     "diff",
			args:     []string{"diff", "snapshot:latest", "--exit-code"},
			method:   "diff",
			wantArgs: []string{"snapshot:latest", ""},
			wantOpts: app.DiffOptions{Format: "text", ExitCode: true},
		},
		{
			name:     "snapshot list",
			args:     []string{"snapshot", "list", "--json"},
			method:   "snapshot list",
			wantArgs: nil,
			wantOpts: app.ListOptions{JSON: true},
		},
		{
			name:     "snapshot show",
			args:     []string{"snapshot", "show", "0123"},
			method:   "snapshot show",
			wantArgs: []string{"0123"},
		},
		{
			name:     "index",
			args:     []string{"index", "services", "-p", "requirements*.txt,constraints.txt"},
			method:   "index",
			wantArgs: []string{"services"},
			wantOpts: app.IndexOptions{Patterns: []string{"requirements*.txt", "constraints.txt"}},
		},
		{
			name:     "query",
			args:     []string{"query", "numpy"},
			method:   "query",
			wantArgs: []string{"numpy"},
			wantOpts: app.ListOptions{},
		},
		{
			name:     "clean",
			args:     []string{"clean", "--inventory"},
			method:   "clean",
			wantArgs: nil,
			wantOpts: app.CleanOptions{Inventory: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.method, m.method)
			assert.Equal(t, tt.wantArgs, m.args)
			assert.Equal(t, tt.wantOpts, m.opts)
		})
	}
}

func TestCommands_GlobalFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "--config", "ci.yaml", "--log-json", "--trace", "drift")
	require.NoError(t, err)
	assert.Equal(t, app.GlobalOptions{ConfigPath: "ci.yaml", LogJSON: true, Trace: "auto"}, m.global)

	m = &mockApp{}
	_, err = execute(t, m, "drift", "--trace=ci")
	require.NoError(t, err)
	assert.Equal(t, "ci", m.global.Trace)
}

func TestCommands_Errors(t *testing.T) {
	t.Run("app error is returned", func(t *testing.T) {
		m := &mockApp{callErr: errors.New("simulated error")}
		_, err := execute(t, m, "check")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("fmt rejects write with check", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "fmt", "--write", "--check")
		require.Error(t, err)
		assert.Empty(t, m.method)
	})

	t.Run("diff needs a reference", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "diff")
		require.Error(t, err)
		assert.Empty(t, m.method)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pinfile version "+build.Version)
}
