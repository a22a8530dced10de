package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/config"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	cwd := t.TempDir()

	cfg, err := loader.Load(cwd, "")
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.Equal(t, filepath.Join(cwd, "requirements.txt"), cfg.Manifest)
	assert.Equal(t, filepath.Join(cwd, ".pinfile"), cfg.StateDir)
	assert.Equal(t, domain.DefaultExclude(), cfg.Exclude)
	assert.Equal(t, []string{"requirements*.txt"}, cfg.InventoryPatterns)
	assert.Empty(t, cfg.Tree)
}

func TestLoader_Load_Full(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()

	createFile(t, root, domain.ConfigFileName, `
version: "1"
manifest: deps/requirements.txt
tree: pipdeptree.json
header:
  - "# generated by pinfile"
exclude: [pip]
vcs:
  TaxTastic: git+https://github.com/fhcrc/taxtastic.git@d1a7c9f#egg=taxtastic
rules:
  header: warning
  spacing: "off"
state_dir: /var/tmp/pinfile
inventory:
  patterns: ["*/requirements.txt"]
`)

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, domain.DirPerm))

	cfg, err := loader.Load(sub, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, domain.ConfigFileName), cfg.Path)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "deps", "requirements.txt"), cfg.Manifest)
	assert.Equal(t, filepath.Join(root, "pipdeptree.json"), cfg.Tree)
	assert.Equal(t, "/var/tmp/pinfile", cfg.StateDir)
	assert.Equal(t, []string{"# generated by pinfile"}, cfg.Header)
	assert.Equal(t, []string{"pip"}, cfg.Exclude)
	vcs := cfg.VCS["taxtastic"]
	assert.Equal(t, "git+https://github.com/fhcrc/taxtastic.git@d1a7c9f#egg=taxtastic", vcs.Pin())
	assert.Equal(t, domain.SeverityWarning, cfg.Severities()[domain.RuleHeader])
	assert.Equal(t, domain.SeverityOff, cfg.Severities()[domain.RuleSpacing])
	assert.Equal(t, domain.SeverityError, cfg.Severities()[domain.RuleSyntax])
	assert.Equal(t, []string{"*/requirements.txt"}, cfg.InventoryPatterns)
}

func TestLoader_Load_EmptyExclude(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "exclude: []\n")

	cfg, err := loader.Load(root, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Exclude)
}

func TestLoader_Load_Explicit(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, "custom.yaml", "manifest: pins.txt\n")

	cfg, err := loader.Load(root, "custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "pins.txt"), cfg.Manifest)
}

func TestLoader_Load_ExplicitMissing(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()

	_, err := loader.Load(root, "missing.yaml")
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, domain.ErrConfigNotFound.Error(), zErr.Message())
	assert.Equal(t, filepath.Join(root, "missing.yaml"), zErr.Metadata()["path"])
}

func TestLoader_Load_UnknownVersionWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "version: \"2\"\n")

	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := loader.Load(root, "")
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
		wantKey string
		wantVal any
	}{
		{
			name:    "invalid yaml",
			content: "rules: [",
			wantMsg: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "unknown rule",
			content: "rules:\n  nope: error\n",
			wantMsg: domain.ErrUnknownRule.Error(),
			wantKey: "rule",
			wantVal: "nope",
		},
		{
			name:    "invalid severity",
			content: "rules:\n  order: fatal\n",
			wantMsg: domain.ErrInvalidSeverity.Error(),
			wantKey: "rule",
			wantVal: "order",
		},
		{
			name:    "branch vcs override",
			content: "vcs:\n  tool: git+https://github.com/org/tool.git@master\n",
			wantMsg: domain.ErrInvalidVCSOverride.Error(),
			wantKey: "package",
			wantVal: "tool",
		},
		{
			name:    "registry vcs override",
			content: "vcs:\n  tool: tool==1.0\n",
			wantMsg: domain.ErrInvalidVCSOverride.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			root := t.TempDir()
			path := createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := loader.Load(root, "")
			require.Error(t, err)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, tt.wantMsg, zErr.Message())
			assert.Equal(t, path, zErr.Metadata()["path"])
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantVal, zErr.Metadata()[tt.wantKey])
			}
		})
	}
}
