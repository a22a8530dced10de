// Package config provides the configuration loader for pinfile.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pinfile/internal/adapters/manifest" //nolint:depguard // shares the VCS pin grammar
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// supportedVersion is the only config schema version understood.
const supportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd.
// An explicit path must exist. Without one the nearest .pinfile.yaml above cwd
// is used, and defaults apply when there is none.
func (l *Loader) Load(cwd, explicit string) (*domain.Config, error) {
	configPath := explicit
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(cwd, configPath)
		}
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(domain.ErrConfigNotFound, "path", configPath)
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
		}
	} else {
		found, ok := findConfiguration(cwd)
		if !ok {
			return domain.DefaultConfig(cwd), nil
		}
		configPath = found
	}

	var pinfile Pinfile
	if err := readAndUnmarshalYAML(configPath, &pinfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if pinfile.Version != "" && pinfile.Version != supportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s, reading it as version %s",
			pinfile.Version, configPath, supportedVersion))
	}

	cfg, err := buildConfig(configPath, &pinfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func buildConfig(configPath string, p *Pinfile) (*domain.Config, error) {
	root := filepath.Dir(configPath)
	cfg := domain.DefaultConfig(root)
	cfg.Path = configPath

	if p.Manifest != "" {
		cfg.Manifest = resolvePath(root, p.Manifest)
	}
	cfg.Tree = resolvePath(root, p.Tree)
	if p.StateDir != "" {
		cfg.StateDir = resolvePath(root, p.StateDir)
	}
	cfg.Header = p.Header
	if p.Exclude != nil {
		cfg.Exclude = p.Exclude
	}
	if len(p.Inventory.Patterns) > 0 {
		cfg.InventoryPatterns = p.Inventory.Patterns
	}

	for rule, value := range p.Rules {
		if !domain.KnownRule(domain.Rule(rule)) {
			return nil, zerr.With(domain.ErrUnknownRule, "rule", rule)
		}
		sev, err := domain.ParseSeverity(value)
		if err != nil {
			return nil, zerr.With(err, "rule", rule)
		}
		cfg.Rules[domain.Rule(rule)] = sev
	}

	for name, pin := range p.VCS {
		e, err := parseVCSOverride(pin)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		cfg.VCS[domain.NormalizeName(name)] = e
	}

	return cfg, nil
}

func parseVCSOverride(pin string) (domain.Entry, error) {
	e := manifest.ParseLine(0, pin)
	if e.Kind != domain.KindVCS || e.Comment != "" || e.Spaced || !domain.IsCommitHash(e.Ref) {
		return domain.Entry{}, zerr.With(domain.ErrInvalidVCSOverride, "pin", pin)
	}
	e.Raw = e.Pin()
	return e, nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or given by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
