// Package pipdeptree loads installed dependency trees from pipdeptree JSON output.
package pipdeptree

import (
	"bytes"
	"encoding/json"
	"os"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeLoader = (*Loader)(nil)

// missingVersion is what pipdeptree reports for a dependency that is not installed.
const missingVersion = "?"

// node is a package as pipdeptree prints it.
type node struct {
	Key              string `json:"key"`
	PackageName      string `json:"package_name"`
	InstalledVersion string `json:"installed_version"`
	RequiredVersion  string `json:"required_version"`
	Dependencies     []node `json:"dependencies"`
}

// flatEntry is one element of "pipdeptree --json".
type flatEntry struct {
	Package      *node  `json:"package"`
	Dependencies []node `json:"dependencies"`
}

// Loader implements ports.TreeLoader.
// It accepts both the flat "--json" and the nested "--json-tree" formats.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a pipdeptree JSON file.
func (l *Loader) Load(path string) (*domain.Graph, error) {
	// #nosec G304 -- path comes from the config or the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTreeReadFailed.Error()), "path", path)
	}

	g, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return g, nil
}

// Decode builds a graph from pipdeptree JSON output.
func Decode(data []byte) (*domain.Graph, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTreeParseFailed.Error())
	}

	b := newBuilder()
	for _, item := range raw {
		var flat flatEntry
		if err := json.Unmarshal(item, &flat); err != nil {
			return nil, zerr.Wrap(err, domain.ErrTreeParseFailed.Error())
		}
		if flat.Package != nil {
			b.addInstalled(flat.Package, flat.Dependencies)
			continue
		}

		var tree node
		if err := json.Unmarshal(item, &tree); err != nil {
			return nil, zerr.Wrap(err, domain.ErrTreeParseFailed.Error())
		}
		if tree.Key == "" && tree.PackageName == "" {
			return nil, zerr.Wrap(zerr.New("entry has neither 'package' nor 'key'"), domain.ErrTreeParseFailed.Error())
		}
		b.addTree(&tree)
	}

	return b.build()
}

// builder collects packages before the graph is assembled, because a
// dependency may be listed before the package that declares it.
type builder struct {
	packages map[domain.InternedString]*domain.Package
	order    []domain.InternedString
}

func newBuilder() *builder {
	return &builder{packages: make(map[domain.InternedString]*domain.Package)}
}

func keyOf(n *node) domain.InternedString {
	name := n.Key
	if name == "" {
		name = n.PackageName
	}
	return domain.PackageKey(name)
}

func displayName(n *node) string {
	if n.PackageName != "" {
		return n.PackageName
	}
	return n.Key
}

// ensure returns the package for n, creating a placeholder if needed.
func (b *builder) ensure(n *node) *domain.Package {
	key := keyOf(n)
	if p, ok := b.packages[key]; ok {
		return p
	}
	p := &domain.Package{
		Key:      key,
		Name:     displayName(n),
		Required: make(map[domain.InternedString]string),
		Missing:  true,
	}
	b.packages[key] = p
	b.order = append(b.order, key)
	return p
}

func (b *builder) addInstalled(pkg *node, deps []node) *domain.Package {
	p := b.ensure(pkg)
	if pkg.InstalledVersion != "" && pkg.InstalledVersion != missingVersion {
		p.Version = pkg.InstalledVersion
		p.Missing = false
	}
	for i := range deps {
		dep := &deps[i]
		d := b.ensure(dep)
		if d.Missing && dep.InstalledVersion != "" && dep.InstalledVersion != missingVersion {
			d.Version = dep.InstalledVersion
			d.Missing = false
		}
		if _, seen := p.Required[d.Key]; !seen {
			p.Dependencies = append(p.Dependencies, d.Key)
		}
		p.Required[d.Key] = dep.RequiredVersion
	}
	return p
}

func (b *builder) addTree(n *node) {
	b.addInstalled(n, n.Dependencies)
	for i := range n.Dependencies {
		if len(n.Dependencies[i].Dependencies) > 0 {
			b.addTree(&n.Dependencies[i])
		}
	}
}

func (b *builder) build() (*domain.Graph, error) {
	g := domain.NewGraph()
	for _, key := range b.order {
		if err := g.AddPackage(b.packages[key]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
