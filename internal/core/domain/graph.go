// Package domain contains the core domain models of pinned dependency manifests.
package domain

import (
	"container/heap"
	"iter"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// Package is a node of the installed dependency tree.
type Package struct {
	Key          InternedString
	Name         string
	Version      string
	Dependencies []InternedString
	// Required maps a dependency key to the version constraint declared for it.
	Required map[InternedString]string
	// Missing marks packages that are depended upon but not installed.
	Missing bool
}

// Graph represents the dependency graph of installed packages.
// Packages are added while the graph is built; afterwards it may be read and
// validated concurrently.
type Graph struct {
	packages map[InternedString]Package

	mu    sync.Mutex
	order []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		packages: make(map[InternedString]Package),
	}
}

// AddPackage adds a package to the graph.
// It returns an error if a package with the same key already exists.
func (g *Graph) AddPackage(p *Package) error {
	if _, exists := g.packages[p.Key]; exists {
		return zerr.With(ErrPackageAlreadyExists, "package", p.Key.String())
	}
	g.packages[p.Key] = *p
	g.order = nil
	return nil
}

// Get returns the package stored under the given key.
func (g *Graph) Get(key InternedString) (Package, bool) {
	p, ok := g.packages[key]
	return p, ok
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.packages)
}

// Keys returns all package keys in lexical order.
func (g *Graph) Keys() []InternedString {
	keys := make([]InternedString, 0, len(g.packages))
	for k := range g.packages {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

// Dependencies returns the direct dependencies of a package.
func (g *Graph) Dependencies(key InternedString) []InternedString {
	return g.packages[key].Dependencies
}

// Validate checks that every dependency is known and the graph is acyclic.
// It computes a topological order where ties are broken by key, so the result
// does not depend on insertion order.
func (g *Graph) Validate() error {
	keys := g.Keys()
	for _, k := range keys {
		for _, dep := range g.packages[k].Dependencies {
			if _, ok := g.packages[dep]; !ok {
				err := zerr.With(ErrMissingDependency, "package", k.String())
				return zerr.With(err, "dependency", dep.String())
			}
		}
	}

	rank := make(map[InternedString]int, len(keys))
	for i, k := range keys {
		rank[k] = i
	}
	order, err := g.SortBy(keys, func(k InternedString) int { return rank[k] })
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.order = order
	g.mu.Unlock()
	return nil
}

// SortBy orders a subset of keys so that every key comes after the keys it
// transitively depends on. Dependencies are followed through packages outside
// the subset. Among keys that are free to go next, the lowest rank wins.
func (g *Graph) SortBy(keys []InternedString, rank func(InternedString) int) ([]InternedString, error) {
	inSubset := make(map[InternedString]bool, len(keys))
	for _, k := range keys {
		inSubset[k] = true
	}

	// edges[d] lists the keys that must wait for d.
	edges := make(map[InternedString][]InternedString, len(keys))
	pending := make(map[InternedString]int, len(keys))
	for _, k := range keys {
		pending[k] += 0
		for d := range g.reachable(k, inSubset) {
			edges[d] = append(edges[d], k)
			pending[k]++
		}
	}

	q := &rankQueue{rank: rank}
	for _, k := range keys {
		if pending[k] == 0 {
			heap.Push(q, k)
		}
	}

	order := make([]InternedString, 0, len(keys))
	for q.Len() > 0 {
		k := heap.Pop(q).(InternedString) //nolint:errcheck,forcetypeassert // queue only holds keys
		order = append(order, k)
		for _, next := range edges[k] {
			pending[next]--
			if pending[next] == 0 {
				heap.Push(q, next)
			}
		}
	}

	if len(order) < len(pending) {
		return nil, g.findCycle()
	}
	return order, nil
}

// reachable yields the subset members that k depends on, directly or through
// packages outside the subset. k itself is reported only when it lies on a cycle.
func (g *Graph) reachable(k InternedString, subset map[InternedString]bool) iter.Seq[InternedString] {
	return func(yield func(InternedString) bool) {
		seen := make(map[InternedString]bool)
		stack := slices.Clone(g.packages[k].Dependencies)
		for len(stack) > 0 {
			d := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[d] {
				continue
			}
			seen[d] = true
			if subset[d] {
				if !yield(d) {
					return
				}
				continue
			}
			stack = append(stack, g.packages[d].Dependencies...)
		}
	}
}

// findCycle locates a cycle with a depth-first search in key order.
func (g *Graph) findCycle() error {
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString
	var cycleErr error

	var visit func(u InternedString) bool
	visit = func(u InternedString) bool {
		visited[u] = 1
		path = append(path, u)
		for _, dep := range g.packages[u].Dependencies {
			if visited[dep] == 1 {
				cycleErr = g.buildCycleError(path, dep)
				return true
			}
			if visited[dep] == 0 && visit(dep) {
				return true
			}
		}
		visited[u] = 2
		path = path[:len(path)-1]
		return false
	}

	for _, k := range g.Keys() {
		if visited[k] == 0 && visit(k) {
			return cycleErr
		}
	}
	return ErrCycleDetected
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields packages in topological order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		g.mu.Lock()
		order := g.order
		g.mu.Unlock()

		for _, key := range order {
			if !yield(g.packages[key]) {
				return
			}
		}
	}
}

type rankQueue struct {
	items []InternedString
	rank  func(InternedString) int
}

func (q *rankQueue) Len() int           { return len(q.items) }
func (q *rankQueue) Less(i, j int) bool { return q.rank(q.items[i]) < q.rank(q.items[j]) }
func (q *rankQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *rankQueue) Push(x any) {
	q.items = append(q.items, x.(InternedString)) //nolint:forcetypeassert // heap contract
}

func (q *rankQueue) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}
