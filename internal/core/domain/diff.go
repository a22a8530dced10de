package domain

import (
	"cmp"
	"slices"
)

// Change is a package whose pin differs between two manifests.
type Change struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Diff describes how the pins of one manifest differ from another.
type Diff struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Added   []Change `json:"added"`
	Removed []Change `json:"removed"`
	Changed []Change `json:"changed"`
	// Moved lists packages whose relative position changed.
	Moved []string `json:"moved"`
}

// Empty reports whether the manifests pin the same packages at the same versions.
// Order changes alone do not make a diff non-empty.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// ComputeDiff compares the pins of two manifests by normalised name.
// When a package is pinned more than once, the first pin counts.
func ComputeDiff(from, to *Manifest) Diff {
	d := Diff{From: from.Path, To: to.Path}

	fromPins := firstPins(from)
	toPins := firstPins(to)

	for key, a := range fromPins {
		b, ok := toPins[key]
		switch {
		case !ok:
			d.Removed = append(d.Removed, Change{Name: a.Name, From: a.Pin()})
		case a.Target() != b.Target():
			d.Changed = append(d.Changed, Change{Name: b.Name, From: a.Resolved(), To: b.Resolved()})
		}
	}
	for key, b := range toPins {
		if _, ok := fromPins[key]; !ok {
			d.Added = append(d.Added, Change{Name: b.Name, To: b.Pin()})
		}
	}

	d.Moved = movedPins(from, to, fromPins, toPins)

	byName := func(a, b Change) int { return cmp.Compare(NormalizeName(a.Name), NormalizeName(b.Name)) }
	slices.SortFunc(d.Added, byName)
	slices.SortFunc(d.Removed, byName)
	slices.SortFunc(d.Changed, byName)
	return d
}

func firstPins(m *Manifest) map[string]Entry {
	pins := make(map[string]Entry)
	for _, e := range m.Pins() {
		if _, seen := pins[e.Key()]; !seen {
			pins[e.Key()] = e
		}
	}
	return pins
}

// movedPins compares the order of the packages present in both manifests and
// reports those outside the longest common subsequence.
func movedPins(from, to *Manifest, fromPins, toPins map[string]Entry) []string {
	var a, b []string
	seen := make(map[string]bool)
	for _, e := range from.Pins() {
		if _, ok := toPins[e.Key()]; ok && !seen[e.Key()] {
			seen[e.Key()] = true
			a = append(a, e.Key())
		}
	}
	clear(seen)
	for _, e := range to.Pins() {
		if _, ok := fromPins[e.Key()]; ok && !seen[e.Key()] {
			seen[e.Key()] = true
			b = append(b, e.Key())
		}
	}

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	stay := make(map[string]bool)
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			stay[a[i]] = true
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			i++
		default:
			j++
		}
	}

	var moved []string
	for _, key := range b {
		if !stay[key] {
			moved = append(moved, toPins[key].Name)
		}
	}
	return moved
}
