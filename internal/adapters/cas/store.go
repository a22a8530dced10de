// Package cas implements the content addressable snapshot store.
package cas

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotStore = (*Store)(nil)

const snapshotExt = ".json"

// Store implements ports.SnapshotStore with one JSON file per snapshot.
type Store struct {
	hasher ports.Hasher
	mu     sync.RWMutex
}

// NewStore creates a new snapshot store addressing content with hasher.
func NewStore(hasher ports.Hasher) *Store {
	return &Store{hasher: hasher}
}

// Put stores the snapshot under the hash of its path and content.
// Storing the same content again returns the existing snapshot.
func (s *Store) Put(root string, snap domain.Snapshot) (domain.Snapshot, error) {
	snap.ID = s.hasher.Hash([]byte(snap.Path + "\x00" + snap.Content))

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := domain.StorePath(root)
	file := filepath.Join(dir, snap.ID+snapshotExt)

	existing, err := readSnapshot(file)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return domain.Snapshot{}, zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+snap.ID+"-*")
	if err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", dir)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", file)
	}
	if err := tmp.Close(); err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", file)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", file)
	}

	return snap, nil
}

// Get retrieves a snapshot by id or by a prefix matching exactly one id.
func (s *Store) Get(root, id string) (*domain.Snapshot, error) {
	if id == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.ids(root)
	if err != nil {
		return nil, err
	}

	var match string
	for _, candidate := range ids {
		if candidate == id {
			match = candidate
			break
		}
		if strings.HasPrefix(candidate, id) {
			if match != "" {
				return nil, zerr.With(domain.ErrSnapshotAmbiguous, "id", id)
			}
			match = candidate
		}
	}
	if match == "" {
		return nil, nil
	}

	return readSnapshot(filepath.Join(domain.StorePath(root), match+snapshotExt))
}

// Latest returns the newest snapshot of the manifest at path.
func (s *Store) Latest(root, path string) (*domain.Snapshot, error) {
	snaps, err := s.List(root)
	if err != nil {
		return nil, err
	}
	for i := range snaps {
		if snaps[i].Path == path {
			return &snaps[i], nil
		}
	}
	return nil, nil
}

// List returns all snapshots, newest first. Ties are ordered by id.
func (s *Store) List(root string) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.ids(root)
	if err != nil {
		return nil, err
	}

	snaps := make([]domain.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := readSnapshot(filepath.Join(domain.StorePath(root), id+snapshotExt))
		if err != nil {
			return nil, err
		}
		if snap != nil {
			snaps = append(snaps, *snap)
		}
	}

	slices.SortStableFunc(snaps, func(a, b domain.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return snaps, nil
}

// ids returns the sorted ids of all stored snapshots.
func (s *Store) ids(root string) ([]string, error) {
	dir := domain.StorePath(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", dir)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != snapshotExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, snapshotExt))
	}
	slices.Sort(ids)
	return ids, nil
}

func readSnapshot(file string) (*domain.Snapshot, error) {
	//nolint:gosec // path is built from the state directory and a hex id
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", file)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", file)
	}
	return &snap, nil
}
