package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/storage/cache"
)

// Sidecar locates and parses the sidecar document of dir. A missing sidecar
// is an empty mapping, not an error. The returned map is shared across
// callers and must not be mutated.
func (s *Store) Sidecar(dir string) (localhub.Sidecar, error) {
	scPath := filepath.Join(dir, localhub.SidecarName)

	fi, err := os.Stat(scPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return localhub.Sidecar{}, nil
		}
		return nil, err
	}

	version := cache.VersionOf(fi)
	if sc, ok := s.sidecars.Get(scPath, version); ok {
		return sc, nil
	}

	raw, err := os.ReadFile(scPath)
	if err != nil {
		return nil, err
	}

	var parsed map[string]localhub.SidecarEntry
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &localhub.SidecarError{Path: scPath, Err: err}
	}

	sc := make(localhub.Sidecar, len(parsed))
	for key, entry := range parsed {
		sc[normalizeSidecarKey(key)] = entry
	}

	s.sidecars.Add(scPath, version, sc)
	return sc, nil
}

// SidecarEntry looks up the sidecar record for a file, identified by its
// path relative to the repository base. The base sidecar is authoritative;
// when it lacks the entry, the sidecar of the file's own directory is
// consulted (its keys are still base-relative).
func (s *Store) SidecarEntry(base, rel string) (localhub.SidecarEntry, bool, error) {
	sc, err := s.Sidecar(base)
	if err != nil {
		return localhub.SidecarEntry{}, false, err
	}
	if entry, ok := sc[rel]; ok {
		return entry, true, nil
	}

	if dir := filepath.Dir(filepath.FromSlash(rel)); dir != "." {
		sc, err = s.Sidecar(filepath.Join(base, dir))
		if err != nil {
			return localhub.SidecarEntry{}, false, err
		}
		if entry, ok := sc[rel]; ok {
			return entry, true, nil
		}
	}
	return localhub.SidecarEntry{}, false, nil
}

// sidecarVersion is the cache version key contributed by the sidecar file:
// its (mtime, size) when present, the zero version when absent.
func (s *Store) sidecarVersion(base string) cache.Version {
	fi, err := os.Stat(filepath.Join(base, localhub.SidecarName))
	if err != nil {
		return cache.Version{}
	}
	return cache.VersionOf(fi)
}

func normalizeSidecarKey(key string) string {
	return strings.TrimPrefix(strings.ReplaceAll(key, "\\", "/"), "/")
}
