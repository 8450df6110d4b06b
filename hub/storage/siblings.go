package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/storage/cache"
)

// RepoListing is the enumeration of a repository: every regular file other
// than the sidecar, in deterministic walk order, plus the byte total.
type RepoListing struct {
	Siblings    []localhub.Sibling
	UsedStorage int64
}

// Siblings enumerates a repository. The result is cached against the base
// directory's (mtime, size); mutations deep in subdirectories do not rotate
// that key, so staleness there is bounded only by the TTL.
func (s *Store) Siblings(base string) (RepoListing, error) {
	fi, err := os.Stat(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RepoListing{}, localhub.ErrEntryNotFound
		}
		return RepoListing{}, err
	}

	version := cache.VersionOf(fi)
	if listing, ok := s.siblings.Get(base, version); ok {
		return listing, nil
	}

	listing := RepoListing{Siblings: make([]localhub.Sibling, 0)}
	err = walkFiles(base, func(rel string, info fs.FileInfo) error {
		listing.Siblings = append(listing.Siblings, localhub.Sibling{RFilename: rel})
		listing.UsedStorage += info.Size()
		return nil
	})
	if err != nil {
		return RepoListing{}, err
	}

	s.siblings.Add(base, version, listing)
	return listing, nil
}

// walkFiles walks base depth-first with entries sorted case-sensitive
// lexicographically at each level, invoking fn for every regular file. The
// sidecar is skipped at every depth.
func walkFiles(base string, fn func(rel string, info fs.FileInfo) error) error {
	return filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if d.Name() == localhub.SidecarName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), info)
	})
}
