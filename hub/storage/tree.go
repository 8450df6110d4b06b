package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/localhub/localhub"
)

// Tree lists the entries of a repository for the tree endpoint. recursive
// includes all descendants instead of only immediate children; expand fills
// file identity from the sidecar. Entries come back in the same
// deterministic order the siblings walk uses.
func (s *Store) Tree(base string, recursive, expand bool) ([]any, error) {
	entries := make([]any, 0)

	appendFile := func(rel string, info fs.FileInfo) error {
		file := localhub.TreeFile{Type: "file", Path: rel, Size: info.Size()}
		if expand {
			entry, ok, err := s.SidecarEntry(base, rel)
			if err != nil {
				return err
			}
			if ok {
				file.OID = entry.OID
				file.LFS = entry.LFS
			}
		}
		entries = append(entries, file)
		return nil
	}

	if recursive {
		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == base {
				return nil
			}
			rel, err := filepath.Rel(base, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				entries = append(entries, localhub.TreeDirectory{Type: "directory", Path: rel, OID: nil})
				return nil
			}
			if !d.Type().IsRegular() || d.Name() == localhub.SidecarName {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return appendFile(rel, info)
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	}

	children, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, localhub.ErrEntryNotFound
		}
		return nil, err
	}
	for _, child := range children {
		if child.IsDir() {
			entries = append(entries, localhub.TreeDirectory{Type: "directory", Path: child.Name(), OID: nil})
			continue
		}
		if !child.Type().IsRegular() || child.Name() == localhub.SidecarName {
			continue
		}
		info, err := child.Info()
		if err != nil {
			return nil, err
		}
		if err := appendFile(child.Name(), info); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
