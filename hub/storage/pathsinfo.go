package storage

import (
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/localhub/localhub"
)

// PathsInfoRequest is the decoded body of a paths-info query. A nil Paths
// slice means the whole repository.
type PathsInfoRequest struct {
	Paths  []string
	Expand bool
}

// pathsInfoKey identifies a memoized paths-info answer.
type pathsInfoKey struct {
	base        string
	fingerprint string
}

// fingerprint deterministically serializes the request: the path count, the
// sorted paths list and the expand flag.
func (r PathsInfoRequest) fingerprint() string {
	paths := append([]string(nil), r.Paths...)
	sort.Strings(paths)
	return strconv.Itoa(len(paths)) + "\x00" + strings.Join(paths, "\x00") + "\x00expand=" + strconv.FormatBool(r.Expand)
}

// PathsInfo answers a paths-info query against a resolved repository base.
// Results follow request order, deduplicated by relative path with the first
// occurrence winning. Answers are memoized against the base sidecar's
// (mtime, size) and the sorted paths, so a request naming the same paths in
// another order within the TTL receives the answer in the first request's
// order; directory-tree changes are bounded by the TTL.
func (s *Store) PathsInfo(base string, req PathsInfoRequest) ([]any, error) {
	paths := req.Paths
	if paths == nil {
		paths = []string{""}
	}

	key := pathsInfoKey{base: base, fingerprint: PathsInfoRequest{Paths: paths, Expand: req.Expand}.fingerprint()}
	version := s.sidecarVersion(base)
	if results, ok := s.pathsInfo.Get(key, version); ok {
		return results, nil
	}

	results := make([]any, 0)
	seen := make(map[string]bool)
	add := func(rel string, v any) {
		if !seen[rel] {
			seen[rel] = true
			results = append(results, v)
		}
	}

	for _, p := range paths {
		rel, err := NormalizeRel(p)
		if err != nil {
			return nil, err
		}

		if rel == "" {
			err := walkFiles(base, func(sub string, info fs.FileInfo) error {
				fact, err := s.fileFact(base, sub, info.Size())
				if err != nil {
					return err
				}
				add(sub, fact)
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		resolved, fi, err := s.Lookup(base, rel)
		if err != nil {
			return nil, err
		}

		switch {
		case fi.Mode().IsRegular():
			fact, err := s.fileFact(base, rel, fi.Size())
			if err != nil {
				return nil, err
			}
			add(rel, fact)
		case fi.IsDir() && req.Expand:
			err := walkFiles(resolved, func(sub string, info fs.FileInfo) error {
				full := rel + "/" + sub
				fact, err := s.fileFact(base, full, info.Size())
				if err != nil {
					return err
				}
				add(full, fact)
				return nil
			})
			if err != nil {
				return nil, err
			}
		case fi.IsDir():
			add(rel, localhub.DirFact{Path: rel, Type: "directory"})
		default:
			return nil, localhub.ErrEntryNotFound
		}
	}

	s.pathsInfo.Add(key, version, results)
	return results, nil
}

// fileFact builds the per-file record: size from disk, identity strictly
// from the sidecar when it has an entry.
func (s *Store) fileFact(base, rel string, size int64) (localhub.FileFact, error) {
	fact := localhub.FileFact{Path: rel, Size: size, Type: "file"}

	entry, ok, err := s.SidecarEntry(base, rel)
	if err != nil {
		return localhub.FileFact{}, err
	}
	if ok {
		fact.OID = entry.OID
		fact.LFS = entry.LFS
	}
	return fact, nil
}
