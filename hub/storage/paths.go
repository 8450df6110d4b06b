package storage

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/localhub/localhub"
)

// RepoPath composes the base directory for a repository and verifies it
// exists. org and name arrive URL-decoded exactly once by the router and are
// treated as opaque path segments.
func (s *Store) RepoPath(kind localhub.RepoKind, org, name string) (string, error) {
	if err := checkSegment(org); err != nil {
		return "", err
	}
	if err := checkSegment(name); err != nil {
		return "", err
	}

	base := filepath.Join(s.root, kind.Prefix(), org, name)
	resolved, err := s.canonicalize(base)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", localhub.ErrEntryNotFound
		}
		return "", err
	}
	if !fi.IsDir() {
		return "", localhub.ErrEntryNotFound
	}
	return resolved, nil
}

// ResolveFile resolves subpath against a repository base to a regular file.
// The sidecar is not a valid target and reports as absent.
func (s *Store) ResolveFile(base, subpath string) (string, fs.FileInfo, error) {
	rel, err := NormalizeRel(subpath)
	if err != nil {
		return "", nil, err
	}
	if rel == "" || path.Base(rel) == localhub.SidecarName {
		return "", nil, localhub.ErrEntryNotFound
	}

	resolved, err := s.canonicalize(filepath.Join(base, filepath.FromSlash(rel)))
	if err != nil {
		return "", nil, err
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, localhub.ErrEntryNotFound
		}
		return "", nil, err
	}
	if !fi.Mode().IsRegular() {
		return "", nil, localhub.ErrEntryNotFound
	}
	return resolved, fi, nil
}

// Lookup resolves subpath against base without requiring a regular file,
// for enumeration targets that may be directories.
func (s *Store) Lookup(base, subpath string) (string, fs.FileInfo, error) {
	rel, err := NormalizeRel(subpath)
	if err != nil {
		return "", nil, err
	}
	if path.Base(rel) == localhub.SidecarName {
		return "", nil, localhub.ErrEntryNotFound
	}

	resolved, err := s.canonicalize(filepath.Join(base, filepath.FromSlash(rel)))
	if err != nil {
		return "", nil, err
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, localhub.ErrEntryNotFound
		}
		return "", nil, err
	}
	return resolved, fi, nil
}

// canonicalize resolves symlinks in p and verifies the result is still a
// descendant of the storage root.
func (s *Store) canonicalize(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", localhub.ErrEntryNotFound
		}
		return "", err
	}
	if !s.within(resolved) {
		return "", localhub.ErrPathEscape
	}
	return resolved, nil
}

// within reports whether p is the root itself or a descendant of it.
func (s *Store) within(p string) bool {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// NormalizeRel normalizes a client-supplied relative path: forward slashes,
// no leading slash, no empty, dot, dot-dot or NUL-bearing segments. The
// empty path refers to the base itself.
func NormalizeRel(p string) (string, error) {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return "", nil
	}
	segments := strings.Split(p, "/")
	for _, seg := range segments {
		switch {
		case seg == "" || seg == "." || seg == "..":
			return "", localhub.ErrPathEscape
		case strings.ContainsRune(seg, 0):
			return "", localhub.ErrPathEscape
		}
	}
	return strings.Join(segments, "/"), nil
}

// checkSegment validates a single repository id segment.
func checkSegment(seg string) error {
	if seg == "" || seg == "." || seg == ".." {
		return localhub.ErrPathEscape
	}
	if strings.ContainsRune(seg, 0) || strings.ContainsAny(seg, "/\\") {
		return localhub.ErrPathEscape
	}
	return nil
}
