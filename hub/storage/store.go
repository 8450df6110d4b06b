// Package storage answers hub queries from a rooted directory tree. The
// tree is the ground truth: repositories are directories, and an optional
// sidecar document per repository records the integrity metadata the API
// serves.
package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/singleflight"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/storage/cache"
)

// DriverParameters represents all configuration options available for the
// filesystem-backed store.
type DriverParameters struct {
	RootDirectory string `mapstructure:"rootdirectory"`
}

// CacheOptions carries the cache tunables from configuration.
type CacheOptions struct {
	TTL           time.Duration
	PathsInfoSize int
	SiblingsSize  int
	SHA256Size    int
}

// sidecarMemoSize bounds the sidecar parse memo. It is a fixed value, equal
// to the default paths-info capacity, and does not follow the configured
// cache capacities.
const sidecarMemoSize = 512

// Store provides the hub views over a rooted directory tree. All methods are
// safe for concurrent use; the caches are the only shared mutable state.
type Store struct {
	root string // absolute, symlink-resolved

	sidecars  *cache.Cache[string, localhub.Sidecar]
	siblings  *cache.Cache[string, RepoListing]
	pathsInfo *cache.Cache[pathsInfoKey, []any]
	digests   *cache.Cache[string, digest.Digest]

	hashes singleflight.Group
}

// FromParameters constructs a Store from a storage parameter map, typically
// configuration.Storage.Parameters().
func FromParameters(parameters map[string]any, copts CacheOptions) (*Store, error) {
	var params DriverParameters
	if err := mapstructure.Decode(parameters, &params); err != nil {
		return nil, err
	}
	if params.RootDirectory == "" {
		return nil, fmt.Errorf("storage: no rootdirectory configured")
	}
	return New(params.RootDirectory, copts)
}

// New constructs a Store rooted at root.
func New(root string, copts CacheOptions) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: root %s: %w", root, err)
	}

	sidecars, err := cache.New[string, localhub.Sidecar]("sidecar", sidecarMemoSize, copts.TTL)
	if err != nil {
		return nil, err
	}
	siblings, err := cache.New[string, RepoListing]("siblings", copts.SiblingsSize, copts.TTL)
	if err != nil {
		return nil, err
	}
	pathsInfo, err := cache.New[pathsInfoKey, []any]("pathsinfo", copts.PathsInfoSize, copts.TTL)
	if err != nil {
		return nil, err
	}
	digests, err := cache.New[string, digest.Digest]("sha256", copts.SHA256Size, copts.TTL)
	if err != nil {
		return nil, err
	}

	return &Store{
		root:      resolved,
		sidecars:  sidecars,
		siblings:  siblings,
		pathsInfo: pathsInfo,
		digests:   digests,
	}, nil
}

// Root returns the resolved storage root.
func (s *Store) Root() string {
	return s.root
}
