package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/storage/cache"
)

// hashBufferSize bounds the read buffer used while digesting a file.
const hashBufferSize = 1 << 20

// SHA256 computes the digest of the regular file at path, streaming it end
// to end. Results are cached against the file's (mtime, size); concurrent
// calls for the same file state share one computation.
func (s *Store) SHA256(path string) (digest.Digest, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", localhub.ErrEntryNotFound
		}
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", localhub.ErrEntryNotFound
	}

	version := cache.VersionOf(fi)
	if d, ok := s.digests.Get(path, version); ok {
		return d, nil
	}

	key := fmt.Sprintf("%s\x00%d\x00%d", path, version.MTime, version.Size)
	v, err, _ := s.hashes.Do(key, func() (any, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		digester := digest.SHA256.Digester()
		if _, err := io.CopyBuffer(digester.Hash(), f, make([]byte, hashBufferSize)); err != nil {
			return nil, err
		}

		d := digester.Digest()
		s.digests.Add(path, version, d)
		return d, nil
	})
	if err != nil {
		return "", err
	}
	return v.(digest.Digest), nil
}
