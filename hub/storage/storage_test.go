package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/localhub/localhub"
)

// newTestStore builds a store over a fresh root with default-ish cache
// tunables.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	root := t.TempDir()
	s, err := New(root, CacheOptions{
		TTL:           2 * time.Second,
		PathsInfoSize: 16,
		SiblingsSize:  16,
		SHA256Size:    16,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, s.Root()
}

// seedRepo creates a model repository u/m with one file and a sidecar
// covering it.
func seedRepo(t *testing.T, root string) string {
	t.Helper()

	base := filepath.Join(root, "u", "m")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(base, "a.bin"), "0123456789")
	writeSidecar(t, base, localhub.Sidecar{
		"a.bin": {
			Size: 10,
			OID:  "deadbeef",
			LFS: &localhub.LFSInfo{
				OID:  "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
				Size: 10,
			},
		},
	})
	return base
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeSidecar(t *testing.T, dir string, sc localhub.Sidecar) {
	t.Helper()
	raw, err := json.Marshal(sc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, localhub.SidecarName), raw, 0o644); err != nil {
		t.Fatal(err)
	}
}

// touch bumps a file's timestamps far enough to rotate its version key even
// on coarse-grained filesystems.
func touch(t *testing.T, path string, offset time.Duration) {
	t.Helper()
	ts := time.Now().Add(offset)
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatal(err)
	}
}
