package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/localhub/localhub"
)

func TestSidecarAbsentIsEmpty(t *testing.T) {
	s, root := newTestStore(t)
	base := filepath.Join(root, "u", "bare")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatal(err)
	}

	sc, err := s.Sidecar(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc) != 0 {
		t.Fatalf("expected empty mapping, got %d entries", len(sc))
	}
}

func TestSidecarParse(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	sc, err := s.Sidecar(base)
	if err != nil {
		t.Fatal(err)
	}

	entry, ok := sc["a.bin"]
	if !ok {
		t.Fatal("a.bin missing from sidecar")
	}
	if entry.Size != 10 || entry.OID != "deadbeef" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.LFS == nil || entry.LFS.Size != 10 {
		t.Fatalf("unexpected lfs %+v", entry.LFS)
	}
}

func TestSidecarKeyNormalization(t *testing.T) {
	s, root := newTestStore(t)
	base := filepath.Join(root, "u", "norm")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSidecar(t, base, localhub.Sidecar{
		"/lead.bin":  {Size: 1, OID: "aa"},
		"sub\\w.bin": {Size: 2, OID: "bb"},
	})

	sc, err := s.Sidecar(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sc["lead.bin"]; !ok {
		t.Fatal("leading slash not stripped")
	}
	if _, ok := sc["sub/w.bin"]; !ok {
		t.Fatal("backslash not normalized")
	}
}

func TestSidecarMalformed(t *testing.T) {
	s, root := newTestStore(t)
	base := filepath.Join(root, "u", "bad")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(base, localhub.SidecarName), "{not json")

	_, err := s.Sidecar(base)
	var scErr *localhub.SidecarError
	if !errors.As(err, &scErr) {
		t.Fatalf("expected SidecarError, got %v", err)
	}
}

func TestSidecarCacheInvalidatesOnChange(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	if _, err := s.Sidecar(base); err != nil {
		t.Fatal(err)
	}

	// Rewrite the sidecar with a new oid; the (mtime, size) key must
	// rotate and the next read must see the new content even within TTL.
	writeSidecar(t, base, localhub.Sidecar{
		"a.bin": {Size: 10, OID: "cafebabe"},
	})
	touch(t, filepath.Join(base, localhub.SidecarName), time.Second)

	sc, err := s.Sidecar(base)
	if err != nil {
		t.Fatal(err)
	}
	if sc["a.bin"].OID != "cafebabe" {
		t.Fatalf("stale sidecar served: %+v", sc["a.bin"])
	}
}

func TestSidecarEntryFallsBackToSubdirectory(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	// A nested directory carries its own sidecar; keys stay
	// base-relative.
	writeFile(t, filepath.Join(base, "sub", "b.bin"), "xx")
	writeSidecar(t, filepath.Join(base, "sub"), localhub.Sidecar{
		"sub/b.bin": {Size: 2, OID: "beef"},
	})

	entry, ok, err := s.SidecarEntry(base, "sub/b.bin")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || entry.OID != "beef" {
		t.Fatalf("nested sidecar not consulted: ok=%v entry=%+v", ok, entry)
	}
}
