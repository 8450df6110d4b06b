package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/localhub/localhub"
)

func TestSiblingsOrderAndTotal(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)
	writeFile(t, filepath.Join(base, "sub", "b.bin"), "xyz")
	writeFile(t, filepath.Join(base, "README.md"), "hello")

	listing, err := s.Siblings(base)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"README.md", "a.bin", "sub/b.bin"}
	if len(listing.Siblings) != len(want) {
		t.Fatalf("unexpected siblings %+v", listing.Siblings)
	}
	for i, rf := range want {
		if listing.Siblings[i].RFilename != rf {
			t.Fatalf("position %d: got %q, want %q", i, listing.Siblings[i].RFilename, rf)
		}
	}

	if listing.UsedStorage != 10+3+5 {
		t.Fatalf("usedStorage = %d", listing.UsedStorage)
	}
}

func TestSiblingsSkipsSidecar(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	listing, err := s.Siblings(base)
	if err != nil {
		t.Fatal(err)
	}
	for _, sib := range listing.Siblings {
		if sib.RFilename == localhub.SidecarName {
			t.Fatal("sidecar leaked into siblings")
		}
	}
}

func TestSiblingsCacheRotatesWithBaseDir(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	before, err := s.Siblings(base)
	if err != nil {
		t.Fatal(err)
	}

	// Creating a direct child changes the base directory's mtime, which
	// must rotate the cache key immediately.
	writeFile(t, filepath.Join(base, "new.bin"), "1234")
	touch(t, base, time.Second)

	after, err := s.Siblings(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Siblings) != len(before.Siblings)+1 {
		t.Fatalf("new file not observed: %+v", after.Siblings)
	}
}
