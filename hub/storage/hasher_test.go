package storage

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/localhub/localhub"
)

func TestSHA256KnownDigest(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	d, err := s.SHA256(filepath.Join(base, "a.bin"))
	if err != nil {
		t.Fatal(err)
	}
	const want = "84d89877f0d4041efb6bf91a16f0248f2fd573e6af05c19f96bedb9f882f7882"
	if d.Encoded() != want {
		t.Fatalf("digest %s, want %s", d.Encoded(), want)
	}
}

func TestSHA256Missing(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)

	_, err := s.SHA256(filepath.Join(base, "nope.bin"))
	if !errors.Is(err, localhub.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestSHA256CacheRotatesOnRewrite(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)
	path := filepath.Join(base, "a.bin")

	if _, err := s.SHA256(path); err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, "9876543210")
	touch(t, path, time.Second)

	d, err := s.SHA256(path)
	if err != nil {
		t.Fatal(err)
	}
	const stale = "84d89877f0d4041efb6bf91a16f0248f2fd573e6af05c19f96bedb9f882f7882"
	if d.Encoded() == stale {
		t.Fatal("stale digest served after rewrite")
	}
}

func TestSHA256Concurrent(t *testing.T) {
	s, root := newTestStore(t)
	base := seedRepo(t, root)
	path := filepath.Join(base, "a.bin")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.SHA256(path); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}
