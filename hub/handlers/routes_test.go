package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestRouterMatches(t *testing.T) {
	router := apiRouter()

	cases := []struct {
		path  string
		route string
		vars  map[string]string
	}{
		{
			path:  "/",
			route: routeNameBase,
		},
		{
			path:  "/api/models/u/m",
			route: routeNameRepoInfo,
			vars:  map[string]string{"kind": "models", "org": "u", "name": "m"},
		},
		{
			path:  "/api/datasets/u/m/revision/dev",
			route: routeNameRepoInfoRevision,
			vars:  map[string]string{"kind": "datasets", "revision": "dev"},
		},
		{
			path:  "/api/models/u/m/paths-info/main",
			route: routeNamePathsInfo,
		},
		{
			path:  "/api/models/u/m/tree/main",
			route: routeNameTree,
		},
		{
			path:  "/u/m/resolve/main/sub/dir/weights.bin",
			route: routeNameResolve,
			vars:  map[string]string{"org": "u", "name": "m", "filename": "sub/dir/weights.bin"},
		},
		{
			path:  "/datasets/d/n/resolve/main/x.txt",
			route: routeNameDatasetResolve,
			vars:  map[string]string{"org": "d", "name": "n"},
		},
		{
			path:  "/u/m/sha256/main/a.bin",
			route: routeNameSHA256,
		},
		{
			path:  "/datasets/d/n/sha256/main/a.bin",
			route: routeNameDatasetSHA256,
		},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, tc.path, nil)
		var match mux.RouteMatch
		if !router.Match(r, &match) {
			t.Fatalf("%s: no route matched", tc.path)
		}
		if match.Route.GetName() != tc.route {
			t.Fatalf("%s: matched %q, want %q", tc.path, match.Route.GetName(), tc.route)
		}
		for k, v := range tc.vars {
			if match.Vars[k] != v {
				t.Fatalf("%s: var %s = %q, want %q", tc.path, k, match.Vars[k], v)
			}
		}
	}
}

func TestRouterUnknown(t *testing.T) {
	router := apiRouter()

	for _, path := range []string{"/u", "/u/m", "/u/m/download/main/a.bin"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		var match mux.RouteMatch
		if router.Match(r, &match) && match.MatchErr == nil {
			t.Fatalf("%s: unexpectedly matched %q", path, match.Route.GetName())
		}
	}
}
