package handlers

import "github.com/gorilla/mux"

const (
	routeNameBase             = "base"
	routeNameRepoInfo         = "repo-info"
	routeNameRepoInfoRevision = "repo-info-revision"
	routeNamePathsInfo        = "paths-info"
	routeNameTree             = "tree"
	routeNameDatasetResolve   = "dataset-resolve"
	routeNameDatasetSHA256    = "dataset-sha256"
	routeNameResolve          = "resolve"
	routeNameSHA256           = "sha256"
)

// apiRouter builds a gorilla router with named routes for the hub API.
// Declaration order is match order: the /api and /datasets prefixes must be
// claimed before the bare {org}/{name} download routes. Only the filename
// tail may contain slashes. Paths are matched uncleaned, so a dot-dot
// segment reaches the handlers and is rejected there as an invalid path.
func apiRouter() *mux.Router {
	router := mux.NewRouter().SkipClean(true)

	// GET / Probe endpoint.
	router.
		Path("/").
		Name(routeNameBase)

	// GET /api/{kind}/{org}/{name} Canonical repository document.
	router.
		Path("/api/{kind:models|datasets}/{org}/{name}").
		Name(routeNameRepoInfo)

	// GET /api/{kind}/{org}/{name}/revision/{revision} Same, pinned to a revision.
	router.
		Path("/api/{kind:models|datasets}/{org}/{name}/revision/{revision}").
		Name(routeNameRepoInfoRevision)

	// POST /api/{kind}/{org}/{name}/paths-info/{revision} Per-path metadata query.
	router.
		Path("/api/{kind:models|datasets}/{org}/{name}/paths-info/{revision}").
		Name(routeNamePathsInfo)

	// GET /api/{kind}/{org}/{name}/tree/{revision} Flat listing.
	router.
		Path("/api/{kind:models|datasets}/{org}/{name}/tree/{revision}").
		Name(routeNameTree)

	// GET|HEAD /datasets/{org}/{name}/resolve/{revision}/{filename} Dataset download.
	router.
		Path("/datasets/{org}/{name}/resolve/{revision}/{filename:.*}").
		Name(routeNameDatasetResolve)

	// GET /datasets/{org}/{name}/sha256/{revision}/{filename} Dataset digest.
	router.
		Path("/datasets/{org}/{name}/sha256/{revision}/{filename:.*}").
		Name(routeNameDatasetSHA256)

	// GET|HEAD /{org}/{name}/resolve/{revision}/{filename} Model download.
	router.
		Path("/{org}/{name}/resolve/{revision}/{filename:.*}").
		Name(routeNameResolve)

	// GET /{org}/{name}/sha256/{revision}/{filename} Model digest.
	router.
		Path("/{org}/{name}/sha256/{revision}/{filename:.*}").
		Name(routeNameSHA256)

	return router
}
