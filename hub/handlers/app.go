package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/configuration"
	"github.com/localhub/localhub/hub/api/errcode"
	"github.com/localhub/localhub/hub/storage"
	"github.com/localhub/localhub/internal/dcontext"
)

// App is the global hub application object. Shared resources live here and
// are accessible from all requests. Any writable fields must be protected;
// today the store's caches are the only shared mutable state.
type App struct {
	context.Context

	Config *configuration.Configuration

	// InstanceID is a unique id assigned to the application on each
	// creation, identifying restarts in the logs.
	InstanceID string

	router  *mux.Router
	store   *storage.Store
	started time.Time
}

// NewApp takes a configuration and a store and returns a configured app,
// ready to serve requests. The app only implements ServeHTTP and can be
// wrapped in other handlers accordingly.
func NewApp(ctx context.Context, config *configuration.Configuration, store *storage.Store) *App {
	app := &App{
		Context:    ctx,
		Config:     config,
		InstanceID: uuid.NewString(),
		router:     apiRouter(),
		store:      store,
		started:    time.Now(),
	}

	app.Context = dcontext.WithLogger(app.Context,
		dcontext.GetLoggerWithField(app.Context, "instance.id", app.InstanceID))

	app.register(routeNameBase, baseDispatcher)
	app.register(routeNameRepoInfo, repoInfoDispatcher)
	app.register(routeNameRepoInfoRevision, repoInfoDispatcher)
	app.register(routeNamePathsInfo, pathsInfoDispatcher)
	app.register(routeNameTree, treeDispatcher)
	app.register(routeNameDatasetResolve, resolveDispatcher(localhub.RepoKindDataset))
	app.register(routeNameDatasetSHA256, sha256Dispatcher(localhub.RepoKindDataset))
	app.register(routeNameResolve, resolveDispatcher(localhub.RepoKindModel))
	app.register(routeNameSHA256, sha256Dispatcher(localhub.RepoKindModel))

	app.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := errcode.ServeJSON(w, errcode.ErrorCodeEntryNotFound); err != nil {
			dcontext.GetLogger(app).Errorf("error serving not found: %v", err)
		}
	})

	return app
}

// dispatchFunc takes a context and request and returns a constructed handler
// for the route. The dispatcher will use this to dynamically create request
// specific handlers for each endpoint without creating a new router for each
// request.
type dispatchFunc func(ctx *Context, r *http.Request) http.Handler

// register a handler with the application, by route name.
func (app *App) register(routeName string, dispatch dispatchFunc) {
	app.router.GetRoute(routeName).Handler(app.dispatcher(dispatch))
}

// dispatcher returns a handler that constructs a request specific context and
// handler, using the dispatch factory function.
func (app *App) dispatcher(dispatch dispatchFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := app.context(r)
		dispatch(ctx, r).ServeHTTP(w, r)
	})
}

// context constructs the request-scoped context: the request's own context
// (so client disconnects cancel in-flight streams) carrying the app logger,
// the mux vars and a var-aware logger.
func (app *App) context(r *http.Request) *Context {
	ctx := r.Context()
	ctx = dcontext.WithLogger(ctx, dcontext.GetLogger(app))

	vars := mux.Vars(r)
	values := make(map[string]any, len(vars))
	for k, v := range vars {
		values["vars."+k] = v
	}
	ctx = dcontext.WithValues(ctx, values)
	ctx = dcontext.WithLogger(ctx, dcontext.GetLogger(ctx, "vars.org", "vars.name"))

	return &Context{
		App:     app,
		Context: ctx,
	}
}

// ServeHTTP dispatches the request to the matching route.
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close() // ensure that request body is always closed.
	app.router.ServeHTTP(w, r)
}
