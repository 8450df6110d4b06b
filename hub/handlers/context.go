package handlers

import (
	"context"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/internal/dcontext"
)

// Context contains the request specific context for use across handlers.
// Resources that don't need to be shared across handlers should not be on
// this object.
type Context struct {
	*App
	context.Context
}

// Value overrides context.Context.Value to ensure that calls are routed to
// the request context.
func (ctx *Context) Value(key any) any {
	return ctx.Context.Value(key)
}

func getOrg(ctx context.Context) string {
	return dcontext.GetStringValue(ctx, "vars.org")
}

func getName(ctx context.Context) string {
	return dcontext.GetStringValue(ctx, "vars.name")
}

func getFilename(ctx context.Context) string {
	return dcontext.GetStringValue(ctx, "vars.filename")
}

// getRevision returns the revision named in the request. Revisions are
// opaque: any string is accepted and echoed back, never validated against
// on-disk content.
func getRevision(ctx context.Context) string {
	if rev := dcontext.GetStringValue(ctx, "vars.revision"); rev != "" {
		return rev
	}
	return "main"
}

// getKind maps the kind path segment onto a RepoKind.
func getKind(ctx context.Context) localhub.RepoKind {
	if dcontext.GetStringValue(ctx, "vars.kind") == "datasets" {
		return localhub.RepoKindDataset
	}
	return localhub.RepoKindModel
}

// repoID reassembles the two-segment repository identifier.
func repoID(ctx context.Context) string {
	return getOrg(ctx) + "/" + getName(ctx)
}
