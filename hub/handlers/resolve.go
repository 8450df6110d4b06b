package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/handlers"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/storage"
	"github.com/localhub/localhub/internal/dcontext"
)

// resolveChunkSize is the unit in which download bodies are streamed.
const resolveChunkSize = 256 << 10

// resolveDispatcher builds the download handler for a repository kind.
func resolveDispatcher(kind localhub.RepoKind) dispatchFunc {
	return func(ctx *Context, r *http.Request) http.Handler {
		resolveHandler := &resolveHandler{
			Context: ctx,
			Kind:    kind,
		}

		return handlers.MethodHandler{
			http.MethodGet:  http.HandlerFunc(resolveHandler.ServeFile),
			http.MethodHead: http.HandlerFunc(resolveHandler.ServeFile),
		}
	}
}

// resolveHandler serves file download and probe requests.
type resolveHandler struct {
	*Context

	Kind localhub.RepoKind
}

// ServeFile answers GET and HEAD for a file sub-path. Identity headers come
// strictly from the sidecar; a file the sidecar cannot identify is a server
// error, never a guessed ETag.
func (rh *resolveHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	base, err := rh.store.RepoPath(rh.Kind, getOrg(rh), getName(rh))
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}

	rel, err := storage.NormalizeRel(getFilename(rh))
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}

	path, fi, err := rh.store.ResolveFile(base, rel)
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}

	entry, ok, err := rh.store.SidecarEntry(base, rel)
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}
	if !ok {
		serveError(rh.Context, w, localhub.ErrETagUnavailable)
		return
	}

	etag := entry.OID
	if entry.LFS != nil && entry.LFS.OID != "" {
		etag = strings.TrimPrefix(entry.LFS.OID, "sha256:")
	}
	if etag == "" {
		serveError(rh.Context, w, localhub.ErrETagUnavailable)
		return
	}

	length := entry.Size
	if length == 0 {
		length = fi.Size()
	}

	w.Header().Set("ETag", `"`+etag+`"`)
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", "application/octet-stream")
	if entry.LFS != nil {
		w.Header().Set("x-lfs-size", strconv.FormatInt(entry.LFS.Size, 10))
	}

	span, verdict := evalRange(r.Header.Get("Range"), length)
	if verdict == rangeUnsatisfiable {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", length))
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	status := http.StatusOK
	if verdict == rangePartial {
		status = http.StatusPartialContent
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", span.start, span.end, length))
		w.Header().Set("Content-Length", strconv.FormatInt(span.length(), 10))
	} else {
		span = byteRange{start: 0, end: length - 1}
		w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}
	defer f.Close()

	w.WriteHeader(status)
	if length == 0 {
		return
	}

	if err := streamRange(rh, w, f, span); err != nil {
		// Headers are out; all that is left is to drop the connection.
		dcontext.GetLogger(rh).WithError(err).Warn("download aborted")
	}
}

// streamRange copies the inclusive span from f to w in fixed-size chunks,
// stopping promptly when the client goes away.
func streamRange(ctx context.Context, w http.ResponseWriter, f *os.File, span byteRange) error {
	if span.start > 0 {
		if _, err := f.Seek(span.start, io.SeekStart); err != nil {
			return err
		}
	}

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, resolveChunkSize)
	remaining := span.length()

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}

		n, err := f.Read(buf[:chunk])
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			if flusher != nil {
				flusher.Flush()
			}
			remaining -= int64(n)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
