package handler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
)

const (
	indexDocument    = "index.html"
	frontendNotBuilt = "Frontend not built."
)

// StaticHandler serves the pre-built single-page application. Paths that
// do not resolve to a file fall back to the index document so the client
// side router can handle them.
type StaticHandler struct {
	dir    string
	fsys   fs.FS
	logger *slog.Logger
}

// NewStaticHandler serves files from dir, creating it when missing.
func NewStaticHandler(dir string, logger *slog.Logger) (*StaticHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create static directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticHandler{
		dir:    dir,
		fsys:   os.DirFS(dir),
		logger: logger,
	}, nil
}

// Dir returns the directory assets are served from.
func (h *StaticHandler) Dir() string {
	return h.dir
}

// ServeHTTP serves the requested asset, the index document, or a 404.
// GET /*
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if name, ok := h.resolve(assetName(r.URL.Path)); ok {
		h.serve(w, r, name)
		return
	}

	if name, ok := h.resolve(indexDocument); ok {
		w.Header().Set("Cache-Control", "no-cache")
		h.serve(w, r, name)
		return
	}

	writeJSON(w, http.StatusNotFound, detailResponse{Detail: frontendNotBuilt})
}

// resolve maps name to a regular file, using a directory's index document.
func (h *StaticHandler) resolve(name string) (string, bool) {
	if !fs.ValidPath(name) {
		return "", false
	}

	info, err := fs.Stat(h.fsys, name)
	if err != nil {
		return "", false
	}

	if info.IsDir() {
		name = path.Join(name, indexDocument)
		info, err = fs.Stat(h.fsys, name)
		if err != nil {
			return "", false
		}
	}

	if !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

func (h *StaticHandler) serve(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.fsys.Open(name)
	if err != nil {
		h.fail(w, r, name, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.fail(w, r, name, err)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		h.fail(w, r, name, errors.New("file is not seekable"))
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

func (h *StaticHandler) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	h.logger.ErrorContext(r.Context(), "failed to serve static asset",
		slog.String("asset", name),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: http.StatusText(http.StatusInternalServerError)})
}

// assetName converts a URL path to a slash-separated name rooted in the
// static directory. Dot segments are removed so the result cannot escape it.
func assetName(urlPath string) string {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return "."
	}
	return name
}
