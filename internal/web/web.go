// internal/web/web.go
// Package web serves an optional single-page web UI from a directory.
package web

import (
	"bytes"
	"errors"
	"flexnas/internal/logging"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// spaHandler serves static files and falls back to the index page for
// unknown paths so client-side routes resolve.
type spaHandler struct {
	contentFS fs.FS
	indexPath string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// /api and /swagger never fall through to the UI.
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/swagger/") {
		http.NotFound(w, r)
		return
	}

	filePath := path.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if filePath == "" || filePath == "." {
		filePath = h.indexPath
	}

	file, err := h.contentFS.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		h.serveIndex(w, r)
		return
	}
	if err != nil {
		logging.Log.Errorf("spaHandler: error opening '%s': %v", filePath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		logging.Log.Errorf("spaHandler: error stating '%s': %v", filePath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if info.IsDir() {
		h.serveIndex(w, r)
		return
	}

	seeker, ok := file.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(file)
		if err != nil {
			logging.Log.Errorf("spaHandler: error reading '%s': %v", filePath, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		seeker = bytes.NewReader(data)
	}
	http.ServeContent(w, r, filePath, info.ModTime(), seeker)
}

func (h spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := fs.ReadFile(h.contentFS, h.indexPath)
	if err != nil {
		logging.Log.Errorf("spaHandler: %s not found: %v", h.indexPath, err)
		http.Error(w, "Web UI not available", http.StatusNotFound)
		return
	}
	http.ServeContent(w, r, h.indexPath, time.Time{}, bytes.NewReader(index))
}

// AddRoutes mounts content as a catch-all on router.
func AddRoutes(router *mux.Router, content fs.FS, indexPath string) {
	router.PathPrefix("/").Handler(spaHandler{contentFS: content, indexPath: indexPath})
}

// AddDirRoutes serves the UI from dir when it exists.
// It reports whether the routes were mounted.
func AddDirRoutes(router *mux.Router, dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logging.Log.Warnf("Web UI directory '%s' not usable, UI disabled: %v", dir, err)
		return false
	}
	AddRoutes(router, os.DirFS(dir), "index.html")
	logging.Log.Infof("Serving web UI from '%s'", dir)
	return true
}
