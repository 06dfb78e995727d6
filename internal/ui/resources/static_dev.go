//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// Dir resolves the static directory next to this source file, so a dev
// binary finds it from any working directory.
func Dir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// Handler serves assets straight from disk; edits show on the next reload.
func Handler() http.Handler {
	dir := Dir()
	slog.Info("static assets served from filesystem", slog.String("path", dir))
	return serve(os.DirFS(dir), "no-cache")
}
