//go:build !dev

package resources

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// Handler serves the assets embedded in the binary.
func Handler() http.Handler {
	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return serve(fsys, "public, max-age=86400")
}

// Dir returns the on-disk static directory. Embedded builds have none, so
// the dev file watcher stays off.
func Dir() string {
	return ""
}
