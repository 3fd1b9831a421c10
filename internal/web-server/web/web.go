// Package web holds the frontend served by the web server.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed public
var public embed.FS

// Assets returns the static frontend, read from dir when set and from the embedded copy otherwise.
func Assets(dir string) (fs.FS, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(public, "public")
}
