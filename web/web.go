// Package web embeds the browser assets served by the HTTP adapter.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// StaticFS returns the inventory page and its assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// Only reachable if the embed directive above is changed.
		panic("web: static assets missing: " + err.Error())
	}
	return sub
}
