// Package static embeds the built frontend and its asset tree. Game art,
// music and voice lines live under dist alongside the app bundle.
package static

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed dist
var dist embed.FS

// asset path prefixes served directly instead of falling through to the SPA
var assetPrefixes = []string{"/assets/", "/games/", "/icons/", "/images/", "/sounds/"}

var assetExtensions = map[string]bool{
	".js": true, ".css": true, ".map": true, ".json": true, ".txt": true,
	".svg": true, ".ico": true, ".png": true, ".jpg": true, ".jpeg": true,
	".webp": true, ".gif": true,
	".ogg": true, ".mp3": true, ".wav": true, ".m4a": true,
	".woff": true, ".woff2": true,
}

func isAssetPath(p string) bool {
	for _, prefix := range assetPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return assetExtensions[path.Ext(p)]
}

// Handler serves the embedded frontend. Asset paths go to the file server;
// every other route gets index.html so client-side routing works.
func Handler() http.Handler {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		return http.NotFoundHandler()
	}
	fileServer := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAssetPath(r.URL.Path) {
			fileServer.ServeHTTP(w, r)
			return
		}
		b, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			http.Error(w, "index not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	})
}
