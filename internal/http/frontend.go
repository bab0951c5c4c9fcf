package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// Frontend serves the built single-page client from dir. Paths that name a
// file are served as is; any other GET outside /api gets index.html so the
// client can route it.
func Frontend(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		method := c.Request.Method
		urlPath := path.Clean("/" + c.Request.URL.Path)
		if (method != http.MethodGet && method != http.MethodHead) || urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
			notFound(c)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(urlPath))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(index)
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not Found"})
}
