package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// publicUploadURL builds the public URL for a file below the uploads root.
func publicUploadURL(c *gin.Context, relPath string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, c.Request.Host, relPath)
}
