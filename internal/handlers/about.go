package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// About renders one of the static about pages.
func About(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		Render(c, http.StatusOK, name, gin.H{"Title": title})
	}
}
