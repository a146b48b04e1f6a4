package handlers

import (
	"net/http"
	"yatube/internal/middleware"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

var errorTemplates = map[int]string{
	http.StatusForbidden:           "core/403.html",
	http.StatusNotFound:            "core/404.html",
	http.StatusInternalServerError: "core/500.html",
}

// RenderError 渲染静态错误页
func RenderError(c *gin.Context, code int) {
	name, ok := errorTemplates[code]
	if !ok {
		name = "core/500.html"
	}
	Render(c, code, name, gin.H{"Path": c.Request.URL.Path})
	c.Abort()
}

// NotFound handles every path no route matches.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound)
}

// Forbidden renders the 403 page.
func Forbidden(c *gin.Context) {
	RenderError(c, http.StatusForbidden)
}

// Recovery renders the 500 page after a panic.
func Recovery(c *gin.Context, _ any) {
	RenderError(c, http.StatusInternalServerError)
}

// fieldErrors flattens validation errors into field -> message for templates.
func fieldErrors(errs validation.Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Error()
	}
	return out
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}
