package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// 盗链提醒 SVG 图片
const hotlinkSVG = `<svg width="200" height="200" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%" height="100%" fill="#f8f9fa"/>
  <text x="50%" y="50%" font-family="Arial" font-size="14" fill="#6c757d" text-anchor="middle">
    Изображение доступно только на Yatube
  </text>
</svg>`

// MediaHandler 输出帖子图片
type MediaHandler struct {
	storage services.Storage
}

func NewMediaHandler(storage services.Storage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// Serve streams a stored image (GET /media/*key).
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		RenderError(c, http.StatusNotFound)
		return
	}

	// 防盗链检测：使用 Sec-Fetch-* 头部
	if !isAllowedRequest(c) {
		c.Header("Content-Type", "image/svg+xml")
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.String(http.StatusOK, hotlinkSVG)
		return
	}

	body, contentType, err := h.storage.Open(c.Request.Context(), key)
	if errors.Is(err, services.ErrNotFound) {
		RenderError(c, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to open media")
		RenderError(c, http.StatusInternalServerError)
		return
	}
	defer body.Close()

	if contentType != "" {
		c.Header("Content-Type", contentType)
	}
	c.Header("X-Content-Type-Options", "nosniff")
	// 图片 key 含 uuid，内容不会变化
	c.Header("Cache-Control", "public, max-age=604800")
	c.Header("Vary", "Sec-Fetch-Site, Sec-Fetch-Mode")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("media stream interrupted")
	}
}

// isAllowedRequest 使用 Sec-Fetch-* 头部检测是否为合法请求
func isAllowedRequest(c *gin.Context) bool {
	switch c.GetHeader("Sec-Fetch-Site") {
	case "", "same-origin", "same-site", "none":
		return true
	}
	// 允许在新标签页直接打开图片
	return c.GetHeader("Sec-Fetch-Mode") == "navigate"
}
