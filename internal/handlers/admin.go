package handlers

import (
	"net/http"
	"yatube/internal/cache"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AdminHandler 管理操作，路由层已经限制为 staff
type AdminHandler struct {
	posts  *services.PostService
	groups *services.GroupService
	cache  cache.Store
}

func NewAdminHandler(posts *services.PostService, groups *services.GroupService, store cache.Store) *AdminHandler {
	return &AdminHandler{posts: posts, groups: groups, cache: store}
}

// ClearCache 清空页面缓存
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if err := h.cache.Clear(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	log.Info().Str("by", middleware.CurrentUser(c).Username).Msg("page cache cleared")
	redirect(c, "/")
}

// CreateGroup 创建社区，表单错误以 JSON 返回
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	form := services.GroupForm{
		Title:       c.PostForm("title"),
		Slug:        c.PostForm("slug"),
		Description: c.PostForm("description"),
	}
	group, err := h.groups.Create(c.Request.Context(), form)
	if errs, ok := services.IsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(errs)})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/group/"+group.Slug+"/")
}

// DeleteGroup 删除社区，原有帖子保留但不再属于任何社区
func (h *AdminHandler) DeleteGroup(c *gin.Context) {
	if err := h.groups.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/")
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound)
		return
	}
	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	log.Info().Uint("post_id", id).Str("by", middleware.CurrentUser(c).Username).Msg("post deleted by admin")
	redirect(c, "/")
}
