package handlers

import (
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	users   *services.UserService
	posts   *services.PostService
	follows *services.FollowService
}

func NewFollowHandler(users *services.UserService, posts *services.PostService, follows *services.FollowService) *FollowHandler {
	return &FollowHandler{users: users, posts: posts, follows: follows}
}

// Index 关注作者的帖子流
func (h *FollowHandler) Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, err := h.posts.ListFollowed(c.Request.Context(), user.ID, c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title":   "Избранные авторы",
		"PageObj": page,
	})
}

// Follow 关注作者；关注自己或重复关注不做任何事
func (h *FollowHandler) Follow(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.follows.Follow(ctx, middleware.CurrentUser(c), author); err != nil {
		fail(c, err)
		return
	}
	redirect(c, profileURL(author.Username))
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.follows.Unfollow(ctx, middleware.CurrentUser(c), author); err != nil {
		fail(c, err)
		return
	}
	redirect(c, profileURL(author.Username))
}
