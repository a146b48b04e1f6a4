package handlers

import (
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users   *services.UserService
	posts   *services.PostService
	follows *services.FollowService
}

func NewUserHandler(users *services.UserService, posts *services.PostService, follows *services.FollowService) *UserHandler {
	return &UserHandler{users: users, posts: posts, follows: follows}
}

// Profile - 用户主页 /profile/:username/
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	page, err := h.posts.List(ctx, services.PostFilter{AuthorID: author.ID}, c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}

	// 匿名访问时 Following 恒为 true，模板据此隐藏关注按钮
	following := true
	if user := middleware.CurrentUser(c); user != nil {
		if following, err = h.follows.IsFollowing(ctx, user.ID, author.ID); err != nil {
			fail(c, err)
			return
		}
	}

	followingCount, followersCount, err := h.follows.FollowCounts(ctx, author.ID)
	if err != nil {
		fail(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":          "Профайл пользователя " + author.DisplayName(),
		"Author":         author,
		"PageObj":        page,
		"CountPosts":     page.Count,
		"Following":      following,
		"FollowingCount": followingCount,
		"FollowersCount": followersCount,
	})
}
