package handlers

import (
	"net/http"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groups *services.GroupService
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// List 全部社区
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/groups.html", gin.H{
		"Title":  "Сообщества",
		"Groups": groups,
	})
}
