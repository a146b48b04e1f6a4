package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PostHandler struct {
	posts  *services.PostService
	groups *services.GroupService
}

func NewPostHandler(posts *services.PostService, groups *services.GroupService) *PostHandler {
	return &PostHandler{posts: posts, groups: groups}
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// Index 首页：全部帖子，按时间倒序分页
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.posts.List(c.Request.Context(), services.PostFilter{}, c.Query("page"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts")
		RenderError(c, http.StatusInternalServerError)
		return
	}

	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title":   "Последние обновления на сайте",
		"PageObj": page,
	})
}

// GroupPosts 社区帖子列表
func (h *PostHandler) GroupPosts(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := h.groups.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	page, err := h.posts.List(ctx, services.PostFilter{GroupID: group.ID}, c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title":   "Записи сообщества " + group.Title,
		"Group":   group,
		"PageObj": page,
	})
}

// Detail 帖子详情，附带评论和作者发帖数
func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	count, err := h.posts.CountByAuthor(ctx, post.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	comments, err := h.posts.Comments(ctx, post.ID)
	if err != nil {
		fail(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"Title":       post.String(),
		"Post":        post,
		"PostContent": utils.EnhanceHTMLContent(string(utils.RenderMarkdown(post.Text))),
		"CountPosts":  count,
		"Comments":    comments,
		"Form":        services.CommentForm{},
	})
}

// ShowCreate 发帖页面
func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, nil, services.PostForm{}, nil)
}

// Create 处理发帖，成功后跳转到作者主页
func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	form := bindPostForm(c)

	_, err := h.posts.Create(c.Request.Context(), user, form)
	if errs, ok := services.IsValidationError(err); ok {
		h.renderForm(c, http.StatusOK, nil, form, errs)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	redirect(c, profileURL(user.Username))
}

// ShowEdit 编辑页面，非作者直接跳回详情页
func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}
	form := services.PostForm{Text: post.Text, GroupID: post.GroupID}
	h.renderForm(c, http.StatusOK, post, form, nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}
	form := bindPostForm(c)

	_, err := h.posts.Update(c.Request.Context(), post, form)
	if errs, ok := services.IsValidationError(err); ok {
		h.renderForm(c, http.StatusOK, post, form, errs)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	redirect(c, postURL(post.ID))
}

// AddComment 发表评论。表单无效时不创建，直接回到详情页
func (h *PostHandler) AddComment(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	form := services.CommentForm{Text: c.PostForm("text")}
	_, err := h.posts.AddComment(c.Request.Context(), post, middleware.CurrentUser(c), form)
	if _, invalid := services.IsValidationError(err); err != nil && !invalid {
		fail(c, err)
		return
	}
	redirect(c, postURL(post.ID))
}

func (h *PostHandler) renderForm(c *gin.Context, code int, post *models.Post, form services.PostForm, errs map[string]error) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	var selected uint
	if form.GroupID != nil {
		selected = *form.GroupID
	}
	data := gin.H{
		"Form":          form,
		"SelectedGroup": selected,
		"Groups":        groups,
		"IsEdit":        post != nil,
	}
	if post != nil {
		data["Post"] = post
		data["Title"] = "Редактировать запись"
	} else {
		data["Title"] = "Новая запись"
	}
	if errs != nil {
		data["Errors"] = fieldErrors(errs)
	}
	Render(c, code, "posts/create_post.html", data)
}

// loadPost resolves :id, rendering 404 when it does not name a post.
func (h *PostHandler) loadPost(c *gin.Context) (*models.Post, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound)
		return nil, false
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return post, true
}

// loadOwnPost is loadPost restricted to the author; others go back to the post.
func (h *PostHandler) loadOwnPost(c *gin.Context) (*models.Post, bool) {
	post, ok := h.loadPost(c)
	if !ok {
		return nil, false
	}
	if user := middleware.CurrentUser(c); user == nil || post.UserID != user.ID {
		redirect(c, postURL(post.ID))
		return nil, false
	}
	return post, true
}

// fail maps service errors to the matching error page.
func fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		RenderError(c, http.StatusNotFound)
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	RenderError(c, http.StatusInternalServerError)
}

// bindPostForm reads text, group and an optional image from the request.
func bindPostForm(c *gin.Context) services.PostForm {
	form := services.PostForm{Text: c.PostForm("text")}

	if raw := c.PostForm("group"); raw != "" {
		// 非法 id 交给服务层报“无效选项”
		id, _ := utils.ParseID(raw)
		form.GroupID = &id
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form
	case err != nil:
		log.Warn().Err(err).Msg("failed to read upload")
		form.Image = &services.Upload{}
		return form
	}

	upload := &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
	f, err := fh.Open()
	if err == nil {
		defer f.Close()
		upload.Data, err = io.ReadAll(io.LimitReader(f, services.MaxImageSize+1))
	}
	if err != nil {
		log.Warn().Err(err).Str("filename", fh.Filename).Msg("failed to read upload")
		upload.Data = nil
	}
	form.Image = upload
	return form
}
