package handlers

import (
	"errors"
	"net/http"
	"strings"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "users/signup.html", gin.H{
		"Title": "Регистрация",
		"Form":  services.SignupForm{},
	})
}

// Signup 注册成功后直接登录
func (h *AuthHandler) Signup(c *gin.Context) {
	form := services.SignupForm{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Password2: c.PostForm("password2"),
	}

	user, err := h.users.Register(c.Request.Context(), form)
	if errs, ok := services.IsValidationError(err); ok {
		form.Password, form.Password2 = "", ""
		Render(c, http.StatusOK, "users/signup.html", gin.H{
			"Title":  "Регистрация",
			"Form":   form,
			"Errors": fieldErrors(errs),
		})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	if err := login(c, user); err != nil {
		fail(c, err)
		return
	}
	redirect(c, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "users/login.html", gin.H{
		"Title": "Войти",
		"Next":  c.Query("next"),
	})
}

// Login 登录后回到 next 指向的站内页面
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	user, err := h.users.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		Render(c, http.StatusOK, "users/login.html", gin.H{
			"Title":    "Войти",
			"Error":    "Пожалуйста, введите правильные имя пользователя и пароль.",
			"Username": username,
			"Next":     next,
		})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	if err := login(c, user); err != nil {
		fail(c, err)
		return
	}
	redirect(c, safeNext(next))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to clear session")
	}
	redirect(c, "/")
}

func login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	return session.Save()
}

// safeNext only allows same-site paths, everything else falls back to the feed.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
