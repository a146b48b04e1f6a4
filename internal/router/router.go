package router

import (
	"net/http"
	"time"
	"yatube/internal/cache"
	"yatube/internal/handlers"
	"yatube/internal/logger"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/gorm"
)

const sessionName = "yatube_session"

// Deps 构建路由所需的依赖
type Deps struct {
	DB            *gorm.DB
	Cache         cache.Store
	CacheTTL      time.Duration
	Storage       services.Storage
	PageSize      int
	SessionSecret string
	SecureCookies bool // 生产环境只通过 HTTPS 发送会话 cookie
	SiteURL       string
	Templates     render.HTMLRender
	StaticDir     string // 为空时不挂载 /static
}

// New assembles the engine: middleware, templates and every route.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(), gin.CustomRecovery(handlers.Recovery))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^/media/`})))

	store := cookie.NewStore([]byte(d.SessionSecret))
	store.Options(sessionOptions(d.SecureCookies))
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.LoadUser(d.DB))

	r.HTMLRender = d.Templates
	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir)
	}

	RegisterRoutes(r, d)
	return r
}

func sessionOptions(secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Services
	postService := services.NewPostService(d.DB, d.Storage, d.PageSize)
	groupService := services.NewGroupService(d.DB)
	userService := services.NewUserService(d.DB)
	followService := services.NewFollowService(d.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	postHandler := handlers.NewPostHandler(postService, groupService)
	userHandler := handlers.NewUserHandler(userService, postService, followService)
	followHandler := handlers.NewFollowHandler(userService, postService, followService)
	groupHandler := handlers.NewGroupHandler(groupService)
	mediaHandler := handlers.NewMediaHandler(d.Storage)
	adminHandler := handlers.NewAdminHandler(postService, groupService, d.Cache)
	seoHandler := handlers.NewSEOHandler(postService, groupService, d.SiteURL)

	// 公共路由 (Public Routes)
	r.GET("/", middleware.CachePage(d.Cache, d.CacheTTL), postHandler.Index) // 首页，页面缓存
	r.GET("/group/", groupHandler.List)                                       // 全部社区
	r.GET("/group/:slug/", postHandler.GroupPosts)                            // 社区帖子
	r.GET("/profile/:username/", userHandler.Profile)                         // 用户主页
	r.GET("/posts/:id/", postHandler.Detail)                                  // 帖子详情
	r.GET("/media/*key", mediaHandler.Serve)                                  // 帖子图片

	// SEO
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)

	r.GET("/about/author/", handlers.About("about/author.html", "Об авторе"))
	r.GET("/about/tech/", handlers.About("about/tech.html", "Технологии"))

	auth := r.Group("/auth")
	{
		auth.GET("/signup/", authHandler.ShowSignup)
		auth.POST("/signup/", authHandler.Signup)
		auth.GET("/login/", authHandler.ShowLogin)
		auth.POST("/login/", authHandler.Login)
		auth.GET("/logout/", authHandler.Logout)
	}

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create/", postHandler.ShowCreate)              // 发帖页面
		authorized.POST("/create/", postHandler.Create)                 // 提交发帖
		authorized.GET("/posts/:id/edit/", postHandler.ShowEdit)        // 编辑页面
		authorized.POST("/posts/:id/edit/", postHandler.Update)         // 提交编辑
		authorized.POST("/posts/:id/comment/", postHandler.AddComment)  // 发表评论
		authorized.GET("/follow/", followHandler.Index)                 // 关注作者的帖子
		authorized.GET("/profile/:username/follow/", followHandler.Follow)
		authorized.GET("/profile/:username/unfollow/", followHandler.Unfollow)
	}

	// 管理路由 (Admin Routes)
	admin := r.Group("/admin")
	admin.Use(middleware.StaffRequired(handlers.Forbidden))
	{
		admin.POST("/cache/clear", adminHandler.ClearCache)
		admin.POST("/groups/", adminHandler.CreateGroup)
		admin.POST("/groups/:slug/delete/", adminHandler.DeleteGroup)
		admin.POST("/posts/:id/delete/", adminHandler.DeletePost)
	}

	r.NoRoute(handlers.NotFound)
}
