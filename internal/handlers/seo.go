package handlers

import (
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	sitemapPostLimit = 500
	feedPostLimit    = 20
)

var (
	blockPattern = regexp.MustCompile(`(?s)(<(?:p|h[1-6]|ul|ol|blockquote|pre)[^>]*>.*?</(?:p|h[1-6]|ul|ol|blockquote|pre)>)`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// SEOHandler robots.txt、sitemap 和 RSS
type SEOHandler struct {
	posts   *services.PostService
	groups  *services.GroupService
	siteURL string
}

func NewSEOHandler(posts *services.PostService, groups *services.GroupService, siteURL string) *SEOHandler {
	return &SEOHandler{posts: posts, groups: groups, siteURL: strings.TrimRight(siteURL, "/")}
}

func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# 禁止爬取管理和账户页面
Disallow: /admin/
Disallow: /auth/
Disallow: /create/
Disallow: /follow/

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML 首页、社区和最近的帖子
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	ctx := c.Request.Context()
	groups, err := h.groups.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	posts, err := h.posts.Recent(ctx, sitemapPostLimit)
	if err != nil {
		fail(c, err)
		return
	}

	now := time.Now().Format("2006-01-02")
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	writeURL := func(path, lastmod, changefreq string, priority float64) {
		fmt.Fprintf(&b, `  <url>
    <loc>%s%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, h.siteURL, escapeXML(path), lastmod, changefreq, priority)
	}

	writeURL("/", now, "hourly", 1.0)
	writeURL("/group/", now, "weekly", 0.8)
	for _, g := range groups {
		writeURL("/group/"+g.Slug+"/", now, "daily", 0.7)
	}

	seenAuthors := make(map[uint]bool)
	for _, post := range posts {
		// 新帖子优先级更高
		priority, changefreq := 0.6, "weekly"
		if time.Since(post.CreatedAt) < 7*24*time.Hour {
			priority, changefreq = 0.8, "daily"
		}
		writeURL(fmt.Sprintf("/posts/%d/", post.ID), post.CreatedAt.Format("2006-01-02"), changefreq, priority)

		if !seenAuthors[post.UserID] {
			seenAuthors[post.UserID] = true
			writeURL(profileURL(post.User.Username), now, "daily", 0.5)
		}
	}
	b.WriteString(`</urlset>`)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// RSSFeed 最新帖子的 RSS 2.0 feed
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	posts, err := h.posts.Recent(c.Request.Context(), feedPostLimit)
	if err != nil {
		fail(c, err)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>Yatube</title>
    <link>` + h.siteURL + `</link>
    <description>Последние записи на Yatube</description>
    <language>ru-RU</language>
    <lastBuildDate>` + time.Now().Format(time.RFC1123Z) + `</lastBuildDate>
    <atom:link href="` + h.siteURL + `/feed.xml" rel="self" type="application/rss+xml"/>
`)

	for _, post := range posts {
		link := h.siteURL + postURL(post.ID)
		content := truncateByParagraph(string(utils.RenderMarkdown(post.Text)), 3)
		content += fmt.Sprintf(`<p><a href="%s">Читать полностью и комментировать</a></p>`, link)

		b.WriteString(`    <item>
      <title>` + escapeXML(post.String()) + `</title>
      <link>` + link + `</link>
      <description><![CDATA[` + content + `]]></description>
      <author>` + escapeXML(post.User.Username) + `</author>
`)
		if post.Group != nil {
			b.WriteString(`      <category>` + escapeXML(post.Group.Title) + `</category>
`)
		}
		b.WriteString(`      <pubDate>` + post.CreatedAt.Format(time.RFC1123Z) + `</pubDate>
      <guid isPermaLink="true">` + link + `</guid>
    </item>
`)
	}
	b.WriteString(`  </channel>
</rss>`)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func escapeXML(s string) string {
	return html.EscapeString(s)
}

// truncateByParagraph 保留前几个完整块级元素
func truncateByParagraph(content string, maxBlocks int) string {
	matches := blockPattern.FindAllString(content, maxBlocks)
	if len(matches) == 0 {
		runes := []rune(tagPattern.ReplaceAllString(content, ""))
		if len(runes) > 300 {
			return string(runes[:300]) + "..."
		}
		return content
	}
	return strings.Join(matches, "\n")
}
