package router

import (
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"time"
	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// Views lists every page template by the name handlers render it under.
var Views = []string{
	"posts/index.html",
	"posts/group_list.html",
	"posts/groups.html",
	"posts/profile.html",
	"posts/post_detail.html",
	"posts/create_post.html",
	"posts/follow.html",
	"users/login.html",
	"users/signup.html",
	"about/author.html",
	"about/tech.html",
	"core/403.html",
	"core/404.html",
	"core/500.html",
}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"date": func(t time.Time) string {
			return t.Format("02.01.2006")
		},
		"markdown": func(s string) template.HTML {
			return utils.RenderMarkdown(s)
		},
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
	}
}

// LoadTemplates 每个页面 = layouts + includes + 视图本身
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found in %s", templatesDir)
	}
	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		return nil, err
	}

	funcMap := FuncMap()
	for _, view := range Views {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, filepath.Join(templatesDir, "views", view))
		r.AddFromFilesFuncs(view, funcMap, files...)
	}
	return r, nil
}
