package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
	"yatube/internal/cache"
	"yatube/internal/db/dbtest"
	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "Pass12345!"

// 1x2 pixel gif
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

// viewRecorder stands in for the html renderer: it remembers the last view
// and its context, and writes the context as JSON so bodies stay comparable.
type viewRecorder struct {
	mu   sync.Mutex
	name string
	data gin.H
}

func (v *viewRecorder) Instance(name string, data any) render.Render {
	h, _ := data.(gin.H)
	v.mu.Lock()
	v.name, v.data = name, h
	v.mu.Unlock()

	body, err := json.Marshal(h)
	if err != nil {
		body = []byte(err.Error())
	}
	return render.Data{ContentType: "text/html; charset=utf-8", Data: append([]byte(name+"\n"), body...)}
}

func (v *viewRecorder) last() (string, gin.H) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.name, v.data
}

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
	views  *viewRecorder
	cache  *cache.MemoryStore
	users  *services.UserService
	posts  *services.PostService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, nil)
}

// newTestAppWith lets a test adjust Deps before the engine is built.
func newTestAppWith(t *testing.T, configure func(*Deps)) *testApp {
	t.Helper()
	gdb := dbtest.New(t)
	store, err := cache.NewMemoryStore(100)
	require.NoError(t, err)
	storage, err := services.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	views := &viewRecorder{}
	deps := Deps{
		DB:            gdb,
		Cache:         store,
		CacheTTL:      time.Minute,
		Storage:       storage,
		PageSize:      10,
		SessionSecret: "test-secret",
		SiteURL:       "https://yatube.test",
		Templates:     views,
	}
	if configure != nil {
		configure(&deps)
	}
	engine := New(deps)
	return &testApp{
		t:      t,
		db:     gdb,
		engine: engine,
		views:  views,
		cache:  store,
		users:  services.NewUserService(gdb),
		posts:  services.NewPostService(gdb, storage, 10),
	}
}

func (a *testApp) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return a.serve(httptest.NewRequest(http.MethodGet, target, nil), cookies)
}

func (a *testApp) postForm(target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.serve(req, cookies)
}

// postMultipart sends fields plus an optional image part.
func (a *testApp) postMultipart(target string, fields map[string]string, filename string, image []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(a.t, err)
		_, err = part.Write(image)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.serve(req, cookies)
}

func (a *testApp) user(username string) *models.User {
	a.t.Helper()
	u, err := a.users.Register(a.t.Context(), services.SignupForm{
		Username:  username,
		Password:  testPassword,
		Password2: testPassword,
	})
	require.NoError(a.t, err)
	return u
}

func (a *testApp) staff(username string) *models.User {
	a.t.Helper()
	u := a.user(username)
	require.NoError(a.t, a.db.Model(u).Update("is_staff", true).Error)
	return u
}

// login signs in through the real form and returns the session cookies.
func (a *testApp) login(u *models.User) []*http.Cookie {
	a.t.Helper()
	w := a.postForm("/auth/login/", url.Values{"username": {u.Username}, "password": {testPassword}}, nil)
	require.Equal(a.t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(a.t, cookies)
	return cookies
}

func (a *testApp) group(title, slug string) *models.Group {
	a.t.Helper()
	g := models.Group{Title: title, Slug: slug, Description: "Тестовое описание"}
	require.NoError(a.t, a.db.Create(&g).Error)
	return &g
}

func (a *testApp) post(author *models.User, text string, group *models.Group) *models.Post {
	a.t.Helper()
	form := services.PostForm{Text: text}
	if group != nil {
		form.GroupID = &group.ID
	}
	p, err := a.posts.Create(a.t.Context(), author, form)
	require.NoError(a.t, err)
	return p
}

func (a *testApp) countPosts() int64 {
	var n int64
	require.NoError(a.t, a.db.Model(&models.Post{}).Count(&n).Error)
	return n
}
