package services

import (
	"testing"
	"yatube/internal/db/dbtest"
	"yatube/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 1x2 pixel gif
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

type fixture struct {
	db      *gorm.DB
	posts   *PostService
	follows *FollowService
	groups  *GroupService
	users   *UserService
	storage *LocalStorage
}

func newFixture(t *testing.T, perPage int) *fixture {
	t.Helper()
	gdb := dbtest.New(t)
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return &fixture{
		db:      gdb,
		posts:   NewPostService(gdb, storage, perPage),
		follows: NewFollowService(gdb),
		groups:  NewGroupService(gdb),
		users:   NewUserService(gdb),
		storage: storage,
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := models.User{Username: username, Password: "x"}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func (f *fixture) group(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	g := models.Group{Title: title, Slug: slug, Description: "Блог о " + title}
	require.NoError(t, f.db.Create(&g).Error)
	return &g
}

func (f *fixture) post(t *testing.T, author *models.User, text string, group *models.Group) *models.Post {
	t.Helper()
	form := PostForm{Text: text}
	if group != nil {
		form.GroupID = &group.ID
	}
	p, err := f.posts.Create(t.Context(), author, form)
	require.NoError(t, err)
	return p
}
