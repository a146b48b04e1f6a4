package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MaxImageSize caps uploaded post images.
const MaxImageSize = 5 * 1024 * 1024

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PostForm 发帖/编辑表单
type PostForm struct {
	Text    string  `json:"text"`
	GroupID *uint   `json:"group"`
	Image   *Upload `json:"image"`
}

func (f *PostForm) Validate() error {
	f.Text = strings.TrimSpace(f.Text)
	return validation.ValidateStruct(f,
		validation.Field(&f.Text, validation.Required.Error("Обязательное поле.")),
		validation.Field(&f.Image, validation.By(validImage)),
	)
}

// validImage accepts gif, jpeg and png payloads that decode cleanly.
func validImage(value interface{}) error {
	upload, _ := value.(*Upload)
	if upload == nil {
		return nil
	}
	if len(upload.Data) == 0 {
		return validation.NewError("validation_image_empty", "Отправленный файл пуст.")
	}
	if len(upload.Data) > MaxImageSize {
		return validation.NewError("validation_image_too_large", fmt.Sprintf("Размер файла не должен превышать %d МБ.", MaxImageSize/(1024*1024)))
	}
	if _, err := imageFormat(upload.Data); err != nil {
		return validation.NewError("validation_image_invalid", "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением.")
	}
	return nil
}

// imageFormat sniffs the decoded format ("gif", "jpeg" or "png"). The client's
// filename and content type never decide how an image is stored or served.
func imageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if _, ok := imageExtensions[format]; !ok {
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	return format, nil
}

// CommentForm 评论表单
type CommentForm struct {
	Text string `json:"text"`
}

func (f *CommentForm) Validate() error {
	f.Text = strings.TrimSpace(f.Text)
	return validation.ValidateStruct(f,
		validation.Field(&f.Text, validation.Required.Error("Обязательное поле.")),
	)
}

type GroupForm struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (f *GroupForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&f.Slug,
			validation.Required,
			validation.RuneLength(1, 200),
			validation.Match(slugPattern).Error("slug may contain only letters, digits, hyphens and underscores"),
		),
	)
}

type SignupForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

func (f *SignupForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return validation.ValidateStruct(f,
		validation.Field(&f.Username,
			validation.Required,
			validation.RuneLength(1, 150),
			validation.Match(usernamePattern).Error("letters, digits and @/./+/-/_ only"),
		),
		validation.Field(&f.Email, is.EmailFormat),
		validation.Field(&f.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&f.Password2,
			validation.Required,
			validation.In(f.Password).Error("passwords do not match"),
		),
	)
}
