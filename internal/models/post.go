package models

import (
	"time"
)

// PostSummaryLength is the number of runes Post.String keeps.
var PostSummaryLength = 15

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_posts_created_at,sort:desc" json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	GroupID   *uint     `gorm:"index" json:"group_id"` // 分组被删除时置空
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image     string    `gorm:"size:255" json:"image"` // storage key, "" when no image
}

func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > PostSummaryLength {
		return string(runes[:PostSummaryLength])
	}
	return p.Text
}

// HasImage reports whether an uploaded image is attached.
func (p Post) HasImage() bool {
	return p.Image != ""
}
