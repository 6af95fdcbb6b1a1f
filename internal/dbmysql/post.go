package dbmysql

import (
	"time"
)

// Post is a single wall entry. The primary key is the client-generated
// uuid: the server stores it verbatim so the synchronizer's dedup-by-id
// recognizes its own optimistic posts when they come back from a poll.
type Post struct {
	ID            string    `gorm:"primaryKey;size:36;column:id" json:"id"`
	Content       string    `gorm:"type:text;column:content" json:"content"`
	Type          string    `gorm:"size:20;column:type" json:"type"`
	Tag           string    `gorm:"size:50;column:tag" json:"tag"`
	FileURL       *string   `gorm:"size:500;column:file_url" json:"file_url,omitempty"`
	MediaType     *string   `gorm:"size:10;column:media_type" json:"media_type,omitempty"`
	Timestamp     int64     `gorm:"index;column:timestamp" json:"timestamp"`
	LikesCount    int64     `gorm:"default:0;column:likes_count" json:"likes_count"`
	ThumbsUpCount int64     `gorm:"default:0;column:thumbs_up_count" json:"thumbs_up_count"`
	UserID        string    `gorm:"size:36;index;column:user_id" json:"user_id"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
