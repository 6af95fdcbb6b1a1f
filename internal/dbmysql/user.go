package dbmysql

import (
	"time"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36;column:id" json:"id"`
	Name         string     `gorm:"size:50;uniqueIndex;column:name" json:"name"`
	PasswordHash string     `gorm:"size:100;column:password_hash" json:"-"`
	Role         string     `gorm:"size:20;default:user;column:role" json:"role"`
	Team         string     `gorm:"size:50;column:team" json:"team"`
	IsVerified   bool       `gorm:"default:false;column:is_verified" json:"is_verified"`
	LastPostTime *time.Time `gorm:"column:last_post_time" json:"last_post_time,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
