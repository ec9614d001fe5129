package model

import "time"

// ブログ記事。カテゴリは修理ガイドの対象機器。
type BlogPost struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	Slug        string    `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Category    string    `gorm:"type:varchar(50)" json:"category"`
	Date        time.Time `gorm:"not null;autoCreateTime" json:"date"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

func (BlogPost) TableName() string { return "blog_posts" }
