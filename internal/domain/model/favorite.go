package model

import "time"

// お気に入り。user×refaccionで1件。
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_fav_user_part" json:"user_id"`
	PartID    int64     `gorm:"not null;uniqueIndex:idx_fav_user_part;column:refaccion_id" json:"refaccion_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string { return "favoritos" }
