package model

// 部品メーカー（marca）
type Brand struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(100);uniqueIndex;not null;column:nombre" json:"nombre"`
	Country string `gorm:"type:varchar(100);column:pais_origen" json:"pais_origen"`
}

func (Brand) TableName() string { return "marcas" }
