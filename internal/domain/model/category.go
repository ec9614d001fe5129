package model

// 部品カテゴリ（categoría）
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null;column:nombre" json:"nombre"`
	Description string `gorm:"type:text;column:descripcion" json:"descripcion"`
}

func (Category) TableName() string { return "categorias" }
