package model

// 仕入先（proveedor）
type Supplier struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(200);not null;column:nombre" json:"nombre"`
	Contact string `gorm:"type:varchar(100);column:contacto" json:"contacto"`
	Phone   string `gorm:"type:varchar(20);column:telefono" json:"telefono"`
	Email   string `gorm:"type:varchar(254);uniqueIndex;not null;column:correo_electronico" json:"correo_electronico"`
	Address string `gorm:"type:text;column:direccion" json:"direccion"`
}

func (Supplier) TableName() string { return "proveedores" }
