package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// refacción（部品）の状態
type PartCondition string

const (
	PartConditionNew           PartCondition = "NVO" // Nuevo
	PartConditionUsedGood      PartCondition = "UBS" // Usado - Buen Estado
	PartConditionReconditioned PartCondition = "REC" // Reacondicionado
)

// 部品（refacción）。storefrontのwire互換のためJSONキーはスペイン語。
type Part struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartCode      string          `gorm:"type:varchar(50);uniqueIndex;not null;column:codigo_parte" json:"codigo_parte"`
	Name          string          `gorm:"type:varchar(200);not null;column:nombre" json:"nombre"`
	Description   string          `gorm:"type:text;column:descripcion" json:"descripcion"`
	BrandID       int64           `gorm:"not null;index;column:marca_id" json:"marca_id"`
	CategoryID    int64           `gorm:"not null;index;column:categoria_id" json:"categoria_id"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;column:precio" json:"precio"`
	Stock         int64           `gorm:"not null;default:0;column:existencias" json:"existencias"`
	Condition     PartCondition   `gorm:"type:varchar(3);not null;default:'NVO';column:estado" json:"estado"`
	Compatibility string          `gorm:"type:text;column:compatibilidad" json:"compatibilidad"`
	Image         string          `gorm:"type:varchar(500);column:imagen" json:"imagen"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"fecha_ingreso"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"ultima_actualizacion"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Part) TableName() string { return "refacciones" }
