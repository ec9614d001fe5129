package model

import "time"

// 管理者操作の種類。
type AuditAction string

const (
	AuditActionCreatePart        AuditAction = "CREATE_PART"
	AuditActionUpdatePart        AuditAction = "UPDATE_PART"
	AuditActionDeletePart        AuditAction = "DELETE_PART"
	AuditActionUpdateStock       AuditAction = "UPDATE_STOCK"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionCreateSale        AuditAction = "CREATE_SALE"
	AuditActionCreateReturn      AuditAction = "CREATE_RETURN"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourcePart     AuditResourceType = "refaccion"
	AuditResourceBrand    AuditResourceType = "marca"
	AuditResourceCategory AuditResourceType = "categoria"
	AuditResourceSupplier AuditResourceType = "proveedor"
	AuditResourceOrder    AuditResourceType = "pedido"
	AuditResourceSale     AuditResourceType = "venta"
	AuditResourceUser     AuditResourceType = "user"
	AuditResourceBlog     AuditResourceType = "blog"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminUserID  int64             `gorm:"not null;index" json:"admin_user_id"`
	Action       AuditAction       `gorm:"type:varchar(40);not null" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(20);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	Detail       string            `gorm:"type:text" json:"detail"`
	CreatedAt    time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
}
