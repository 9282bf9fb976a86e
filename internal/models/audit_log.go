package models

// AuditLog records admin mutations and purchases.
type AuditLog struct {
	Base
	UserID       string `gorm:"size:36;not null;index" json:"userId"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resourceType"`
	ResourceID   string `gorm:"size:36" json:"resourceId"`
	IPAddress    string `json:"ipAddress"`
	Changes      string `json:"changes,omitempty"`
}
