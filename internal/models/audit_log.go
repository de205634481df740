package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Welke administratie?
	WorkspaceID *uint `json:"workspace_id"`

	// Welke gebruiker?
	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // gebruikersnaam (gedenormaliseerd)

	// Welke entiteit? (bijv. "artikel", "verkooporder", "betaling")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	// Actie: create/update/delete
	Action AuditAction `gorm:"size:20" json:"action"`

	// Korte samenvatting
	Description string `gorm:"size:255" json:"description"`

	// Vorige en nieuwe staat (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
