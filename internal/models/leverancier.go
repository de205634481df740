package models

import "time"

type Leverancier struct {
	ID          uint `gorm:"primaryKey"`
	WorkspaceID uint `gorm:"index;not null"`
	Workspace   Workspace
	Naam        string `gorm:"size:100;not null"`
	Email       string `gorm:"size:100"`
	Adres       string `gorm:"size:255"`
	Telefoon    string `gorm:"size:50"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
