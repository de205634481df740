package models

import "time"

// Workspace: een administratie (tenant). Alle domeinrecords dragen een WorkspaceID.
type Workspace struct {
	ID        uint   `gorm:"primaryKey"`
	Naam      string `gorm:"size:100;not null;unique"`
	Adres     string `gorm:"size:255"`
	Telefoon  string `gorm:"size:50"` // Optioneel telefoonnummer
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User
}
