package models

import "time"

// Artikel: voorraadhoudend artikel. Gereserveerd telt de aantallen van bevestigde
// maar nog niet geleverde verkooporders; Gereserveerd mag Voorraad nooit overstijgen.
type Artikel struct {
	ID            uint `gorm:"primaryKey"`
	WorkspaceID   uint `gorm:"index;not null"`
	Workspace     Workspace
	Naam          string  `gorm:"size:100;not null"`
	Artikelcode   string  `gorm:"size:50;index"`      // optionele code (SKU)
	Eenheid       string  `gorm:"size:20;not null"`   // stuks, kg, liter enz.
	Voorraad      int     `gorm:"not null;default:0"` // werkelijke voorraad
	Gereserveerd  int     `gorm:"not null;default:0"` // vastgelegd door bevestigde orders
	Inkoopprijs   float64 `gorm:"not null;default:0"` // kostprijs per eenheid
	Verkoopprijs  float64 `gorm:"not null;default:0"`
	BTWPercentage float64 `gorm:"not null;default:10"` // Suriname BTW-tarief
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Beschikbaar: vrij leverbare voorraad (voorraad minus reserveringen).
func (a *Artikel) Beschikbaar() int {
	return a.Voorraad - a.Gereserveerd
}
