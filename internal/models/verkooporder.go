package models

import "time"

// OrderStatus: gesloten set statussen voor verkooporders. Overgangen lopen
// uitsluitend via de overgangstabel in internal/voorraad; losse stringvergelijkingen
// in handlers zijn niet toegestaan.
type OrderStatus string

const (
	StatusConcept     OrderStatus = "concept"
	StatusBevestigd   OrderStatus = "bevestigd"
	StatusGeleverd    OrderStatus = "geleverd"    // terminaal
	StatusGeannuleerd OrderStatus = "geannuleerd" // terminaal
)

// Terminaal: vanaf een terminale status is geen enkele overgang meer toegestaan.
func (s OrderStatus) Terminaal() bool {
	return s == StatusGeleverd || s == StatusGeannuleerd
}

type Verkooporder struct {
	ID          uint `gorm:"primaryKey"`
	WorkspaceID uint `gorm:"index;not null"`
	Workspace   Workspace
	Ordernummer string `gorm:"size:50;index;not null"`
	KlantID     uint   `gorm:"index;not null"`
	Klant       Klant
	Datum       time.Time   `gorm:"index;not null"`
	Status      OrderStatus `gorm:"size:20;not null;default:concept"`
	Opmerking   string      `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Regels []VerkooporderRegel `gorm:"foreignKey:VerkooporderID;constraint:OnDelete:CASCADE"`
}

type VerkooporderRegel struct {
	ID             uint `gorm:"primaryKey"`
	VerkooporderID uint `gorm:"index;not null"`
	ArtikelID      uint `gorm:"index;not null"`
	Artikel        Artikel
	Aantal         int     `gorm:"not null"`
	Prijs          float64 `gorm:"not null"` // verkoopprijs per eenheid op ordermoment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
