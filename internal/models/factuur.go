package models

import "time"

type FactuurStatus string

const (
	FactuurConcept   FactuurStatus = "concept"
	FactuurVerzonden FactuurStatus = "verzonden"
	FactuurBetaald   FactuurStatus = "betaald"
	FactuurVervallen FactuurStatus = "vervallen" // vervaldatum verstreken zonder volledige betaling
)

type Factuur struct {
	ID            uint `gorm:"primaryKey"`
	WorkspaceID   uint `gorm:"index;not null"`
	Workspace     Workspace
	Factuurnummer string `gorm:"size:50;index;not null"`
	KlantID       uint   `gorm:"index;not null"`
	Klant         Klant
	Datum         time.Time     `gorm:"index;not null"`
	Vervaldatum   time.Time     `gorm:"index;not null"`
	Status        FactuurStatus `gorm:"size:20;not null;default:concept"`
	Subtotaal     float64       `gorm:"not null;default:0"` // excl. BTW
	BTWBedrag     float64       `gorm:"not null;default:0"`
	Totaal        float64       `gorm:"not null;default:0"` // incl. BTW
	Opmerking     string        `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Regels []FactuurRegel `gorm:"foreignKey:FactuurID;constraint:OnDelete:CASCADE"`
}

type FactuurRegel struct {
	ID            uint `gorm:"primaryKey"`
	FactuurID     uint `gorm:"index;not null"`
	Omschrijving  string  `gorm:"size:255;not null"`
	Aantal        int     `gorm:"not null"`
	Prijs         float64 `gorm:"not null"` // per eenheid, excl. BTW
	BTWPercentage float64 `gorm:"not null;default:10"`
	Totaal        float64 `gorm:"not null"` // Aantal * Prijs, excl. BTW
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Betaling: (deel)betaling op een factuur. Meerdere betalingen per factuur toegestaan.
type Betaling struct {
	ID          uint `gorm:"primaryKey"`
	WorkspaceID uint `gorm:"index;not null"`
	FactuurID   uint `gorm:"index;not null"`
	Factuur     Factuur
	Bedrag      float64   `gorm:"not null"`
	Datum       time.Time `gorm:"index;not null"`
	Wijze       string    `gorm:"size:20;not null"`       // "bank", "contant"
	Kenmerk     string    `gorm:"size:64;uniqueIndex"` // betalingskenmerk
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
