package models

import "time"

type InkooporderStatus string

const (
	InkoopStatusConcept     InkooporderStatus = "concept"
	InkoopStatusBevestigd   InkooporderStatus = "bevestigd"
	InkoopStatusOntvangen   InkooporderStatus = "ontvangen"   // volledig binnengekomen
	InkoopStatusGeannuleerd InkooporderStatus = "geannuleerd"
)

type Inkooporder struct {
	ID            uint `gorm:"primaryKey"`
	WorkspaceID   uint `gorm:"index;not null"`
	Workspace     Workspace
	Ordernummer   string `gorm:"size:50;index;not null"`
	LeverancierID uint   `gorm:"index;not null"`
	Leverancier   Leverancier
	Datum         time.Time         `gorm:"index;not null"`
	Status        InkooporderStatus `gorm:"size:20;not null;default:concept"`
	Opmerking     string            `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Regels []InkooporderRegel `gorm:"foreignKey:InkooporderID;constraint:OnDelete:CASCADE"`
}

type InkooporderRegel struct {
	ID            uint `gorm:"primaryKey"`
	InkooporderID uint `gorm:"index;not null"`
	ArtikelID     uint `gorm:"index;not null"`
	Artikel       Artikel
	Besteld       int     `gorm:"not null"`           // besteld aantal
	Ontvangen     int     `gorm:"not null;default:0"` // tot nu toe ontvangen (kan afwijken van besteld)
	Inkoopprijs   float64 `gorm:"not null"`           // kostprijs per eenheid op ordermoment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Goederenontvangst: binnengekomen levering op een bevestigde inkooporder.
// De werkelijke (niet de bestelde) aantallen worden geregistreerd.
type Goederenontvangst struct {
	ID            uint `gorm:"primaryKey"`
	WorkspaceID   uint `gorm:"index;not null"`
	InkooporderID uint `gorm:"index;not null"`
	Inkooporder   Inkooporder
	Datum         time.Time `gorm:"index;not null"`
	Opmerking     string    `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Regels []GoederenontvangstRegel `gorm:"foreignKey:GoederenontvangstID;constraint:OnDelete:CASCADE"`
}

type GoederenontvangstRegel struct {
	ID                  uint `gorm:"primaryKey"`
	GoederenontvangstID uint `gorm:"index;not null"`
	ArtikelID           uint `gorm:"index;not null"`
	Artikel             Artikel
	Aantal              int     `gorm:"not null"` // werkelijk ontvangen aantal
	Inkoopprijs         float64 `gorm:"not null"` // kostprijs per eenheid van de orderregel
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
