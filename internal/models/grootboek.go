package models

import "time"

type RekeningType string

const (
	RekeningActiva      RekeningType = "activa"
	RekeningPassiva     RekeningType = "passiva"
	RekeningKosten      RekeningType = "kosten"
	RekeningOpbrengsten RekeningType = "opbrengsten"
)

type Grootboekrekening struct {
	ID          uint `gorm:"primaryKey"`
	WorkspaceID uint `gorm:"index;not null"`
	Workspace   Workspace
	Code        string       `gorm:"size:10;index;not null"`
	Naam        string       `gorm:"size:100;not null"`
	Type        RekeningType `gorm:"size:20;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Journaalpost: append-only debet/credit-paar. Wordt nooit gewijzigd of verwijderd.
type Journaalpost struct {
	ID             uint `gorm:"primaryKey"`
	WorkspaceID    uint `gorm:"index;not null"`
	DebetRekening  string  `gorm:"size:10;not null"`
	CreditRekening string  `gorm:"size:10;not null"`
	Bedrag         float64 `gorm:"not null"`
	Omschrijving   string  `gorm:"size:255"`
	ReferentieType string  `gorm:"size:30"` // "verkooporder", "inkooporder", "factuur"
	ReferentieID   uint    `gorm:"index"`
	Datum          time.Time `gorm:"index;not null"`
	CreatedAt      time.Time
}

// BoekhoudInstellingen: vast rekeningschema per workspace waarop de automatische
// journaalposten boeken. Bij eerste gebruik aangemaakt met standaardcodes.
type BoekhoudInstellingen struct {
	ID                  uint `gorm:"primaryKey"`
	WorkspaceID         uint `gorm:"uniqueIndex;not null"`
	VoorraadRekening    string `gorm:"size:10;not null;default:3000"` // voorraad handelsgoederen
	KostprijsRekening   string `gorm:"size:10;not null;default:7000"` // kostprijs van de omzet
	CrediteurenRekening string `gorm:"size:10;not null;default:1600"` // tussenrekening nog te ontvangen facturen
	DebiteurenRekening  string `gorm:"size:10;not null;default:1300"`
	OmzetRekening       string `gorm:"size:10;not null;default:8000"`
	BTWRekening         string `gorm:"size:10;not null;default:1820"` // af te dragen BTW
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
