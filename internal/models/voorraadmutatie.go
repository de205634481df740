package models

import "time"

type MutatieType string

const (
	MutatieVerkoop   MutatieType = "verkoop"   // uitlevering verkooporder (negatief)
	MutatieInkoop    MutatieType = "inkoop"    // goederenontvangst (positief)
	MutatieCorrectie MutatieType = "correctie" // handmatige voorraadcorrectie
)

// Voorraadmutatie: append-only auditregel van elke wijziging in de werkelijke
// voorraad. Reserveringen raken de werkelijke voorraad niet en komen hier dus
// niet in voor.
type Voorraadmutatie struct {
	ID             uint `gorm:"primaryKey"`
	WorkspaceID    uint `gorm:"index;not null"`
	ArtikelID      uint `gorm:"index;not null"`
	Artikel        Artikel
	Aantal         int         `gorm:"not null"` // delta, negatief bij uitlevering
	Type           MutatieType `gorm:"size:20;not null"`
	ReferentieType string      `gorm:"size:30"` // "verkooporder", "inkooporder"
	ReferentieID   uint        `gorm:"index"`
	Omschrijving   string      `gorm:"size:255"`
	Datum          time.Time   `gorm:"index;not null"`
	CreatedAt      time.Time
}
