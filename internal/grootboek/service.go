package grootboek

import (
	"fmt"
	"time"

	"facturatie-backend/internal/models"

	"gorm.io/gorm"
)

// Boeking: één debet/credit-paar dat als journaalpost wordt weggeschreven.
type Boeking struct {
	WorkspaceID    uint
	DebetRekening  string
	CreditRekening string
	Bedrag         float64
	Omschrijving   string
	ReferentieType string
	ReferentieID   uint
	Datum          time.Time
}

// Boek schrijft een journaalpost weg. Journaalposten zijn append-only;
// correcties lopen via een tegenboeking, nooit via update of delete.
func Boek(db *gorm.DB, b Boeking) error {
	if b.Bedrag <= 0 {
		return fmt.Errorf("boekingsbedrag moet positief zijn, kreeg %.2f", b.Bedrag)
	}
	if b.DebetRekening == "" || b.CreditRekening == "" {
		return fmt.Errorf("debet- en creditrekening zijn verplicht")
	}

	datum := b.Datum
	if datum.IsZero() {
		datum = time.Now()
	}

	post := models.Journaalpost{
		WorkspaceID:    b.WorkspaceID,
		DebetRekening:  b.DebetRekening,
		CreditRekening: b.CreditRekening,
		Bedrag:         b.Bedrag,
		Omschrijving:   b.Omschrijving,
		ReferentieType: b.ReferentieType,
		ReferentieID:   b.ReferentieID,
		Datum:          datum,
	}

	return db.Create(&post).Error
}

// InstellingenVoorWorkspace haalt het rekeningschema van een workspace op en
// maakt het met standaardcodes aan als het nog niet bestaat.
func InstellingenVoorWorkspace(db *gorm.DB, workspaceID uint) (*models.BoekhoudInstellingen, error) {
	var inst models.BoekhoudInstellingen
	err := db.Where("workspace_id = ?", workspaceID).First(&inst).Error
	if err == nil {
		return &inst, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	inst = models.BoekhoudInstellingen{
		WorkspaceID:         workspaceID,
		VoorraadRekening:    "3000",
		KostprijsRekening:   "7000",
		CrediteurenRekening: "1600",
		DebiteurenRekening:  "1300",
		OmzetRekening:       "8000",
		BTWRekening:         "1820",
	}
	if err := db.Create(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}
