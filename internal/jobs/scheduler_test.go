package jobs

import (
	"path/filepath"
	"testing"
	"time"

	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testdatabase openen: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("testdatabase migreren: %v", err)
	}
	return db
}

func maakFactuur(t *testing.T, db *gorm.DB, status models.FactuurStatus, vervaldatum time.Time) *models.Factuur {
	t.Helper()

	ws := models.Workspace{Naam: "ws-" + string(status) + vervaldatum.Format("20060102150405.000")}
	if err := db.Create(&ws).Error; err != nil {
		t.Fatalf("workspace aanmaken: %v", err)
	}
	klant := models.Klant{WorkspaceID: ws.ID, Naam: "Klant"}
	if err := db.Create(&klant).Error; err != nil {
		t.Fatalf("klant aanmaken: %v", err)
	}

	factuur := models.Factuur{
		WorkspaceID:   ws.ID,
		Factuurnummer: "F-TEST",
		KlantID:       klant.ID,
		Datum:         vervaldatum.AddDate(0, 0, -30),
		Vervaldatum:   vervaldatum,
		Status:        status,
		Subtotaal:     100,
		BTWBedrag:     10,
		Totaal:        110,
	}
	if err := db.Create(&factuur).Error; err != nil {
		t.Fatalf("factuur aanmaken: %v", err)
	}
	return &factuur
}

func TestMarkeerVervallenFacturen(t *testing.T) {
	db := newTestDB(t)

	gisteren := time.Now().AddDate(0, 0, -1)
	morgen := time.Now().AddDate(0, 0, 1)

	verlopen := maakFactuur(t, db, models.FactuurVerzonden, gisteren)
	nogNiet := maakFactuur(t, db, models.FactuurVerzonden, morgen)
	concept := maakFactuur(t, db, models.FactuurConcept, gisteren)
	betaald := maakFactuur(t, db, models.FactuurBetaald, gisteren)

	aantal, err := MarkeerVervallenFacturen(db)
	if err != nil {
		t.Fatalf("markeren mislukt: %v", err)
	}
	if aantal != 1 {
		t.Errorf("gemarkeerd = %d, verwacht 1", aantal)
	}

	controleer := func(id uint, verwacht models.FactuurStatus) {
		t.Helper()
		var f models.Factuur
		db.First(&f, id)
		if f.Status != verwacht {
			t.Errorf("factuur %d: status = %s, verwacht %s", id, f.Status, verwacht)
		}
	}
	controleer(verlopen.ID, models.FactuurVervallen)
	controleer(nogNiet.ID, models.FactuurVerzonden)
	controleer(concept.ID, models.FactuurConcept)
	controleer(betaald.ID, models.FactuurBetaald)
}

func TestMarkeerVervallenFacturenIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	maakFactuur(t, db, models.FactuurVerzonden, time.Now().AddDate(0, 0, -5))

	if _, err := MarkeerVervallenFacturen(db); err != nil {
		t.Fatalf("eerste run: %v", err)
	}
	aantal, err := MarkeerVervallenFacturen(db)
	if err != nil {
		t.Fatalf("tweede run: %v", err)
	}
	if aantal != 0 {
		t.Errorf("tweede run markeerde %d facturen, verwacht 0", aantal)
	}
}
