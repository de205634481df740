package grootboek

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

func TestBoekValideertInvoer(t *testing.T) {
	db := newTestDB(t)

	gevallen := []struct {
		naam    string
		boeking Boeking
	}{
		{"bedrag nul", Boeking{WorkspaceID: 1, DebetRekening: "7000", CreditRekening: "3000", Bedrag: 0}},
		{"bedrag negatief", Boeking{WorkspaceID: 1, DebetRekening: "7000", CreditRekening: "3000", Bedrag: -10}},
		{"debet leeg", Boeking{WorkspaceID: 1, CreditRekening: "3000", Bedrag: 100}},
		{"credit leeg", Boeking{WorkspaceID: 1, DebetRekening: "7000", Bedrag: 100}},
	}

	for _, geval := range gevallen {
		if err := Boek(db, geval.boeking); err == nil {
			t.Errorf("%s: verwachtte een fout", geval.naam)
		}
	}

	var n int64
	db.Model(&models.Journaalpost{}).Count(&n)
	if n != 0 {
		t.Errorf("journaalposten = %d, verwacht 0 na alleen ongeldige boekingen", n)
	}
}

func TestBoekSchrijftJournaalpost(t *testing.T) {
	db := newTestDB(t)

	datum := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	err := Boek(db, Boeking{
		WorkspaceID:    7,
		DebetRekening:  "1300",
		CreditRekening: "8000",
		Bedrag:         250.50,
		Omschrijving:   "Omzet factuur F-2026-0001",
		ReferentieType: "factuur",
		ReferentieID:   12,
		Datum:          datum,
	})
	if err != nil {
		t.Fatalf("boeken mislukt: %v", err)
	}

	var post models.Journaalpost
	if err := db.First(&post).Error; err != nil {
		t.Fatalf("journaalpost ophalen: %v", err)
	}
	if post.WorkspaceID != 7 || post.Bedrag != 250.50 {
		t.Errorf("post = workspace %d, bedrag %.2f, verwacht 7 en 250.50", post.WorkspaceID, post.Bedrag)
	}
	if post.DebetRekening != "1300" || post.CreditRekening != "8000" {
		t.Errorf("post = %s/%s, verwacht 1300/8000", post.DebetRekening, post.CreditRekening)
	}
	if !post.Datum.Equal(datum) {
		t.Errorf("datum = %v, verwacht %v", post.Datum, datum)
	}
}

func TestBoekZonderDatumGebruiktNu(t *testing.T) {
	db := newTestDB(t)

	voor := time.Now().Add(-time.Second)
	if err := Boek(db, Boeking{
		WorkspaceID:    1,
		DebetRekening:  "3000",
		CreditRekening: "1600",
		Bedrag:         99,
	}); err != nil {
		t.Fatalf("boeken mislukt: %v", err)
	}

	var post models.Journaalpost
	db.First(&post)
	if post.Datum.Before(voor) {
		t.Errorf("datum = %v, verwacht rond het huidige moment", post.Datum)
	}
}

func TestInstellingenWordenAangemaaktMetStandaardcodes(t *testing.T) {
	db := newTestDB(t)

	inst, err := InstellingenVoorWorkspace(db, 42)
	if err != nil {
		t.Fatalf("instellingen ophalen: %v", err)
	}

	if inst.VoorraadRekening != "3000" {
		t.Errorf("voorraadrekening = %s, verwacht 3000", inst.VoorraadRekening)
	}
	if inst.KostprijsRekening != "7000" {
		t.Errorf("kostprijsrekening = %s, verwacht 7000", inst.KostprijsRekening)
	}
	if inst.CrediteurenRekening != "1600" {
		t.Errorf("crediteurenrekening = %s, verwacht 1600", inst.CrediteurenRekening)
	}
	if inst.DebiteurenRekening != "1300" {
		t.Errorf("debiteurenrekening = %s, verwacht 1300", inst.DebiteurenRekening)
	}
	if inst.OmzetRekening != "8000" {
		t.Errorf("omzetrekening = %s, verwacht 8000", inst.OmzetRekening)
	}
	if inst.BTWRekening != "1820" {
		t.Errorf("btw-rekening = %s, verwacht 1820", inst.BTWRekening)
	}
}

func TestInstellingenZijnStabielPerWorkspace(t *testing.T) {
	db := newTestDB(t)

	eerste, err := InstellingenVoorWorkspace(db, 5)
	if err != nil {
		t.Fatalf("eerste aanroep: %v", err)
	}

	db.Model(eerste).Update("omzet_rekening", "8100")

	tweede, err := InstellingenVoorWorkspace(db, 5)
	if err != nil {
		t.Fatalf("tweede aanroep: %v", err)
	}
	if tweede.ID != eerste.ID {
		t.Errorf("tweede aanroep maakte een nieuw record (id %d vs %d)", tweede.ID, eerste.ID)
	}
	if tweede.OmzetRekening != "8100" {
		t.Errorf("omzetrekening = %s, verwacht de aangepaste 8100", tweede.OmzetRekening)
	}

	var n int64
	db.Model(&models.BoekhoudInstellingen{}).Where("workspace_id = ?", 5).Count(&n)
	if n != 1 {
		t.Errorf("instellingenrecords = %d, verwacht 1", n)
	}
}
