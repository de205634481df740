package facturatie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/config"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "testgeheim-van-minimaal-32-tekens!!"

func testApp(t *testing.T) (*fiber.App, *models.Workspace, string) {
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
	database.DB = db

	ws := models.Workspace{Naam: "Testadministratie"}
	if err := db.Create(&ws).Error; err != nil {
		t.Fatalf("workspace aanmaken: %v", err)
	}

	user := models.User{
		WorkspaceID:  &ws.ID,
		Naam:         "Test Boekhouder",
		Email:        "boekhouder@test.sr",
		PasswordHash: "x",
		Role:         models.RoleWorkspaceAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("gebruiker aanmaken: %v", err)
	}

	token, err := auth.GenerateToken(testJWTSecret, &user)
	if err != nil {
		t.Fatalf("token genereren: %v", err)
	}

	cfg := &config.Config{JWTSecret: testJWTSecret}
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Onverwachte serverfout"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	api := app.Group("/api", auth.JWTMiddleware(cfg))
	api.Get("/klanten/:id/openstaand", KlantOpenstaandHandler())
	api.Get("/facturen", ListFacturenHandler())
	api.Post("/facturen", CreateFactuurHandler())
	api.Get("/facturen/:id", GetFactuurHandler())
	api.Delete("/facturen/:id", DeleteFactuurHandler())
	api.Post("/facturen/:id/verzenden", VerzendFactuurHandler())
	api.Post("/betalingen", CreateBetalingHandler())
	api.Get("/betalingen", ListBetalingenHandler())
	api.Get("/facturatie/overzicht", MaandOverzichtHandler())

	return app, &ws, token
}

func doeRequest(t *testing.T, app *fiber.App, method, pad, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("request body encoden: %v", err)
		}
	}
	req := httptest.NewRequest(method, pad, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request uitvoeren: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, doel any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(doel); err != nil {
		t.Fatalf("response decoden: %v", err)
	}
}

func maakTestKlant(t *testing.T, workspaceID uint) *models.Klant {
	t.Helper()
	klant := models.Klant{WorkspaceID: workspaceID, Naam: "Handelsonderneming Waterkant"}
	if err := database.DB.Create(&klant).Error; err != nil {
		t.Fatalf("klant aanmaken: %v", err)
	}
	return &klant
}

func maakFactuur(t *testing.T, app *fiber.App, token string, klantID uint) FactuurResponse {
	t.Helper()
	resp := doeRequest(t, app, "POST", "/api/facturen", token, fiber.Map{
		"klant_id": klantID,
		"regels": []fiber.Map{
			{"omschrijving": "Rijst 5kg", "aantal": 10, "prijs": 50},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("factuur aanmaken: status %d", resp.StatusCode)
	}
	var factuur FactuurResponse
	decodeJSON(t, resp, &factuur)
	return factuur
}

func TestCreateFactuurBerekentTotalen(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)

	resp := doeRequest(t, app, "POST", "/api/facturen", token, fiber.Map{
		"klant_id": klant.ID,
		"regels": []fiber.Map{
			{"omschrijving": "Rijst 5kg", "aantal": 10, "prijs": 50},
			{"omschrijving": "Bezorging", "aantal": 1, "prijs": 25, "btw_percentage": 0},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, verwacht 201", resp.StatusCode)
	}

	var factuur FactuurResponse
	decodeJSON(t, resp, &factuur)
	if factuur.Status != "concept" {
		t.Errorf("status = %s, verwacht concept", factuur.Status)
	}
	if factuur.Subtotaal != 525 {
		t.Errorf("subtotaal = %.2f, verwacht 525.00", factuur.Subtotaal)
	}
	// alleen de rijstregel draagt BTW (standaard 10%)
	if factuur.BTWBedrag != 50 {
		t.Errorf("btw = %.2f, verwacht 50.00", factuur.BTWBedrag)
	}
	if factuur.Totaal != 575 {
		t.Errorf("totaal = %.2f, verwacht 575.00", factuur.Totaal)
	}
	if factuur.Factuurnummer == "" {
		t.Error("factuurnummer ontbreekt")
	}
}

func TestVerzendenBoektOmzetEnBTW(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)
	factuur := maakFactuur(t, app, token, klant.ID)

	resp := doeRequest(t, app, "POST",
		fmt.Sprintf("/api/facturen/%d/verzenden", factuur.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("verzenden: status = %d, verwacht 200", resp.StatusCode)
	}
	decodeJSON(t, resp, &factuur)
	if factuur.Status != "verzonden" {
		t.Errorf("status = %s, verwacht verzonden", factuur.Status)
	}

	var posten []models.Journaalpost
	database.DB.Where("workspace_id = ?", ws.ID).Order("id asc").Find(&posten)
	if len(posten) != 2 {
		t.Fatalf("journaalposten = %d, verwacht 2 (omzet + BTW)", len(posten))
	}
	omzet, btw := posten[0], posten[1]
	if omzet.DebetRekening != "1300" || omzet.CreditRekening != "8000" || omzet.Bedrag != 500 {
		t.Errorf("omzetboeking = %s/%s %.2f, verwacht 1300/8000 500.00",
			omzet.DebetRekening, omzet.CreditRekening, omzet.Bedrag)
	}
	if btw.DebetRekening != "1300" || btw.CreditRekening != "1820" || btw.Bedrag != 50 {
		t.Errorf("btw-boeking = %s/%s %.2f, verwacht 1300/1820 50.00",
			btw.DebetRekening, btw.CreditRekening, btw.Bedrag)
	}

	// tweede keer verzenden mag niet (zou dubbel boeken)
	resp = doeRequest(t, app, "POST",
		fmt.Sprintf("/api/facturen/%d/verzenden", factuur.ID), token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("tweede verzending: status = %d, verwacht 400", resp.StatusCode)
	}
}

func TestDeelbetalingenTotVolledigBetaald(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)
	factuur := maakFactuur(t, app, token, klant.ID)
	doeRequest(t, app, "POST", fmt.Sprintf("/api/facturen/%d/verzenden", factuur.ID), token, nil)

	// totaal 550 (500 + 10% BTW); eerste deelbetaling
	resp := doeRequest(t, app, "POST", "/api/betalingen", token, fiber.Map{
		"factuur_id": factuur.ID,
		"bedrag":     300,
		"wijze":      "bank",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("eerste betaling: status = %d, verwacht 201", resp.StatusCode)
	}
	var betaling BetalingResponse
	decodeJSON(t, resp, &betaling)
	if betaling.Kenmerk == "" {
		t.Error("betalingskenmerk ontbreekt")
	}

	var tussen models.Factuur
	database.DB.First(&tussen, factuur.ID)
	if tussen.Status != models.FactuurVerzonden {
		t.Errorf("status = %s, verwacht verzonden na deelbetaling", tussen.Status)
	}

	resp = doeRequest(t, app, "POST", "/api/betalingen", token, fiber.Map{
		"factuur_id": factuur.ID,
		"bedrag":     250,
		"wijze":      "contant",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("tweede betaling: status = %d, verwacht 201", resp.StatusCode)
	}

	var na models.Factuur
	database.DB.First(&na, factuur.ID)
	if na.Status != models.FactuurBetaald {
		t.Errorf("status = %s, verwacht betaald na volledige betaling", na.Status)
	}
}

func TestBetalingBovenOpenstaandWordtGeweigerd(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)
	factuur := maakFactuur(t, app, token, klant.ID)
	doeRequest(t, app, "POST", fmt.Sprintf("/api/facturen/%d/verzenden", factuur.ID), token, nil)

	resp := doeRequest(t, app, "POST", "/api/betalingen", token, fiber.Map{
		"factuur_id": factuur.ID,
		"bedrag":     600, // totaal is 550
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, verwacht 400 bij overbetaling", resp.StatusCode)
	}
}

func TestBetalingOpConceptfactuurWordtGeweigerd(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)
	factuur := maakFactuur(t, app, token, klant.ID)

	resp := doeRequest(t, app, "POST", "/api/betalingen", token, fiber.Map{
		"factuur_id": factuur.ID,
		"bedrag":     100,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, verwacht 400: concept kan niet worden betaald", resp.StatusCode)
	}
}

func TestOpenstaandPerKlant(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)

	// factuur 1: verzonden, deels betaald
	eerste := maakFactuur(t, app, token, klant.ID)
	doeRequest(t, app, "POST", fmt.Sprintf("/api/facturen/%d/verzenden", eerste.ID), token, nil)
	doeRequest(t, app, "POST", "/api/betalingen", token, fiber.Map{
		"factuur_id": eerste.ID, "bedrag": 150,
	})

	// factuur 2: concept, telt niet mee
	maakFactuur(t, app, token, klant.ID)

	resp := doeRequest(t, app, "GET",
		fmt.Sprintf("/api/klanten/%d/openstaand", klant.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, verwacht 200", resp.StatusCode)
	}

	var overzicht struct {
		KlantNaam  string  `json:"klant_naam"`
		Openstaand float64 `json:"openstaand"`
		Facturen   []struct {
			FactuurID  uint    `json:"factuur_id"`
			Betaald    float64 `json:"betaald"`
			Openstaand float64 `json:"openstaand"`
		} `json:"facturen"`
	}
	decodeJSON(t, resp, &overzicht)

	if len(overzicht.Facturen) != 1 {
		t.Fatalf("openstaande facturen = %d, verwacht 1 (concept telt niet mee)", len(overzicht.Facturen))
	}
	// totaal 550, 150 betaald
	if overzicht.Openstaand != 400 {
		t.Errorf("openstaand = %.2f, verwacht 400.00", overzicht.Openstaand)
	}
	if overzicht.Facturen[0].Betaald != 150 {
		t.Errorf("betaald = %.2f, verwacht 150.00", overzicht.Facturen[0].Betaald)
	}
}

func TestMaandOverzichtTeltAlleenVerzondenFacturen(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)

	verzonden := maakFactuur(t, app, token, klant.ID)
	doeRequest(t, app, "POST", fmt.Sprintf("/api/facturen/%d/verzenden", verzonden.ID), token, nil)
	maakFactuur(t, app, token, klant.ID) // blijft concept

	resp := doeRequest(t, app, "GET", "/api/facturatie/overzicht", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, verwacht 200", resp.StatusCode)
	}

	var overzicht struct {
		AantalFacturen int     `json:"aantal_facturen"`
		Omzet          float64 `json:"omzet"`
		BTW            float64 `json:"btw"`
	}
	decodeJSON(t, resp, &overzicht)
	if overzicht.AantalFacturen != 1 {
		t.Errorf("aantal facturen = %d, verwacht 1", overzicht.AantalFacturen)
	}
	if overzicht.Omzet != 500 || overzicht.BTW != 50 {
		t.Errorf("omzet/btw = %.2f/%.2f, verwacht 500.00/50.00", overzicht.Omzet, overzicht.BTW)
	}
}

func TestConceptfactuurVerwijderen(t *testing.T) {
	app, ws, token := testApp(t)
	klant := maakTestKlant(t, ws.ID)

	concept := maakFactuur(t, app, token, klant.ID)
	resp := doeRequest(t, app, "DELETE", fmt.Sprintf("/api/facturen/%d", concept.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("concept verwijderen: status = %d, verwacht 200", resp.StatusCode)
	}

	verzonden := maakFactuur(t, app, token, klant.ID)
	doeRequest(t, app, "POST", fmt.Sprintf("/api/facturen/%d/verzenden", verzonden.ID), token, nil)
	resp = doeRequest(t, app, "DELETE", fmt.Sprintf("/api/facturen/%d", verzonden.ID), token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("verzonden factuur verwijderen: status = %d, verwacht 400", resp.StatusCode)
	}
}
