package verkoop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

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

// testApp zet een complete teststack op: sqlite-database achter de globale
// database.DB, een ingelogde medewerker en de verkooproutes.
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
		Naam:         "Test Medewerker",
		Email:        "medewerker@test.sr",
		PasswordHash: "x",
		Role:         models.RoleMedewerker,
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
	api.Post("/verkoop/orders", CreateOrderHandler())
	api.Get("/verkoop/orders", ListOrdersHandler())
	api.Get("/verkoop/orders/:id", GetOrderHandler())
	api.Put("/verkoop/orders/:id/status", UpdateOrderStatusHandler())
	api.Delete("/verkoop/orders/:id", DeleteOrderHandler())

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

func maakTestKlantEnArtikel(t *testing.T, workspaceID uint, voorraad int) (*models.Klant, *models.Artikel) {
	t.Helper()
	klant := models.Klant{WorkspaceID: workspaceID, Naam: "Klant Paramaribo"}
	if err := database.DB.Create(&klant).Error; err != nil {
		t.Fatalf("klant aanmaken: %v", err)
	}
	artikel := models.Artikel{
		WorkspaceID:  workspaceID,
		Naam:         "Roti pakket",
		Eenheid:      "stuks",
		Voorraad:     voorraad,
		Verkoopprijs: 45,
	}
	if err := database.DB.Create(&artikel).Error; err != nil {
		t.Fatalf("artikel aanmaken: %v", err)
	}
	return &klant, &artikel
}

func TestRoutesVereisenToken(t *testing.T) {
	app, _, _ := testApp(t)

	resp := doeRequest(t, app, "GET", "/api/verkoop/orders", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, verwacht 401 zonder token", resp.StatusCode)
	}
}

func TestCreateOrderMaaktConcept(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 50)

	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels": []fiber.Map{
			{"artikel_id": artikel.ID, "aantal": 3},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, verwacht 201", resp.StatusCode)
	}

	var order OrderResponse
	decodeJSON(t, resp, &order)
	if order.Status != "concept" {
		t.Errorf("status = %s, verwacht concept", order.Status)
	}
	if order.Totaal != 135 {
		t.Errorf("totaal = %.2f, verwacht 135.00 (3 x verkoopprijs 45)", order.Totaal)
	}
	if len(order.Regels) != 1 || order.Regels[0].Prijs != 45 {
		t.Errorf("regelprijs niet overgenomen van artikel: %+v", order.Regels)
	}

	// concept reserveert niets
	var na models.Artikel
	database.DB.First(&na, artikel.ID)
	if na.Gereserveerd != 0 {
		t.Errorf("gereserveerd = %d, verwacht 0 voor een conceptorder", na.Gereserveerd)
	}
}

func TestStatusEndpointVoertOvergangUit(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 50)

	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 10}},
	})
	var order OrderResponse
	decodeJSON(t, resp, &order)

	resp = doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=bevestigd", order.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("bevestigen: status = %d, verwacht 200", resp.StatusCode)
	}
	decodeJSON(t, resp, &order)
	if order.Status != "bevestigd" {
		t.Errorf("orderstatus = %s, verwacht bevestigd", order.Status)
	}

	var na models.Artikel
	database.DB.First(&na, artikel.ID)
	if na.Gereserveerd != 10 || na.Voorraad != 50 {
		t.Errorf("artikel = voorraad %d, gereserveerd %d, verwacht 50/10", na.Voorraad, na.Gereserveerd)
	}

	resp = doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=geleverd", order.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("leveren: status = %d, verwacht 200", resp.StatusCode)
	}

	database.DB.First(&na, artikel.ID)
	if na.Voorraad != 40 || na.Gereserveerd != 0 {
		t.Errorf("na levering voorraad/gereserveerd = %d/%d, verwacht 40/0", na.Voorraad, na.Gereserveerd)
	}
}

func TestStatusEndpointGeeftFoutmeldingBijTekort(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 5)

	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 10}},
	})
	var order OrderResponse
	decodeJSON(t, resp, &order)

	resp = doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=bevestigd", order.ID), token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, verwacht 400", resp.StatusCode)
	}

	var fout struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &fout)
	verwacht := "Onvoldoende voorraad voor Roti pakket: gevraagd 10, beschikbaar 5"
	if fout.Error != verwacht {
		t.Errorf("foutmelding = %q, verwacht %q", fout.Error, verwacht)
	}
}

func TestStatusEndpointWeigertOnbekendeStatus(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 10)

	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 1}},
	})
	var order OrderResponse
	decodeJSON(t, resp, &order)

	resp = doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=afgerond", order.ID), token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, verwacht 400 voor onbekende status", resp.StatusCode)
	}
}

func TestDeleteAlleenVoorConceptorders(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 20)

	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 2}},
	})
	var order OrderResponse
	decodeJSON(t, resp, &order)

	doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=bevestigd", order.ID), token, nil)

	resp = doeRequest(t, app, "DELETE",
		fmt.Sprintf("/api/verkoop/orders/%d", order.ID), token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, verwacht 400: bevestigde order mag niet worden verwijderd", resp.StatusCode)
	}
}

func TestAuditLogBijStatuswijziging(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 20)

	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 2}},
	})
	var order OrderResponse
	decodeJSON(t, resp, &order)

	doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=bevestigd", order.ID), token, nil)

	var logs []models.AuditLog
	database.DB.Where("entity_type = ? AND entity_id = ?", "verkooporder", order.ID).
		Order("id asc").Find(&logs)
	if len(logs) != 2 {
		t.Fatalf("auditlogs = %d, verwacht 2 (create + statuswijziging)", len(logs))
	}
	if logs[0].Action != models.AuditActionCreate || logs[1].Action != models.AuditActionUpdate {
		t.Errorf("acties = %s, %s, verwacht create, update", logs[0].Action, logs[1].Action)
	}
	if logs[1].UserName != "Test Medewerker" {
		t.Errorf("usernaam = %q, verwacht de ingelogde medewerker", logs[1].UserName)
	}
}

func TestListOrdersFiltertOpStatus(t *testing.T) {
	app, ws, token := testApp(t)
	klant, artikel := maakTestKlantEnArtikel(t, ws.ID, 100)

	var eerste OrderResponse
	resp := doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"datum":    time.Now().Format("2006-01-02"),
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 1}},
	})
	decodeJSON(t, resp, &eerste)

	resp = doeRequest(t, app, "POST", "/api/verkoop/orders", token, fiber.Map{
		"klant_id": klant.ID,
		"regels":   []fiber.Map{{"artikel_id": artikel.ID, "aantal": 2}},
	})
	var tweede OrderResponse
	decodeJSON(t, resp, &tweede)

	doeRequest(t, app, "PUT",
		fmt.Sprintf("/api/verkoop/orders/%d/status?status=bevestigd", eerste.ID), token, nil)

	resp = doeRequest(t, app, "GET", "/api/verkoop/orders?status=bevestigd", token, nil)
	var orders []OrderResponse
	decodeJSON(t, resp, &orders)
	if len(orders) != 1 || orders[0].ID != eerste.ID {
		t.Errorf("filter op bevestigd leverde %d orders, verwacht alleen order %d", len(orders), eerste.ID)
	}
}
