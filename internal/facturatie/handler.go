package facturatie

import (
	"fmt"
	"math"
	"strings"
	"time"

	"facturatie-backend/internal/audit"
	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/grootboek"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FactuurRegelInput struct {
	Omschrijving  string   `json:"omschrijving"`
	Aantal        int      `json:"aantal"`
	Prijs         float64  `json:"prijs"`
	BTWPercentage *float64 `json:"btw_percentage"`
}

type CreateFactuurRequest struct {
	KlantID     uint                `json:"klant_id"`
	Datum       string              `json:"datum"`       // YYYY-MM-DD, default vandaag
	Vervaldatum string              `json:"vervaldatum"` // default datum + 30 dagen
	Opmerking   string              `json:"opmerking"`
	Regels      []FactuurRegelInput `json:"regels"`
	WorkspaceID *uint               `json:"workspace_id"` // super admin: verplicht
}

type CreateBetalingRequest struct {
	FactuurID uint    `json:"factuur_id"`
	Bedrag    float64 `json:"bedrag"`
	Datum     string  `json:"datum"` // default vandaag
	Wijze     string  `json:"wijze"` // "bank" of "contant"
}

type FactuurRegelResponse struct {
	ID            uint    `json:"id"`
	Omschrijving  string  `json:"omschrijving"`
	Aantal        int     `json:"aantal"`
	Prijs         float64 `json:"prijs"`
	BTWPercentage float64 `json:"btw_percentage"`
	Totaal        float64 `json:"totaal"`
}

type FactuurResponse struct {
	ID            uint                   `json:"id"`
	Factuurnummer string                 `json:"factuurnummer"`
	KlantID       uint                   `json:"klant_id"`
	KlantNaam     string                 `json:"klant_naam"`
	Datum         string                 `json:"datum"`
	Vervaldatum   string                 `json:"vervaldatum"`
	Status        string                 `json:"status"`
	Subtotaal     float64                `json:"subtotaal"`
	BTWBedrag     float64                `json:"btw_bedrag"`
	Totaal        float64                `json:"totaal"`
	Betaald       float64                `json:"betaald"`
	Openstaand    float64                `json:"openstaand"`
	Opmerking     string                 `json:"opmerking"`
	Regels        []FactuurRegelResponse `json:"regels"`
}

type BetalingResponse struct {
	ID            uint    `json:"id"`
	FactuurID     uint    `json:"factuur_id"`
	Factuurnummer string  `json:"factuurnummer"`
	Bedrag        float64 `json:"bedrag"`
	Datum         string  `json:"datum"`
	Wijze         string  `json:"wijze"`
	Kenmerk       string  `json:"kenmerk"`
}

func getUserInfo(c *fiber.Ctx) (uint, string, *uint, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", nil, fiber.NewError(fiber.StatusForbidden, "Gebruikersinformatie kon niet worden bepaald")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", nil, fiber.NewError(fiber.StatusInternalServerError, "Gebruiker niet gevonden")
	}

	var workspaceID *uint
	wsVal := c.Locals(auth.CtxWorkspaceIDKey)
	if wsPtr, ok := wsVal.(*uint); ok && wsPtr != nil {
		workspaceID = wsPtr
	}

	return userID, user.Naam, workspaceID, nil
}

// afronden op 2 decimalen, zodat opgetelde regelbedragen geen zwevende centen opleveren
func rond(bedrag float64) float64 {
	return math.Round(bedrag*100) / 100
}

func betaaldBedrag(db *gorm.DB, factuurID uint) float64 {
	var totaal float64
	db.Model(&models.Betaling{}).
		Where("factuur_id = ?", factuurID).
		Select("COALESCE(SUM(bedrag), 0)").
		Scan(&totaal)
	return rond(totaal)
}

func factuurResponse(db *gorm.DB, f *models.Factuur) FactuurResponse {
	betaald := betaaldBedrag(db, f.ID)

	regels := make([]FactuurRegelResponse, 0, len(f.Regels))
	for _, r := range f.Regels {
		regels = append(regels, FactuurRegelResponse{
			ID:            r.ID,
			Omschrijving:  r.Omschrijving,
			Aantal:        r.Aantal,
			Prijs:         r.Prijs,
			BTWPercentage: r.BTWPercentage,
			Totaal:        r.Totaal,
		})
	}

	return FactuurResponse{
		ID:            f.ID,
		Factuurnummer: f.Factuurnummer,
		KlantID:       f.KlantID,
		KlantNaam:     f.Klant.Naam,
		Datum:         f.Datum.Format("2006-01-02"),
		Vervaldatum:   f.Vervaldatum.Format("2006-01-02"),
		Status:        string(f.Status),
		Subtotaal:     f.Subtotaal,
		BTWBedrag:     f.BTWBedrag,
		Totaal:        f.Totaal,
		Betaald:       betaald,
		Openstaand:    rond(f.Totaal - betaald),
		Opmerking:     f.Opmerking,
		Regels:        regels,
	}
}

func laadFactuur(db *gorm.DB, workspaceID uint, id string) (*models.Factuur, error) {
	var factuur models.Factuur
	if err := db.Preload("Regels").Preload("Klant").
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&factuur).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Factuur niet gevonden")
	}
	return &factuur, nil
}

func volgendFactuurnummer(db *gorm.DB, workspaceID uint) string {
	var count int64
	db.Model(&models.Factuur{}).Where("workspace_id = ?", workspaceID).Count(&count)
	return fmt.Sprintf("F-%d-%04d", time.Now().Year(), count+1)
}

// -------------------------
// Facturen
// -------------------------

// GET /api/facturen?status=&klant_id=
func ListFacturenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Preload("Regels").Preload("Klant").
			Where("workspace_id = ?", workspaceID).
			Order("datum desc, id desc")

		if status := c.Query("status"); status != "" {
			switch models.FactuurStatus(status) {
			case models.FactuurConcept, models.FactuurVerzonden, models.FactuurBetaald, models.FactuurVervallen:
				query = query.Where("status = ?", status)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Onbekende factuurstatus: "+status)
			}
		}
		if klantID := c.Query("klant_id"); klantID != "" {
			query = query.Where("klant_id = ?", klantID)
		}

		var facturen []models.Factuur
		if err := query.Find(&facturen).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Facturen konden niet worden opgehaald")
		}

		res := make([]FactuurResponse, 0, len(facturen))
		for i := range facturen {
			res = append(res, factuurResponse(database.DB, &facturen[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/facturen/:id
func GetFactuurHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		factuur, err := laadFactuur(database.DB, workspaceID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(factuurResponse(database.DB, factuur))
	}
}

// POST /api/facturen
// Factuur wordt altijd als concept aangemaakt; verzenden is een aparte stap.
func CreateFactuurHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body CreateFactuurRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		workspaceID, err := resolveWorkspaceIDFromBodyOrRole(c, body.WorkspaceID)
		if err != nil {
			return err
		}

		if len(body.Regels) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Factuur heeft minimaal één regel nodig")
		}

		var klant models.Klant
		if err := database.DB.Where("id = ? AND workspace_id = ?", body.KlantID, workspaceID).
			First(&klant).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Klant niet gevonden")
		}

		datum := time.Now()
		if body.Datum != "" {
			d, err := time.Parse("2006-01-02", body.Datum)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "datum ongeldig (YYYY-MM-DD)")
			}
			datum = d
		}
		vervaldatum := datum.AddDate(0, 0, 30)
		if body.Vervaldatum != "" {
			d, err := time.Parse("2006-01-02", body.Vervaldatum)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "vervaldatum ongeldig (YYYY-MM-DD)")
			}
			if d.Before(datum) {
				return fiber.NewError(fiber.StatusBadRequest, "Vervaldatum kan niet voor de factuurdatum liggen")
			}
			vervaldatum = d
		}

		var subtotaal, btwBedrag float64
		regels := make([]models.FactuurRegel, 0, len(body.Regels))
		for _, r := range body.Regels {
			omschrijving := strings.TrimSpace(r.Omschrijving)
			if omschrijving == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Regelomschrijving is verplicht")
			}
			if r.Aantal <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Regelaantal moet groter dan nul zijn")
			}
			if r.Prijs < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Regelprijs kan niet negatief zijn")
			}
			btw := 10.0
			if r.BTWPercentage != nil {
				if *r.BTWPercentage < 0 {
					return fiber.NewError(fiber.StatusBadRequest, "BTW-percentage kan niet negatief zijn")
				}
				btw = *r.BTWPercentage
			}

			regelTotaal := rond(float64(r.Aantal) * r.Prijs)
			subtotaal += regelTotaal
			btwBedrag += rond(regelTotaal * btw / 100)

			regels = append(regels, models.FactuurRegel{
				Omschrijving:  omschrijving,
				Aantal:        r.Aantal,
				Prijs:         r.Prijs,
				BTWPercentage: btw,
				Totaal:        regelTotaal,
			})
		}
		subtotaal = rond(subtotaal)
		btwBedrag = rond(btwBedrag)

		factuur := models.Factuur{
			WorkspaceID:   workspaceID,
			Factuurnummer: volgendFactuurnummer(database.DB, workspaceID),
			KlantID:       klant.ID,
			Datum:         datum,
			Vervaldatum:   vervaldatum,
			Status:        models.FactuurConcept,
			Subtotaal:     subtotaal,
			BTWBedrag:     btwBedrag,
			Totaal:        rond(subtotaal + btwBedrag),
			Opmerking:     body.Opmerking,
			Regels:        regels,
		}

		if err := database.DB.Create(&factuur).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Factuur kon niet worden aangemaakt")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: &workspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "factuur",
			EntityID:    factuur.ID,
			Action:      models.AuditActionCreate,
			Description: "Factuur " + factuur.Factuurnummer + " aangemaakt",
			After:       factuur,
		})

		factuur.Klant = klant
		return c.Status(fiber.StatusCreated).JSON(factuurResponse(database.DB, &factuur))
	}
}

// DELETE /api/facturen/:id
// Alleen concepten; verzonden facturen zitten in het grootboek.
func DeleteFactuurHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		factuur, err := laadFactuur(database.DB, workspaceID, c.Params("id"))
		if err != nil {
			return err
		}

		if factuur.Status != models.FactuurConcept {
			return fiber.NewError(fiber.StatusBadRequest, "Alleen conceptfacturen kunnen worden verwijderd")
		}

		if err := database.DB.Select("Regels").Delete(factuur).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Factuur kon niet worden verwijderd")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: &workspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "factuur",
			EntityID:    factuur.ID,
			Action:      models.AuditActionDelete,
			Description: "Factuur " + factuur.Factuurnummer + " verwijderd",
			Before:      factuur,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/facturen/:id/verzenden
// Concept -> verzonden. Boekt de omzet en de af te dragen BTW:
//
//	debet debiteuren / credit omzet   (subtotaal)
//	debet debiteuren / credit BTW     (btw-bedrag)
func VerzendFactuurHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var factuur *models.Factuur
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			f, err := laadFactuur(tx, workspaceID, c.Params("id"))
			if err != nil {
				return err
			}
			if f.Status != models.FactuurConcept {
				return fiber.NewError(fiber.StatusBadRequest,
					"Alleen conceptfacturen kunnen worden verzonden (status is '"+string(f.Status)+"')")
			}

			inst, err := grootboek.InstellingenVoorWorkspace(tx, workspaceID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Boekhoudinstellingen konden niet worden geladen")
			}

			if f.Subtotaal > 0 {
				if err := grootboek.Boek(tx, grootboek.Boeking{
					WorkspaceID:    workspaceID,
					DebetRekening:  inst.DebiteurenRekening,
					CreditRekening: inst.OmzetRekening,
					Bedrag:         f.Subtotaal,
					Omschrijving:   "Omzet factuur " + f.Factuurnummer,
					ReferentieType: "factuur",
					ReferentieID:   f.ID,
					Datum:          f.Datum,
				}); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Journaalpost kon niet worden geboekt")
				}
			}
			if f.BTWBedrag > 0 {
				if err := grootboek.Boek(tx, grootboek.Boeking{
					WorkspaceID:    workspaceID,
					DebetRekening:  inst.DebiteurenRekening,
					CreditRekening: inst.BTWRekening,
					Bedrag:         f.BTWBedrag,
					Omschrijving:   "BTW factuur " + f.Factuurnummer,
					ReferentieType: "factuur",
					ReferentieID:   f.ID,
					Datum:          f.Datum,
				}); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Journaalpost kon niet worden geboekt")
				}
			}

			if err := tx.Model(f).Update("status", models.FactuurVerzonden).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Factuurstatus kon niet worden bijgewerkt")
			}
			f.Status = models.FactuurVerzonden
			factuur = f
			return nil
		})
		if err != nil {
			return err
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: &workspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "factuur",
			EntityID:    factuur.ID,
			Action:      models.AuditActionUpdate,
			Description: "Factuur " + factuur.Factuurnummer + " verzonden",
			After:       factuur,
		})

		return c.JSON(factuurResponse(database.DB, factuur))
	}
}

// -------------------------
// Betalingen
// -------------------------

// POST /api/betalingen
// Deelbetalingen toegestaan. Zodra het volledige bedrag binnen is gaat de
// factuur (ook een vervallen factuur) naar 'betaald'.
func CreateBetalingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var body CreateBetalingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		if body.Bedrag <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Betalingsbedrag moet groter dan nul zijn")
		}
		wijze := strings.TrimSpace(body.Wijze)
		if wijze == "" {
			wijze = "bank"
		}
		if wijze != "bank" && wijze != "contant" {
			return fiber.NewError(fiber.StatusBadRequest, "Betaalwijze moet 'bank' of 'contant' zijn")
		}

		datum := time.Now()
		if body.Datum != "" {
			d, err := time.Parse("2006-01-02", body.Datum)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "datum ongeldig (YYYY-MM-DD)")
			}
			datum = d
		}

		var betaling models.Betaling
		var factuur models.Factuur
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND workspace_id = ?", body.FactuurID, workspaceID).
				First(&factuur).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Factuur niet gevonden")
			}

			switch factuur.Status {
			case models.FactuurConcept:
				return fiber.NewError(fiber.StatusBadRequest, "Conceptfacturen kunnen nog niet worden betaald")
			case models.FactuurBetaald:
				return fiber.NewError(fiber.StatusBadRequest, "Factuur is al volledig betaald")
			}

			openstaand := rond(factuur.Totaal - betaaldBedrag(tx, factuur.ID))
			if rond(body.Bedrag) > openstaand {
				return fiber.NewError(fiber.StatusBadRequest, "Betaling is hoger dan het openstaande bedrag")
			}

			betaling = models.Betaling{
				WorkspaceID: workspaceID,
				FactuurID:   factuur.ID,
				Bedrag:      rond(body.Bedrag),
				Datum:       datum,
				Wijze:       wijze,
				Kenmerk:     uuid.NewString(),
			}
			if err := tx.Create(&betaling).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Betaling kon niet worden opgeslagen")
			}

			if rond(factuur.Totaal-betaaldBedrag(tx, factuur.ID)) <= 0 {
				if err := tx.Model(&factuur).Update("status", models.FactuurBetaald).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Factuurstatus kon niet worden bijgewerkt")
				}
				factuur.Status = models.FactuurBetaald
			}
			return nil
		})
		if err != nil {
			return err
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: &workspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "betaling",
			EntityID:    betaling.ID,
			Action:      models.AuditActionCreate,
			Description: "Betaling op factuur " + factuur.Factuurnummer + " geregistreerd",
			After:       betaling,
		})

		return c.Status(fiber.StatusCreated).JSON(BetalingResponse{
			ID:            betaling.ID,
			FactuurID:     factuur.ID,
			Factuurnummer: factuur.Factuurnummer,
			Bedrag:        betaling.Bedrag,
			Datum:         betaling.Datum.Format("2006-01-02"),
			Wijze:         betaling.Wijze,
			Kenmerk:       betaling.Kenmerk,
		})
	}
}

// GET /api/betalingen?factuur_id=
func ListBetalingenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Preload("Factuur").
			Where("workspace_id = ?", workspaceID).
			Order("datum desc, id desc")
		if factuurID := c.Query("factuur_id"); factuurID != "" {
			query = query.Where("factuur_id = ?", factuurID)
		}

		var betalingen []models.Betaling
		if err := query.Find(&betalingen).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Betalingen konden niet worden opgehaald")
		}

		res := make([]BetalingResponse, 0, len(betalingen))
		for _, b := range betalingen {
			res = append(res, BetalingResponse{
				ID:            b.ID,
				FactuurID:     b.FactuurID,
				Factuurnummer: b.Factuur.Factuurnummer,
				Bedrag:        b.Bedrag,
				Datum:         b.Datum.Format("2006-01-02"),
				Wijze:         b.Wijze,
				Kenmerk:       b.Kenmerk,
			})
		}
		return c.JSON(res)
	}
}

// -------------------------
// Rapportages
// -------------------------

// GET /api/klanten/:id/openstaand
// Openstaande facturen (verzonden of vervallen) van een klant met het nog
// te betalen bedrag per factuur.
func KlantOpenstaandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var klant models.Klant
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&klant).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Klant niet gevonden")
		}

		var facturen []models.Factuur
		if err := database.DB.
			Where("klant_id = ? AND workspace_id = ? AND status IN ?",
				klant.ID, workspaceID,
				[]models.FactuurStatus{models.FactuurVerzonden, models.FactuurVervallen}).
			Order("vervaldatum asc").
			Find(&facturen).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Facturen konden niet worden opgehaald")
		}

		type openstaandRegel struct {
			FactuurID     uint    `json:"factuur_id"`
			Factuurnummer string  `json:"factuurnummer"`
			Datum         string  `json:"datum"`
			Vervaldatum   string  `json:"vervaldatum"`
			Status        string  `json:"status"`
			Totaal        float64 `json:"totaal"`
			Betaald       float64 `json:"betaald"`
			Openstaand    float64 `json:"openstaand"`
		}

		var totaalOpenstaand float64
		regels := make([]openstaandRegel, 0, len(facturen))
		for _, f := range facturen {
			betaald := betaaldBedrag(database.DB, f.ID)
			openstaand := rond(f.Totaal - betaald)
			totaalOpenstaand += openstaand
			regels = append(regels, openstaandRegel{
				FactuurID:     f.ID,
				Factuurnummer: f.Factuurnummer,
				Datum:         f.Datum.Format("2006-01-02"),
				Vervaldatum:   f.Vervaldatum.Format("2006-01-02"),
				Status:        string(f.Status),
				Totaal:        f.Totaal,
				Betaald:       betaald,
				Openstaand:    openstaand,
			})
		}

		return c.JSON(fiber.Map{
			"klant_id":   klant.ID,
			"klant_naam": klant.Naam,
			"openstaand": rond(totaalOpenstaand),
			"facturen":   regels,
		})
	}
}

// GET /api/facturatie/overzicht?jaar=&maand=
// Omzet en af te dragen BTW per maand, op basis van verzonden facturen.
func MaandOverzichtHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		jaar := c.QueryInt("jaar", time.Now().Year())
		maand := c.QueryInt("maand", int(time.Now().Month()))
		if maand < 1 || maand > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "maand moet tussen 1 en 12 liggen")
		}

		van := time.Date(jaar, time.Month(maand), 1, 0, 0, 0, 0, time.Local)
		tot := van.AddDate(0, 1, 0)

		var facturen []models.Factuur
		if err := database.DB.
			Where("workspace_id = ? AND status != ? AND datum >= ? AND datum < ?",
				workspaceID, models.FactuurConcept, van, tot).
			Find(&facturen).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Facturen konden niet worden opgehaald")
		}

		var omzet, btw float64
		for _, f := range facturen {
			omzet += f.Subtotaal
			btw += f.BTWBedrag
		}

		var ontvangen float64
		database.DB.Model(&models.Betaling{}).
			Where("workspace_id = ? AND datum >= ? AND datum < ?", workspaceID, van, tot).
			Select("COALESCE(SUM(bedrag), 0)").
			Scan(&ontvangen)

		return c.JSON(fiber.Map{
			"jaar":            jaar,
			"maand":           maand,
			"aantal_facturen": len(facturen),
			"omzet":           rond(omzet),
			"btw":             rond(btw),
			"totaal":          rond(omzet + btw),
			"ontvangen":       rond(ontvangen),
		})
	}
}
