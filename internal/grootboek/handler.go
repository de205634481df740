package grootboek

import (
	"fmt"
	"strings"
	"time"

	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RekeningResponse struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Naam string `json:"naam"`
	Type string `json:"type"`
}

type CreateRekeningRequest struct {
	Code        string `json:"code"`
	Naam        string `json:"naam"`
	Type        string `json:"type"` // activa/passiva/kosten/opbrengsten
	WorkspaceID *uint  `json:"workspace_id"` // super admin: verplicht
}

type JournaalpostResponse struct {
	ID             uint    `json:"id"`
	DebetRekening  string  `json:"debet_rekening"`
	CreditRekening string  `json:"credit_rekening"`
	Bedrag         float64 `json:"bedrag"`
	Omschrijving   string  `json:"omschrijving"`
	ReferentieType string  `json:"referentie_type"`
	ReferentieID   uint    `json:"referentie_id"`
	Datum          string  `json:"datum"`
}

type InstellingenResponse struct {
	VoorraadRekening    string `json:"voorraad_rekening"`
	KostprijsRekening   string `json:"kostprijs_rekening"`
	CrediteurenRekening string `json:"crediteuren_rekening"`
	DebiteurenRekening  string `json:"debiteuren_rekening"`
	OmzetRekening       string `json:"omzet_rekening"`
	BTWRekening         string `json:"btw_rekening"`
}

type UpdateInstellingenRequest struct {
	VoorraadRekening    *string `json:"voorraad_rekening"`
	KostprijsRekening   *string `json:"kostprijs_rekening"`
	CrediteurenRekening *string `json:"crediteuren_rekening"`
	DebiteurenRekening  *string `json:"debiteuren_rekening"`
	OmzetRekening       *string `json:"omzet_rekening"`
	BTWRekening         *string `json:"btw_rekening"`
}

// -------------------------
// Helper: workspace ID bepalen
// -------------------------

// body/query-onafhankelijk: workspace uit token, super admin via query
func resolveWorkspaceIDFromQueryOrRole(c *fiber.Ctx) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Rolinformatie kon niet worden bepaald")
	}

	if role != models.RoleSuperAdmin {
		wsVal := c.Locals(auth.CtxWorkspaceIDKey)
		wsPtr, ok := wsVal.(*uint)
		if !ok || wsPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Workspace-informatie niet gevonden")
		}
		return *wsPtr, nil
	}

	// super_admin
	widStr := c.Query("workspace_id")
	if widStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "workspace_id verplicht")
	}
	var wid uint
	if _, err := fmt.Sscan(widStr, &wid); err != nil || wid == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "workspace_id ongeldig")
	}
	return wid, nil
}

func resolveWorkspaceIDFromBodyOrRole(c *fiber.Ctx, bodyWorkspaceID *uint) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Rolinformatie kon niet worden bepaald")
	}

	if role != models.RoleSuperAdmin {
		wsVal := c.Locals(auth.CtxWorkspaceIDKey)
		wsPtr, ok := wsVal.(*uint)
		if !ok || wsPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Workspace-informatie niet gevonden")
		}
		return *wsPtr, nil
	}

	if bodyWorkspaceID == nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "workspace_id verplicht")
	}
	return *bodyWorkspaceID, nil
}

// -------------------------
// Rekeningschema
// -------------------------

// GET /api/grootboek/rekeningen
func ListRekeningenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var rekeningen []models.Grootboekrekening
		if err := database.DB.Where("workspace_id = ?", workspaceID).Order("code asc").Find(&rekeningen).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rekeningen konden niet worden opgehaald")
		}

		res := make([]RekeningResponse, 0, len(rekeningen))
		for _, r := range rekeningen {
			res = append(res, RekeningResponse{
				ID:   r.ID,
				Code: r.Code,
				Naam: r.Naam,
				Type: string(r.Type),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/grootboek/rekeningen
func CreateRekeningHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRekeningRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		workspaceID, err := resolveWorkspaceIDFromBodyOrRole(c, body.WorkspaceID)
		if err != nil {
			return err
		}

		body.Code = strings.TrimSpace(body.Code)
		body.Naam = strings.TrimSpace(body.Naam)
		if body.Code == "" || body.Naam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Code en naam zijn verplicht")
		}

		rtype := models.RekeningType(body.Type)
		switch rtype {
		case models.RekeningActiva, models.RekeningPassiva, models.RekeningKosten, models.RekeningOpbrengsten:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Type moet activa, passiva, kosten of opbrengsten zijn")
		}

		// Code moet uniek zijn binnen de workspace
		var count int64
		database.DB.Model(&models.Grootboekrekening{}).
			Where("workspace_id = ? AND code = ?", workspaceID, body.Code).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Rekeningcode bestaat al: "+body.Code)
		}

		rekening := models.Grootboekrekening{
			WorkspaceID: workspaceID,
			Code:        body.Code,
			Naam:        body.Naam,
			Type:        rtype,
		}
		if err := database.DB.Create(&rekening).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rekening kon niet worden aangemaakt")
		}

		return c.Status(fiber.StatusCreated).JSON(RekeningResponse{
			ID:   rekening.ID,
			Code: rekening.Code,
			Naam: rekening.Naam,
			Type: string(rekening.Type),
		})
	}
}

// -------------------------
// Journaalposten
// -------------------------

// GET /api/grootboek/journaalposten?from=&to=&rekening=
func ListJournaalpostenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("workspace_id = ?", workspaceID).Order("datum desc, id desc")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from datum ongeldig (YYYY-MM-DD)")
			}
			query = query.Where("datum >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to datum ongeldig (YYYY-MM-DD)")
			}
			query = query.Where("datum <= ?", to)
		}
		if rek := c.Query("rekening"); rek != "" {
			query = query.Where("debet_rekening = ? OR credit_rekening = ?", rek, rek)
		}

		var posten []models.Journaalpost
		if err := query.Find(&posten).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Journaalposten konden niet worden opgehaald")
		}

		res := make([]JournaalpostResponse, 0, len(posten))
		for _, p := range posten {
			res = append(res, JournaalpostResponse{
				ID:             p.ID,
				DebetRekening:  p.DebetRekening,
				CreditRekening: p.CreditRekening,
				Bedrag:         p.Bedrag,
				Omschrijving:   p.Omschrijving,
				ReferentieType: p.ReferentieType,
				ReferentieID:   p.ReferentieID,
				Datum:          p.Datum.Format("2006-01-02"),
			})
		}
		return c.JSON(res)
	}
}

// -------------------------
// Boekhoudinstellingen
// -------------------------

// GET /api/grootboek/instellingen
func GetInstellingenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		inst, instErr := InstellingenVoorWorkspace(database.DB, workspaceID)
		if instErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Instellingen konden niet worden opgehaald")
		}

		return c.JSON(InstellingenResponse{
			VoorraadRekening:    inst.VoorraadRekening,
			KostprijsRekening:   inst.KostprijsRekening,
			CrediteurenRekening: inst.CrediteurenRekening,
			DebiteurenRekening:  inst.DebiteurenRekening,
			OmzetRekening:       inst.OmzetRekening,
			BTWRekening:         inst.BTWRekening,
		})
	}
}

// PUT /api/grootboek/instellingen
func UpdateInstellingenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		inst, instErr := InstellingenVoorWorkspace(database.DB, workspaceID)
		if instErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Instellingen konden niet worden opgehaald")
		}

		var body UpdateInstellingenRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		set := func(dst *string, src *string) error {
			if src == nil {
				return nil
			}
			code := strings.TrimSpace(*src)
			if code == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Rekeningcode mag niet leeg zijn")
			}
			*dst = code
			return nil
		}

		if err := set(&inst.VoorraadRekening, body.VoorraadRekening); err != nil {
			return err
		}
		if err := set(&inst.KostprijsRekening, body.KostprijsRekening); err != nil {
			return err
		}
		if err := set(&inst.CrediteurenRekening, body.CrediteurenRekening); err != nil {
			return err
		}
		if err := set(&inst.DebiteurenRekening, body.DebiteurenRekening); err != nil {
			return err
		}
		if err := set(&inst.OmzetRekening, body.OmzetRekening); err != nil {
			return err
		}
		if err := set(&inst.BTWRekening, body.BTWRekening); err != nil {
			return err
		}

		if err := database.DB.Save(inst).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Instellingen konden niet worden opgeslagen")
		}

		return c.JSON(InstellingenResponse{
			VoorraadRekening:    inst.VoorraadRekening,
			KostprijsRekening:   inst.KostprijsRekening,
			CrediteurenRekening: inst.CrediteurenRekening,
			DebiteurenRekening:  inst.DebiteurenRekening,
			OmzetRekening:       inst.OmzetRekening,
			BTWRekening:         inst.BTWRekening,
		})
	}
}
