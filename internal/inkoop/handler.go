package inkoop

import (
	"fmt"
	"strings"
	"time"

	"facturatie-backend/internal/audit"
	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"
	"facturatie-backend/internal/voorraad"

	"github.com/gofiber/fiber/v2"
)

type InkoopRegelRequest struct {
	ArtikelID   uint     `json:"artikel_id"`
	Aantal      int      `json:"aantal"`
	Inkoopprijs *float64 `json:"inkoopprijs"` // leeg: inkoopprijs van het artikel
}

type CreateInkooporderRequest struct {
	LeverancierID uint                 `json:"leverancier_id"`
	Datum         string               `json:"datum"`
	Opmerking     string               `json:"opmerking"`
	Regels        []InkoopRegelRequest `json:"regels"`
	WorkspaceID   *uint                `json:"workspace_id"` // super admin: verplicht
}

type InkoopRegelResponse struct {
	ID          uint    `json:"id"`
	ArtikelID   uint    `json:"artikel_id"`
	ArtikelNaam string  `json:"artikel_naam"`
	Besteld     int     `json:"besteld"`
	Ontvangen   int     `json:"ontvangen"`
	Inkoopprijs float64 `json:"inkoopprijs"`
}

type InkooporderResponse struct {
	ID              uint                  `json:"id"`
	Ordernummer     string                `json:"ordernummer"`
	LeverancierID   uint                  `json:"leverancier_id"`
	LeverancierNaam string                `json:"leverancier_naam"`
	Datum           string                `json:"datum"`
	Status          string                `json:"status"`
	Opmerking       string                `json:"opmerking"`
	Regels          []InkoopRegelResponse `json:"regels"`
}

type OntvangstRegelRequest struct {
	ArtikelID       uint `json:"artikel_id"`
	OntvangenAantal int  `json:"ontvangen_aantal"`
}

type CreateOntvangstRequest struct {
	InkooporderID uint                    `json:"inkooporder_id"`
	Datum         string                  `json:"datum"`
	Opmerking     string                  `json:"opmerking"`
	Regels        []OntvangstRegelRequest `json:"regels"`
	WorkspaceID   *uint                   `json:"workspace_id"` // super admin: verplicht
}

// -------------------------
// Helpers
// -------------------------

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

func inkooporderResponse(order *models.Inkooporder) InkooporderResponse {
	res := InkooporderResponse{
		ID:              order.ID,
		Ordernummer:     order.Ordernummer,
		LeverancierID:   order.LeverancierID,
		LeverancierNaam: order.Leverancier.Naam,
		Datum:           order.Datum.Format("2006-01-02"),
		Status:          string(order.Status),
		Opmerking:       order.Opmerking,
		Regels:          make([]InkoopRegelResponse, 0, len(order.Regels)),
	}
	for _, regel := range order.Regels {
		res.Regels = append(res.Regels, InkoopRegelResponse{
			ID:          regel.ID,
			ArtikelID:   regel.ArtikelID,
			ArtikelNaam: regel.Artikel.Naam,
			Besteld:     regel.Besteld,
			Ontvangen:   regel.Ontvangen,
			Inkoopprijs: regel.Inkoopprijs,
		})
	}
	return res
}

func volgendOrdernummer(workspaceID uint) string {
	jaar := time.Now().Year()
	var count int64
	database.DB.Model(&models.Inkooporder{}).
		Where("workspace_id = ? AND ordernummer LIKE ?", workspaceID, fmt.Sprintf("IO-%d-%%", jaar)).
		Count(&count)
	return fmt.Sprintf("IO-%d-%04d", jaar, count+1)
}

// -------------------------
// Inkooporder CRUD
// -------------------------

// POST /api/inkoop/orders
func CreateInkooporderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInkooporderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		workspaceID, err := resolveWorkspaceIDFromBodyOrRole(c, body.WorkspaceID)
		if err != nil {
			return err
		}

		userID, userName, auditWorkspaceID, err := getUserInfo(c)
		if err != nil {
			return err
		}

		if len(body.Regels) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Minimaal één orderregel is verplicht")
		}

		var leverancier models.Leverancier
		if err := database.DB.Where("id = ? AND workspace_id = ?", body.LeverancierID, workspaceID).
			First(&leverancier).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Leverancier niet gevonden")
		}

		datum := time.Now()
		if body.Datum != "" {
			datum, err = time.Parse("2006-01-02", body.Datum)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Datum ongeldig (YYYY-MM-DD)")
			}
		}

		order := models.Inkooporder{
			WorkspaceID:   workspaceID,
			Ordernummer:   volgendOrdernummer(workspaceID),
			LeverancierID: leverancier.ID,
			Datum:         datum,
			Status:        models.InkoopStatusConcept,
			Opmerking:     strings.TrimSpace(body.Opmerking),
		}

		for _, regel := range body.Regels {
			if regel.Aantal <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Aantal moet groter dan nul zijn")
			}

			var artikel models.Artikel
			if err := database.DB.Where("id = ? AND workspace_id = ?", regel.ArtikelID, workspaceID).
				First(&artikel).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Artikel niet gevonden (id %d)", regel.ArtikelID))
			}

			prijs := artikel.Inkoopprijs
			if regel.Inkoopprijs != nil {
				if *regel.Inkoopprijs < 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Inkoopprijs mag niet negatief zijn")
				}
				prijs = *regel.Inkoopprijs
			}

			order.Regels = append(order.Regels, models.InkooporderRegel{
				ArtikelID:   artikel.ID,
				Besteld:     regel.Aantal,
				Inkoopprijs: prijs,
			})
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Inkooporder kon niet worden aangemaakt")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "inkooporder",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Inkooporder aangemaakt: %s", order.Ordernummer),
			After:       order,
		})

		order.Leverancier = leverancier
		if err := database.DB.Preload("Regels.Artikel").First(&order, order.ID).Error; err == nil {
			return c.Status(fiber.StatusCreated).JSON(inkooporderResponse(&order))
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": order.ID, "ordernummer": order.Ordernummer})
	}
}

// GET /api/inkoop/orders?status=
func ListInkooporderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Preload("Regels").Preload("Regels.Artikel").Preload("Leverancier").
			Where("workspace_id = ?", workspaceID).
			Order("datum desc, id desc")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var orders []models.Inkooporder
		if err := query.Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Inkooporders konden niet worden opgehaald")
		}

		res := make([]InkooporderResponse, 0, len(orders))
		for i := range orders {
			res = append(res, inkooporderResponse(&orders[i]))
		}
		return c.JSON(res)
	}
}

// PUT /api/inkoop/orders/:id/status?status=bevestigd|geannuleerd
// Inkooporders hebben geen voorraadeffect tot de ontvangst; de status
// 'ontvangen' wordt uitsluitend door de ontvangstverwerking gezet.
func UpdateInkooporderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var order models.Inkooporder
		if err := database.DB.Preload("Regels").
			Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Inkooporder niet gevonden")
		}

		naar := models.InkooporderStatus(c.Query("status"))
		switch naar {
		case models.InkoopStatusBevestigd:
			if order.Status != models.InkoopStatusConcept {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Ongeldige statusovergang van '%s' naar '%s'", order.Status, naar))
			}
		case models.InkoopStatusGeannuleerd:
			if order.Status != models.InkoopStatusConcept && order.Status != models.InkoopStatusBevestigd {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Ongeldige statusovergang van '%s' naar '%s'", order.Status, naar))
			}
			for _, regel := range order.Regels {
				if regel.Ontvangen > 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Order met ontvangen regels kan niet worden geannuleerd")
				}
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Status moet 'bevestigd' of 'geannuleerd' zijn")
		}

		if err := database.DB.Model(&models.Inkooporder{}).
			Where("id = ?", order.ID).
			Update("status", naar).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Status kon niet worden bijgewerkt")
		}

		order.Status = naar
		if err := database.DB.Preload("Regels.Artikel").Preload("Leverancier").First(&order, order.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Inkooporder kon niet worden opgehaald")
		}
		return c.JSON(inkooporderResponse(&order))
	}
}

// -------------------------
// Goederenontvangst
// -------------------------

// POST /api/inkoop/ontvangsten
func CreateOntvangstHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOntvangstRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		workspaceID, err := resolveWorkspaceIDFromBodyOrRole(c, body.WorkspaceID)
		if err != nil {
			return err
		}

		userID, userName, auditWorkspaceID, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var datum time.Time
		if body.Datum != "" {
			datum, err = time.Parse("2006-01-02", body.Datum)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Datum ongeldig (YYYY-MM-DD)")
			}
		}

		regels := make([]voorraad.OntvangstRegelInput, 0, len(body.Regels))
		for _, regel := range body.Regels {
			regels = append(regels, voorraad.OntvangstRegelInput{
				ArtikelID: regel.ArtikelID,
				Aantal:    regel.OntvangenAantal,
			})
		}

		ontvangst, err := voorraad.RegistreerOntvangst(database.DB, workspaceID, body.InkooporderID,
			datum, strings.TrimSpace(body.Opmerking), regels)
		if err != nil {
			return err
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "goederenontvangst",
			EntityID:    ontvangst.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Goederenontvangst op inkooporder %d", body.InkooporderID),
			After:       ontvangst,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":             ontvangst.ID,
			"inkooporder_id": ontvangst.InkooporderID,
			"datum":          ontvangst.Datum.Format("2006-01-02"),
			"success":        true,
		})
	}
}

// GET /api/inkoop/ontvangsten?inkooporder_id=
func ListOntvangstenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Preload("Regels").Preload("Regels.Artikel").
			Where("workspace_id = ?", workspaceID).
			Order("datum desc, id desc")

		if orderID := c.Query("inkooporder_id"); orderID != "" {
			query = query.Where("inkooporder_id = ?", orderID)
		}

		var ontvangsten []models.Goederenontvangst
		if err := query.Find(&ontvangsten).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ontvangsten konden niet worden opgehaald")
		}

		type regelRes struct {
			ArtikelID   uint    `json:"artikel_id"`
			ArtikelNaam string  `json:"artikel_naam"`
			Aantal      int     `json:"aantal"`
			Inkoopprijs float64 `json:"inkoopprijs"`
		}
		type ontvangstRes struct {
			ID            uint       `json:"id"`
			InkooporderID uint       `json:"inkooporder_id"`
			Datum         string     `json:"datum"`
			Opmerking     string     `json:"opmerking"`
			Regels        []regelRes `json:"regels"`
		}

		res := make([]ontvangstRes, 0, len(ontvangsten))
		for _, o := range ontvangsten {
			item := ontvangstRes{
				ID:            o.ID,
				InkooporderID: o.InkooporderID,
				Datum:         o.Datum.Format("2006-01-02"),
				Opmerking:     o.Opmerking,
				Regels:        make([]regelRes, 0, len(o.Regels)),
			}
			for _, regel := range o.Regels {
				item.Regels = append(item.Regels, regelRes{
					ArtikelID:   regel.ArtikelID,
					ArtikelNaam: regel.Artikel.Naam,
					Aantal:      regel.Aantal,
					Inkoopprijs: regel.Inkoopprijs,
				})
			}
			res = append(res, item)
		}
		return c.JSON(res)
	}
}
