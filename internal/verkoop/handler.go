package verkoop

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

type OrderRegelRequest struct {
	ArtikelID uint     `json:"artikel_id"`
	Aantal    int      `json:"aantal"`
	Prijs     *float64 `json:"prijs"` // leeg: verkoopprijs van het artikel
}

type CreateOrderRequest struct {
	KlantID     uint                `json:"klant_id"`
	Datum       string              `json:"datum"` // "2026-08-31", leeg: vandaag
	Opmerking   string              `json:"opmerking"`
	Regels      []OrderRegelRequest `json:"regels"`
	WorkspaceID *uint               `json:"workspace_id"` // super admin: verplicht
}

type OrderRegelResponse struct {
	ID          uint    `json:"id"`
	ArtikelID   uint    `json:"artikel_id"`
	ArtikelNaam string  `json:"artikel_naam"`
	Aantal      int     `json:"aantal"`
	Prijs       float64 `json:"prijs"`
	Totaal      float64 `json:"totaal"`
}

type OrderResponse struct {
	ID          uint                 `json:"id"`
	Ordernummer string               `json:"ordernummer"`
	KlantID     uint                 `json:"klant_id"`
	KlantNaam   string               `json:"klant_naam"`
	Datum       string               `json:"datum"`
	Status      string               `json:"status"`
	Opmerking   string               `json:"opmerking"`
	Totaal      float64              `json:"totaal"`
	Regels      []OrderRegelResponse `json:"regels"`
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

func orderResponse(order *models.Verkooporder, klantNaam string, artikelNamen map[uint]string) OrderResponse {
	res := OrderResponse{
		ID:          order.ID,
		Ordernummer: order.Ordernummer,
		KlantID:     order.KlantID,
		KlantNaam:   klantNaam,
		Datum:       order.Datum.Format("2006-01-02"),
		Status:      string(order.Status),
		Opmerking:   order.Opmerking,
		Regels:      make([]OrderRegelResponse, 0, len(order.Regels)),
	}
	for _, regel := range order.Regels {
		totaal := float64(regel.Aantal) * regel.Prijs
		res.Totaal += totaal
		res.Regels = append(res.Regels, OrderRegelResponse{
			ID:          regel.ID,
			ArtikelID:   regel.ArtikelID,
			ArtikelNaam: artikelNamen[regel.ArtikelID],
			Aantal:      regel.Aantal,
			Prijs:       regel.Prijs,
			Totaal:      totaal,
		})
	}
	return res
}

func laadOrderResponse(workspaceID uint, orderID uint) (OrderResponse, error) {
	var order models.Verkooporder
	if err := database.DB.Preload("Regels").Preload("Regels.Artikel").Preload("Klant").
		Where("id = ? AND workspace_id = ?", orderID, workspaceID).
		First(&order).Error; err != nil {
		return OrderResponse{}, fiber.NewError(fiber.StatusNotFound, "Verkooporder niet gevonden")
	}

	namen := make(map[uint]string, len(order.Regels))
	for _, regel := range order.Regels {
		namen[regel.ArtikelID] = regel.Artikel.Naam
	}
	return orderResponse(&order, order.Klant.Naam, namen), nil
}

// volgendOrdernummer: doorlopende nummering per workspace per jaar, bv. VO-2026-0042.
func volgendOrdernummer(workspaceID uint) string {
	jaar := time.Now().Year()
	var count int64
	database.DB.Model(&models.Verkooporder{}).
		Where("workspace_id = ? AND ordernummer LIKE ?", workspaceID, fmt.Sprintf("VO-%d-%%", jaar)).
		Count(&count)
	return fmt.Sprintf("VO-%d-%04d", jaar, count+1)
}

// -------------------------
// Verkooporder CRUD
// -------------------------

// POST /api/verkoop/orders: order wordt altijd als concept aangemaakt
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
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

		var klant models.Klant
		if err := database.DB.Where("id = ? AND workspace_id = ?", body.KlantID, workspaceID).
			First(&klant).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Klant niet gevonden")
		}

		datum := time.Now()
		if body.Datum != "" {
			datum, err = time.Parse("2006-01-02", body.Datum)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Datum ongeldig (YYYY-MM-DD)")
			}
		}

		order := models.Verkooporder{
			WorkspaceID: workspaceID,
			Ordernummer: volgendOrdernummer(workspaceID),
			KlantID:     klant.ID,
			Datum:       datum,
			Status:      models.StatusConcept,
			Opmerking:   strings.TrimSpace(body.Opmerking),
		}

		artikelNamen := make(map[uint]string, len(body.Regels))
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
			artikelNamen[artikel.ID] = artikel.Naam

			prijs := artikel.Verkoopprijs
			if regel.Prijs != nil {
				if *regel.Prijs < 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Prijs mag niet negatief zijn")
				}
				prijs = *regel.Prijs
			}

			order.Regels = append(order.Regels, models.VerkooporderRegel{
				ArtikelID: artikel.ID,
				Aantal:    regel.Aantal,
				Prijs:     prijs,
			})
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Verkooporder kon niet worden aangemaakt")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "verkooporder",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Verkooporder aangemaakt: %s", order.Ordernummer),
			After:       order,
		})

		return c.Status(fiber.StatusCreated).JSON(orderResponse(&order, klant.Naam, artikelNamen))
	}
}

// GET /api/verkoop/orders?status=&klant_id=
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Preload("Regels").Preload("Regels.Artikel").Preload("Klant").
			Where("workspace_id = ?", workspaceID).
			Order("datum desc, id desc")

		if statusStr := c.Query("status"); statusStr != "" {
			status, err := voorraad.ParseOrderStatus(statusStr)
			if err != nil {
				return err
			}
			query = query.Where("status = ?", status)
		}
		if klantID := c.Query("klant_id"); klantID != "" {
			query = query.Where("klant_id = ?", klantID)
		}

		var orders []models.Verkooporder
		if err := query.Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Verkooporders konden niet worden opgehaald")
		}

		res := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			namen := make(map[uint]string, len(orders[i].Regels))
			for _, regel := range orders[i].Regels {
				namen[regel.ArtikelID] = regel.Artikel.Naam
			}
			res = append(res, orderResponse(&orders[i], orders[i].Klant.Naam, namen))
		}
		return c.JSON(res)
	}
}

// GET /api/verkoop/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var orderID uint
		if _, err := fmt.Sscan(c.Params("id"), &orderID); err != nil || orderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Order-id ongeldig")
		}

		res, err := laadOrderResponse(workspaceID, orderID)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// PUT /api/verkoop/orders/:id/status?status=bevestigd|geleverd|geannuleerd
// Voert de statusovergang met alle voorraadeffecten uit (zie internal/voorraad).
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		userID, userName, auditWorkspaceID, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var orderID uint
		if _, err := fmt.Sscan(c.Params("id"), &orderID); err != nil || orderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Order-id ongeldig")
		}

		statusStr := c.Query("status")
		if statusStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status verplicht")
		}
		status, err := voorraad.ParseOrderStatus(statusStr)
		if err != nil {
			return err
		}

		order, err := voorraad.WijzigOrderStatus(database.DB, workspaceID, orderID, status)
		if err != nil {
			return err
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "verkooporder",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Order %s naar status %s", order.Ordernummer, status),
		})

		res, err := laadOrderResponse(workspaceID, orderID)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// DELETE /api/verkoop/orders/:id: alleen conceptorders
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		userID, userName, auditWorkspaceID, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var order models.Verkooporder
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Verkooporder niet gevonden")
		}

		if order.Status != models.StatusConcept {
			return fiber.NewError(fiber.StatusBadRequest, "Alleen conceptorders kunnen worden verwijderd")
		}

		if err := database.DB.Select("Regels").Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Verkooporder kon niet worden verwijderd")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "verkooporder",
			EntityID:    order.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Verkooporder verwijderd: %s", order.Ordernummer),
			Before:      order,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
