package voorraad

import (
	"fmt"
	"strings"

	"facturatie-backend/internal/audit"
	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ArtikelResponse struct {
	ID            uint    `json:"id"`
	Naam          string  `json:"naam"`
	Artikelcode   string  `json:"artikelcode"`
	Eenheid       string  `json:"eenheid"`
	Voorraad      int     `json:"voorraad"`
	Gereserveerd  int     `json:"gereserveerd"`
	Beschikbaar   int     `json:"beschikbaar"`
	Inkoopprijs   float64 `json:"inkoopprijs"`
	Verkoopprijs  float64 `json:"verkoopprijs"`
	BTWPercentage float64 `json:"btw_percentage"`
}

type CreateArtikelRequest struct {
	Naam          string   `json:"naam"`
	Artikelcode   string   `json:"artikelcode"`
	Eenheid       string   `json:"eenheid"`
	Voorraad      int      `json:"voorraad"`
	Inkoopprijs   float64  `json:"inkoopprijs"`
	Verkoopprijs  float64  `json:"verkoopprijs"`
	BTWPercentage *float64 `json:"btw_percentage"`
	WorkspaceID   *uint    `json:"workspace_id"` // super admin: verplicht
}

type UpdateArtikelRequest struct {
	Naam          *string  `json:"naam"`
	Artikelcode   *string  `json:"artikelcode"`
	Eenheid       *string  `json:"eenheid"`
	Inkoopprijs   *float64 `json:"inkoopprijs"`
	Verkoopprijs  *float64 `json:"verkoopprijs"`
	BTWPercentage *float64 `json:"btw_percentage"`
}

type CorrectieRequest struct {
	Aantal       int    `json:"aantal"` // delta, negatief bij afboeken
	Omschrijving string `json:"omschrijving"`
}

func artikelResponse(a *models.Artikel) ArtikelResponse {
	return ArtikelResponse{
		ID:            a.ID,
		Naam:          a.Naam,
		Artikelcode:   a.Artikelcode,
		Eenheid:       a.Eenheid,
		Voorraad:      a.Voorraad,
		Gereserveerd:  a.Gereserveerd,
		Beschikbaar:   a.Beschikbaar(),
		Inkoopprijs:   a.Inkoopprijs,
		Verkoopprijs:  a.Verkoopprijs,
		BTWPercentage: a.BTWPercentage,
	}
}

// -------------------------
// Helper: gebruikersinfo voor audit logging
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

// -------------------------
// Helper: workspace ID bepalen
// -------------------------

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
// Artikel CRUD
// -------------------------

// GET /api/artikelen
func ListArtikelenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("workspace_id = ?", workspaceID).Order("naam asc")
		if zoek := strings.TrimSpace(c.Query("zoek")); zoek != "" {
			query = query.Where("naam LIKE ? OR artikelcode LIKE ?", "%"+zoek+"%", "%"+zoek+"%")
		}

		var artikelen []models.Artikel
		if err := query.Find(&artikelen).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Artikelen konden niet worden opgehaald")
		}

		res := make([]ArtikelResponse, 0, len(artikelen))
		for i := range artikelen {
			res = append(res, artikelResponse(&artikelen[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/artikelen/:id
func GetArtikelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var artikel models.Artikel
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Artikel niet gevonden")
		}

		return c.JSON(artikelResponse(&artikel))
	}
}

// POST /api/artikelen
func CreateArtikelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateArtikelRequest
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

		body.Naam = strings.TrimSpace(body.Naam)
		body.Eenheid = strings.TrimSpace(body.Eenheid)
		if body.Naam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Artikelnaam is verplicht")
		}
		if body.Eenheid == "" {
			body.Eenheid = "stuks"
		}
		if body.Voorraad < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Voorraad mag niet negatief zijn")
		}
		if body.Inkoopprijs < 0 || body.Verkoopprijs < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Prijzen mogen niet negatief zijn")
		}

		artikel := models.Artikel{
			WorkspaceID:  workspaceID,
			Naam:         body.Naam,
			Artikelcode:  strings.TrimSpace(body.Artikelcode),
			Eenheid:      body.Eenheid,
			Voorraad:     body.Voorraad,
			Inkoopprijs:  body.Inkoopprijs,
			Verkoopprijs: body.Verkoopprijs,
		}
		if body.BTWPercentage != nil {
			artikel.BTWPercentage = *body.BTWPercentage
		} else {
			artikel.BTWPercentage = 10
		}

		if err := database.DB.Create(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Artikel kon niet worden aangemaakt")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "artikel",
			EntityID:    artikel.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Artikel aangemaakt: %s", artikel.Naam),
			After:       artikel,
		})

		return c.Status(fiber.StatusCreated).JSON(artikelResponse(&artikel))
	}
}

// PUT /api/artikelen/:id
// Voorraad en reserveringen zijn hier bewust niet muteerbaar; die lopen via
// orders, ontvangsten en correcties zodat de mutatieregels kloppen.
func UpdateArtikelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		userID, userName, auditWorkspaceID, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var artikel models.Artikel
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Artikel niet gevonden")
		}

		before := artikel

		var body UpdateArtikelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		if body.Naam != nil {
			naam := strings.TrimSpace(*body.Naam)
			if naam == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Artikelnaam mag niet leeg zijn")
			}
			artikel.Naam = naam
		}
		if body.Artikelcode != nil {
			artikel.Artikelcode = strings.TrimSpace(*body.Artikelcode)
		}
		if body.Eenheid != nil {
			eenheid := strings.TrimSpace(*body.Eenheid)
			if eenheid == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Eenheid mag niet leeg zijn")
			}
			artikel.Eenheid = eenheid
		}
		if body.Inkoopprijs != nil {
			if *body.Inkoopprijs < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Inkoopprijs mag niet negatief zijn")
			}
			artikel.Inkoopprijs = *body.Inkoopprijs
		}
		if body.Verkoopprijs != nil {
			if *body.Verkoopprijs < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Verkoopprijs mag niet negatief zijn")
			}
			artikel.Verkoopprijs = *body.Verkoopprijs
		}
		if body.BTWPercentage != nil {
			artikel.BTWPercentage = *body.BTWPercentage
		}

		if err := database.DB.Save(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Artikel kon niet worden bijgewerkt")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "artikel",
			EntityID:    artikel.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Artikel bijgewerkt: %s", artikel.Naam),
			Before:      before,
			After:       artikel,
		})

		return c.JSON(artikelResponse(&artikel))
	}
}

// DELETE /api/artikelen/:id
func DeleteArtikelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		userID, userName, auditWorkspaceID, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var artikel models.Artikel
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Artikel niet gevonden")
		}

		if artikel.Gereserveerd > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Artikel heeft openstaande reserveringen en kan niet worden verwijderd")
		}

		if err := database.DB.Delete(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Artikel kon niet worden verwijderd")
		}

		_ = audit.WriteLog(audit.LogOptions{
			WorkspaceID: auditWorkspaceID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "artikel",
			EntityID:    artikel.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Artikel verwijderd: %s", artikel.Naam),
			Before:      artikel,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/artikelen/:id/correctie
func CorrectieHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var artikelID uint
		if _, err := fmt.Sscan(c.Params("id"), &artikelID); err != nil || artikelID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Artikel-id ongeldig")
		}

		var body CorrectieRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		mutatie, err := Correctie(database.DB, workspaceID, artikelID, body.Aantal, strings.TrimSpace(body.Omschrijving))
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      mutatie.ID,
			"aantal":  mutatie.Aantal,
			"type":    mutatie.Type,
			"datum":   mutatie.Datum.Format("2006-01-02"),
			"success": true,
		})
	}
}
