package facturatie

import (
	"fmt"
	"strings"

	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type KlantResponse struct {
	ID       uint   `json:"id"`
	Naam     string `json:"naam"`
	Email    string `json:"email"`
	Adres    string `json:"adres"`
	Telefoon string `json:"telefoon"`
}

type CreateKlantRequest struct {
	Naam        string `json:"naam"`
	Email       string `json:"email"`
	Adres       string `json:"adres"`
	Telefoon    string `json:"telefoon"`
	WorkspaceID *uint  `json:"workspace_id"` // super admin: verplicht
}

type UpdateKlantRequest struct {
	Naam     *string `json:"naam"`
	Email    *string `json:"email"`
	Adres    *string `json:"adres"`
	Telefoon *string `json:"telefoon"`
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

func klantResponse(k *models.Klant) KlantResponse {
	return KlantResponse{
		ID:       k.ID,
		Naam:     k.Naam,
		Email:    k.Email,
		Adres:    k.Adres,
		Telefoon: k.Telefoon,
	}
}

// -------------------------
// Klant CRUD
// -------------------------

// GET /api/klanten
func ListKlantenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var klanten []models.Klant
		if err := database.DB.Where("workspace_id = ?", workspaceID).Order("naam asc").
			Find(&klanten).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Klanten konden niet worden opgehaald")
		}

		res := make([]KlantResponse, 0, len(klanten))
		for i := range klanten {
			res = append(res, klantResponse(&klanten[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/klanten
func CreateKlantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateKlantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		workspaceID, err := resolveWorkspaceIDFromBodyOrRole(c, body.WorkspaceID)
		if err != nil {
			return err
		}

		body.Naam = strings.TrimSpace(body.Naam)
		if body.Naam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Klantnaam is verplicht")
		}

		klant := models.Klant{
			WorkspaceID: workspaceID,
			Naam:        body.Naam,
			Email:       strings.TrimSpace(body.Email),
			Adres:       body.Adres,
			Telefoon:    strings.TrimSpace(body.Telefoon),
		}

		if err := database.DB.Create(&klant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Klant kon niet worden aangemaakt")
		}

		return c.Status(fiber.StatusCreated).JSON(klantResponse(&klant))
	}
}

// PUT /api/klanten/:id
func UpdateKlantHandler() fiber.Handler {
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

		var body UpdateKlantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		if body.Naam != nil {
			naam := strings.TrimSpace(*body.Naam)
			if naam == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Klantnaam mag niet leeg zijn")
			}
			klant.Naam = naam
		}
		if body.Email != nil {
			klant.Email = strings.TrimSpace(*body.Email)
		}
		if body.Adres != nil {
			klant.Adres = *body.Adres
		}
		if body.Telefoon != nil {
			klant.Telefoon = strings.TrimSpace(*body.Telefoon)
		}

		if err := database.DB.Save(&klant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Klant kon niet worden bijgewerkt")
		}

		return c.JSON(klantResponse(&klant))
	}
}

// DELETE /api/klanten/:id
func DeleteKlantHandler() fiber.Handler {
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

		var factuurCount int64
		database.DB.Model(&models.Factuur{}).Where("klant_id = ?", klant.ID).Count(&factuurCount)
		if factuurCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Klant heeft facturen en kan niet worden verwijderd")
		}

		if err := database.DB.Delete(&klant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Klant kon niet worden verwijderd")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
