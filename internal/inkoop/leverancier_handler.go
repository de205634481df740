package inkoop

import (
	"strings"

	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LeverancierResponse struct {
	ID       uint   `json:"id"`
	Naam     string `json:"naam"`
	Email    string `json:"email"`
	Adres    string `json:"adres"`
	Telefoon string `json:"telefoon"`
}

type CreateLeverancierRequest struct {
	Naam        string `json:"naam"`
	Email       string `json:"email"`
	Adres       string `json:"adres"`
	Telefoon    string `json:"telefoon"`
	WorkspaceID *uint  `json:"workspace_id"` // super admin: verplicht
}

type UpdateLeverancierRequest struct {
	Naam     *string `json:"naam"`
	Email    *string `json:"email"`
	Adres    *string `json:"adres"`
	Telefoon *string `json:"telefoon"`
}

func leverancierResponse(l *models.Leverancier) LeverancierResponse {
	return LeverancierResponse{
		ID:       l.ID,
		Naam:     l.Naam,
		Email:    l.Email,
		Adres:    l.Adres,
		Telefoon: l.Telefoon,
	}
}

// GET /api/leveranciers
func ListLeveranciersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var leveranciers []models.Leverancier
		if err := database.DB.Where("workspace_id = ?", workspaceID).Order("naam asc").
			Find(&leveranciers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Leveranciers konden niet worden opgehaald")
		}

		res := make([]LeverancierResponse, 0, len(leveranciers))
		for i := range leveranciers {
			res = append(res, leverancierResponse(&leveranciers[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/leveranciers
func CreateLeverancierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLeverancierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		workspaceID, err := resolveWorkspaceIDFromBodyOrRole(c, body.WorkspaceID)
		if err != nil {
			return err
		}

		body.Naam = strings.TrimSpace(body.Naam)
		if body.Naam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Leveranciersnaam is verplicht")
		}

		leverancier := models.Leverancier{
			WorkspaceID: workspaceID,
			Naam:        body.Naam,
			Email:       strings.TrimSpace(body.Email),
			Adres:       body.Adres,
			Telefoon:    strings.TrimSpace(body.Telefoon),
		}

		if err := database.DB.Create(&leverancier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Leverancier kon niet worden aangemaakt")
		}

		return c.Status(fiber.StatusCreated).JSON(leverancierResponse(&leverancier))
	}
}

// PUT /api/leveranciers/:id
func UpdateLeverancierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var leverancier models.Leverancier
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&leverancier).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Leverancier niet gevonden")
		}

		var body UpdateLeverancierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		if body.Naam != nil {
			naam := strings.TrimSpace(*body.Naam)
			if naam == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Leveranciersnaam mag niet leeg zijn")
			}
			leverancier.Naam = naam
		}
		if body.Email != nil {
			leverancier.Email = strings.TrimSpace(*body.Email)
		}
		if body.Adres != nil {
			leverancier.Adres = *body.Adres
		}
		if body.Telefoon != nil {
			leverancier.Telefoon = strings.TrimSpace(*body.Telefoon)
		}

		if err := database.DB.Save(&leverancier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Leverancier kon niet worden bijgewerkt")
		}

		return c.JSON(leverancierResponse(&leverancier))
	}
}

// DELETE /api/leveranciers/:id
func DeleteLeverancierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var leverancier models.Leverancier
		if err := database.DB.Where("id = ? AND workspace_id = ?", c.Params("id"), workspaceID).
			First(&leverancier).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Leverancier niet gevonden")
		}

		var orderCount int64
		database.DB.Model(&models.Inkooporder{}).
			Where("leverancier_id = ?", leverancier.ID).
			Count(&orderCount)
		if orderCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Leverancier heeft inkooporders en kan niet worden verwijderd")
		}

		if err := database.DB.Delete(&leverancier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Leverancier kon niet worden verwijderd")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
