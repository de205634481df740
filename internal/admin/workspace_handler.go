package admin

import (
	"strings"

	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type WorkspaceResponse struct {
	ID        uint   `json:"id"`
	Naam      string `json:"naam"`
	Adres     string `json:"adres"`
	Telefoon  string `json:"telefoon"`
	CreatedAt string `json:"created_at"`
}

type CreateWorkspaceRequest struct {
	Naam     string  `json:"naam"`
	Adres    string  `json:"adres"`
	Telefoon *string `json:"telefoon"` // Optioneel
}

type UpdateWorkspaceRequest struct {
	Naam     *string `json:"naam"`
	Adres    *string `json:"adres"`
	Telefoon *string `json:"telefoon"`
}

type CreateWorkspaceUserRequest struct {
	Naam     string `json:"naam"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // "workspace_admin" of "medewerker"
}

type WorkspaceUserResponse struct {
	ID          uint   `json:"id"`
	Naam        string `json:"naam"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	WorkspaceID *uint  `json:"workspace_id"`
	CreatedAt   string `json:"created_at"`
}

// ----------------------------------------
// WORKSPACE CRUD
// ----------------------------------------

func CreateWorkspaceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWorkspaceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		body.Naam = strings.TrimSpace(body.Naam)
		if body.Naam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Workspacenaam mag niet leeg zijn")
		}

		ws := models.Workspace{
			Naam:  body.Naam,
			Adres: body.Adres,
		}
		if body.Telefoon != nil {
			ws.Telefoon = strings.TrimSpace(*body.Telefoon)
		}

		if err := database.DB.Create(&ws).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Workspace kon niet worden aangemaakt")
		}

		return c.Status(fiber.StatusCreated).JSON(WorkspaceResponse{
			ID:        ws.ID,
			Naam:      ws.Naam,
			Adres:     ws.Adres,
			Telefoon:  ws.Telefoon,
			CreatedAt: ws.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListWorkspacesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var workspaces []models.Workspace
		if err := database.DB.Find(&workspaces).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Workspaces konden niet worden opgehaald")
		}

		res := make([]WorkspaceResponse, 0, len(workspaces))
		for _, w := range workspaces {
			res = append(res, WorkspaceResponse{
				ID:        w.ID,
				Naam:      w.Naam,
				Adres:     w.Adres,
				Telefoon:  w.Telefoon,
				CreatedAt: w.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func GetWorkspaceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ws models.Workspace
		if err := database.DB.First(&ws, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Workspace niet gevonden")
		}

		return c.JSON(WorkspaceResponse{
			ID:        ws.ID,
			Naam:      ws.Naam,
			Adres:     ws.Adres,
			Telefoon:  ws.Telefoon,
			CreatedAt: ws.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func UpdateWorkspaceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ws models.Workspace
		if err := database.DB.First(&ws, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Workspace niet gevonden")
		}

		var body UpdateWorkspaceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		if body.Naam != nil {
			naam := strings.TrimSpace(*body.Naam)
			if naam == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Workspacenaam mag niet leeg zijn")
			}
			ws.Naam = naam
		}
		if body.Adres != nil {
			ws.Adres = *body.Adres
		}
		if body.Telefoon != nil {
			ws.Telefoon = strings.TrimSpace(*body.Telefoon)
		}

		if err := database.DB.Save(&ws).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Workspace kon niet worden bijgewerkt")
		}

		return c.JSON(WorkspaceResponse{
			ID:        ws.ID,
			Naam:      ws.Naam,
			Adres:     ws.Adres,
			Telefoon:  ws.Telefoon,
			CreatedAt: ws.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteWorkspaceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ws models.Workspace
		if err := database.DB.First(&ws, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Workspace niet gevonden")
		}

		// Workspaces met gebruikers niet verwijderen
		var userCount int64
		database.DB.Model(&models.User{}).Where("workspace_id = ?", ws.ID).Count(&userCount)
		if userCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Workspace heeft nog gebruikers en kan niet worden verwijderd")
		}

		if err := database.DB.Delete(&ws).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Workspace kon niet worden verwijderd")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// ----------------------------------------
// WORKSPACE-GEBRUIKERS
// ----------------------------------------

func CreateWorkspaceUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ws models.Workspace
		if err := database.DB.First(&ws, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Workspace niet gevonden")
		}

		var body CreateWorkspaceUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige gegevens")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Naam = strings.TrimSpace(body.Naam)

		if body.Naam == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Naam, email en wachtwoord zijn verplicht")
		}

		role := models.UserRole(body.Role)
		if role == "" {
			role = models.RoleMedewerker
		}
		if role != models.RoleWorkspaceAdmin && role != models.RoleMedewerker {
			return fiber.NewError(fiber.StatusBadRequest, "Role moet 'workspace_admin' of 'medewerker' zijn")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wachtwoord kon niet worden gehasht")
		}

		user := models.User{
			WorkspaceID:  &ws.ID,
			Naam:         body.Naam,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gebruiker kon niet worden aangemaakt (email al in gebruik?)")
		}

		return c.Status(fiber.StatusCreated).JSON(WorkspaceUserResponse{
			ID:          user.ID,
			Naam:        user.Naam,
			Email:       user.Email,
			Role:        string(user.Role),
			WorkspaceID: user.WorkspaceID,
			CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListWorkspaceUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ws models.Workspace
		if err := database.DB.First(&ws, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Workspace niet gevonden")
		}

		var users []models.User
		if err := database.DB.Where("workspace_id = ?", ws.ID).Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gebruikers konden niet worden opgehaald")
		}

		res := make([]WorkspaceUserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, WorkspaceUserResponse{
				ID:          u.ID,
				Naam:        u.Naam,
				Email:       u.Email,
				Role:        string(u.Role),
				WorkspaceID: u.WorkspaceID,
				CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
