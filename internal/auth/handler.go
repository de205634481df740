package auth

import (
	"strings"

	"facturatie-backend/internal/config"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterSuperAdminRequest struct {
	Naam     string `json:"naam"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterSuperAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterSuperAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Naam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Naam, email en wachtwoord zijn verplicht")
		}

		// Tweede super admin blokkeren
		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleSuperAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Er bestaat al een super admin")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Wachtwoord kon niet worden gehasht")
		}

		user := models.User{
			Naam:         body.Naam,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleSuperAdmin,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gebruiker kon niet worden aangemaakt")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ongeldige request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email of wachtwoord onjuist")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email of wachtwoord onjuist")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token kon niet worden aangemaakt")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":           user.ID,
				"naam":         user.Naam,
				"email":        user.Email,
				"role":         user.Role,
				"workspace_id": user.WorkspaceID,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		roleVal := c.Locals(CtxUserRoleKey)
		workspaceIDVal := c.Locals(CtxWorkspaceIDKey)

		var user models.User
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				response := fiber.Map{
					"user_id":      user.ID,
					"naam":         user.Naam,
					"email":        user.Email,
					"role":         user.Role,
					"workspace_id": user.WorkspaceID,
				}

				// Workspace-gebruiker: workspacegegevens meesturen
				if user.WorkspaceID != nil {
					var ws models.Workspace
					if err := database.DB.First(&ws, *user.WorkspaceID).Error; err == nil {
						response["workspace"] = fiber.Map{
							"id":       ws.ID,
							"naam":     ws.Naam,
							"adres":    ws.Adres,
							"telefoon": ws.Telefoon,
						}
					}
				}

				return c.JSON(response)
			}
		}

		// Fallback: als de database niet bereikbaar is, geef de claims terug
		return c.JSON(fiber.Map{
			"user_id":      userIDVal,
			"role":         roleVal,
			"workspace_id": workspaceIDVal,
		})
	}
}
