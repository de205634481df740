package audit

import (
	"fmt"

	"facturatie-backend/internal/auth"
	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=&limit=
// Super admin ziet alles; workspace-gebruikers alleen hun eigen workspace.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rolinformatie kon niet worden bepaald")
		}

		query := database.DB.Model(&models.AuditLog{}).Order("created_at desc")

		if role != models.RoleSuperAdmin {
			wsVal := c.Locals(auth.CtxWorkspaceIDKey)
			wsPtr, ok := wsVal.(*uint)
			if !ok || wsPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Workspace-informatie niet gevonden")
			}
			query = query.Where("workspace_id = ?", *wsPtr)
		}

		if et := c.Query("entity_type"); et != "" {
			query = query.Where("entity_type = ?", et)
		}

		limit := 100
		if l := c.Query("limit"); l != "" {
			if _, err := fmt.Sscan(l, &limit); err != nil || limit <= 0 || limit > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit ongeldig")
			}
		}

		var logs []models.AuditLog
		if err := query.Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs konden niet worden opgehaald")
		}

		return c.JSON(logs)
	}
}
