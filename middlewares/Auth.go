package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func Auth(c *fiber.Ctx) error {
	return JWTMiddleware(c)
}

func RoleCheck(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role != requiredRole {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized: Invalid role",
			})
		}

		return c.Next()
	}
}

func AdminCheck(c *fiber.Ctx) error {
	isAdmin, ok := c.Locals("is_admin").(bool)
	if !ok || !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized: Admin only",
		})
	}
	return c.Next()
}

func RequirePermission(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permissions, ok := c.Locals("permissions").([]interface{})
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized: No permissions found",
			})
		}

		for _, perm := range permissions {
			if strPerm, ok := perm.(string); ok && strPerm == requiredPermission {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Unauthorized: Missing permission '%s'", requiredPermission),
		})
	}
}
