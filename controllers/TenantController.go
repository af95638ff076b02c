package controllers

import (
	"talentbridge.com/db"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TenantController struct {
	validator *validator.Validate
}

func NewTenantController() *TenantController {
	return &TenantController{
		validator: validator.New(),
	}
}

type CreateTenantRequest struct {
	Slug                string `json:"slug" validate:"required,lowercase,alphanum"`
	Name                string `json:"name" validate:"required"`
	MarketplaceClientID string `json:"marketplaceClientId"`
}

func (c *TenantController) CreateTenant(ctx *fiber.Ctx) error {
	var req CreateTenantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   "Invalid JSON format",
		})
	}
	if err := c.validator.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	var existing types.Tenant
	if err := db.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(types.Response{
			Success: false,
			Error:   "Tenant slug already taken",
		})
	}

	tenant := types.Tenant{
		Slug:                req.Slug,
		Name:                req.Name,
		MarketplaceClientID: req.MarketplaceClientID,
		Active:              true,
	}
	if err := db.DB.Create(&tenant).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to create tenant: " + err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(types.Response{
		Success: true,
		Data:    tenant,
	})
}

func (c *TenantController) GetAllTenants(ctx *fiber.Ctx) error {
	var tenants []types.Tenant
	if err := db.DB.Order("slug asc").Find(&tenants).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch tenants: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    tenants,
	})
}

func (c *TenantController) GetTenantBySlug(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")

	var tenant types.Tenant
	if err := db.DB.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Tenant not found",
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    tenant,
	})
}

func (c *TenantController) DeactivateTenant(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")

	result := db.DB.Model(&types.Tenant{}).Where("slug = ?", slug).Update("active", false)
	if result.Error != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to deactivate tenant: " + result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Tenant not found",
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Tenant deactivated",
	})
}

func InitTenantRoutes(app *fiber.App) {
	tenantController := NewTenantController()

	app.Get("/tenants", tenantController.GetAllTenants)
	app.Get("/tenants/:slug", tenantController.GetTenantBySlug)
	app.Post("/tenants", middlewares.Auth, middlewares.AdminCheck, tenantController.CreateTenant)
	app.Put("/tenants/:slug/deactivate", middlewares.Auth, middlewares.AdminCheck, tenantController.DeactivateTenant)
}
