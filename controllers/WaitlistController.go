package controllers

import (
	"talentbridge.com/db"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WaitlistController struct {
	validator *validator.Validate
}

func NewWaitlistController() *WaitlistController {
	return &WaitlistController{
		validator: validator.New(),
	}
}

type JoinWaitlistRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,oneof=student partner institution"`
	TenantSlug string `json:"tenantSlug"`
}

// JoinWaitlist godoc
//
//	@Summary		Join the platform waitlist
//	@Tags			Waitlist
//	@Accept			json
//	@Produce		json
//	@Param			body	body	JoinWaitlistRequest	true	"Signup details"
//	@Success		201	{object}	types.Response{data=types.WaitlistEntry}
//	@Failure		409	{object}	types.Response	"Email already on the waitlist"
//	@Router			/waitlist [post]
func (c *WaitlistController) JoinWaitlist(ctx *fiber.Ctx) error {
	var req JoinWaitlistRequest
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

	var existing types.WaitlistEntry
	if err := db.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(types.Response{
			Success: false,
			Error:   "Email already on the waitlist",
		})
	}

	entry := types.WaitlistEntry{
		ID:         uuid.NewString(),
		Email:      req.Email,
		Role:       req.Role,
		TenantSlug: req.TenantSlug,
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to join waitlist: " + err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(types.Response{
		Success: true,
		Data:    entry,
	})
}

func (c *WaitlistController) GetWaitlist(ctx *fiber.Ctx) error {
	var entries []types.WaitlistEntry
	query := db.DB.Order("created_at asc")
	if tenant := ctx.Query("tenant"); tenant != "" {
		query = query.Where("tenant_slug = ?", tenant)
	}
	if err := query.Find(&entries).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch waitlist: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    entries,
	})
}

func (c *WaitlistController) RemoveWaitlistEntry(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   "Invalid waitlist entry ID",
		})
	}

	result := db.DB.Delete(&types.WaitlistEntry{}, "id = ?", id)
	if result.Error != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to remove waitlist entry: " + result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Waitlist entry not found",
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Waitlist entry removed",
	})
}

func InitWaitlistRoutes(app *fiber.App) {
	waitlistController := NewWaitlistController()

	app.Post("/waitlist", waitlistController.JoinWaitlist)
	app.Get("/waitlist", middlewares.Auth, middlewares.AdminCheck, waitlistController.GetWaitlist)
	app.Delete("/waitlist/:id", middlewares.Auth, middlewares.AdminCheck, waitlistController.RemoveWaitlistEntry)
}
