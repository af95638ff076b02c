package controllers

import (
	"errors"

	"talentbridge.com/db"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InstitutionController struct {
	validator *validator.Validate
}

func NewInstitutionController() *InstitutionController {
	return &InstitutionController{
		validator: validator.New(),
	}
}

type CreateInstitutionRequest struct {
	Name         string `json:"name" validate:"required"`
	Domain       string `json:"domain" validate:"required,fqdn"`
	Country      string `json:"country"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
}

type UpdateInstitutionRequest struct {
	Name         string `json:"name"`
	Country      string `json:"country"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Active       *bool  `json:"active"`
}

// CreateInstitution godoc
//
//	@Summary		Register an educational institution
//	@Tags			Institutions
//	@Accept			json
//	@Produce		json
//	@Param			body	body	CreateInstitutionRequest	true	"Institution details"
//	@Success		201	{object}	types.Response{data=types.Institution}
//	@Failure		409	{object}	types.Response	"Domain already registered"
//	@Router			/institutions [post]
func (c *InstitutionController) CreateInstitution(ctx *fiber.Ctx) error {
	var req CreateInstitutionRequest
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

	var existing types.Institution
	if err := db.DB.Where("domain = ?", req.Domain).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(types.Response{
			Success: false,
			Error:   "Institution domain already registered",
		})
	}

	institution := types.Institution{
		Name:         req.Name,
		Domain:       req.Domain,
		Country:      req.Country,
		ContactEmail: req.ContactEmail,
		Active:       true,
	}
	if err := db.DB.Create(&institution).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to create institution: " + err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(types.Response{
		Success: true,
		Data:    institution,
	})
}

func (c *InstitutionController) GetAllInstitutions(ctx *fiber.Ctx) error {
	var institutions []types.Institution
	if err := db.DB.Order("name asc").Find(&institutions).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch institutions: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    institutions,
	})
}

func (c *InstitutionController) GetInstitution(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   "Invalid institution ID",
		})
	}

	var institution types.Institution
	if err := db.DB.First(&institution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
				Success: false,
				Error:   "Institution not found",
			})
		}
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch institution: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    institution,
	})
}

func (c *InstitutionController) UpdateInstitution(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   "Invalid institution ID",
		})
	}

	var req UpdateInstitutionRequest
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

	var institution types.Institution
	if err := db.DB.First(&institution, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Institution not found",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = req.ContactEmail
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := db.DB.Model(&institution).Updates(updates).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to update institution: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    institution,
	})
}

func (c *InstitutionController) DeleteInstitution(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   "Invalid institution ID",
		})
	}

	result := db.DB.Delete(&types.Institution{}, id)
	if result.Error != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to delete institution: " + result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Institution not found",
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Institution deleted",
	})
}

func InitInstitutionRoutes(app *fiber.App) {
	institutionController := NewInstitutionController()

	app.Get("/institutions", institutionController.GetAllInstitutions)
	app.Get("/institutions/:id", institutionController.GetInstitution)
	app.Post("/institutions", middlewares.Auth, middlewares.AdminCheck, institutionController.CreateInstitution)
	app.Put("/institutions/:id", middlewares.Auth, middlewares.AdminCheck, institutionController.UpdateInstitution)
	app.Delete("/institutions/:id", middlewares.Auth, middlewares.AdminCheck, institutionController.DeleteInstitution)
}
