package controllers

import (
	"log"

	"talentbridge.com/broker"
	"talentbridge.com/db"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type BlockedStudentController struct {
	validator *validator.Validate
}

func NewBlockedStudentController() *BlockedStudentController {
	return &BlockedStudentController{
		validator: validator.New(),
	}
}

type BlockStudentRequest struct {
	UserID string `json:"userId" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// BlockStudent godoc
//
//	@Summary		Block a student from workspace access
//	@Description	Blocked students are refused workspace access even when the policy evaluator would grant it.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body	BlockStudentRequest	true	"Block details"
//	@Success		201	{object}	types.Response{data=types.BlockedStudent}
//	@Failure		409	{object}	types.Response	"Student already blocked"
//	@Router			/admin/blocked-students [post]
func (c *BlockedStudentController) BlockStudent(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("user_id").(string)

	var req BlockStudentRequest
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

	var existing types.BlockedStudent
	if err := db.DB.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(types.Response{
			Success: false,
			Error:   "Student already blocked",
		})
	}

	// Best-effort existence check against the user service; a broker-less
	// deployment skips it.
	student, err := broker.GetStudentById(req.UserID)
	if err != nil {
		log.Printf("Could not verify student %s with user service: %v", req.UserID, err)
	} else if student != nil && student.ID == "" {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Student not found",
		})
	}

	record := types.BlockedStudent{
		UserID:    req.UserID,
		Reason:    req.Reason,
		BlockedBy: adminID,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to block student: " + err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(types.Response{
		Success: true,
		Data:    record,
	})
}

func (c *BlockedStudentController) UnblockStudent(ctx *fiber.Ctx) error {
	userID := ctx.Params("userId")

	result := db.DB.Delete(&types.BlockedStudent{}, "user_id = ?", userID)
	if result.Error != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to unblock student: " + result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(types.Response{
			Success: false,
			Error:   "Student is not blocked",
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Student unblocked",
	})
}

func (c *BlockedStudentController) GetBlockedStudents(ctx *fiber.Ctx) error {
	var records []types.BlockedStudent
	if err := db.DB.Order("created_at desc").Find(&records).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch blocked students: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    records,
	})
}

func InitBlockedStudentRoutes(app *fiber.App) {
	blockedController := NewBlockedStudentController()

	blocked := app.Group("/admin/blocked-students", middlewares.Auth, middlewares.AdminCheck)
	blocked.Post("/", blockedController.BlockStudent)
	blocked.Get("/", blockedController.GetBlockedStudents)
	blocked.Delete("/:userId", blockedController.UnblockStudent)
}
