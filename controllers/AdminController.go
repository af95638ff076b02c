package controllers

import (
	"log"
	"time"

	"talentbridge.com/db"
	"talentbridge.com/marketplace"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AdminController struct {
	validator   *validator.Validate
	Marketplace marketplace.API
}

func NewAdminController(api marketplace.API) *AdminController {
	return &AdminController{
		validator:   validator.New(),
		Marketplace: api,
	}
}

type ConfirmDepositRequest struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// ConfirmDeposit godoc
//
//	@Summary		Confirm a project deposit
//	@Description	Sets depositConfirmed on the transaction metadata and writes a local deposit ledger entry. Does not clear the work hold; that is a separate admin action.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Marketplace transaction ID"
//	@Param			body	body	ConfirmDepositRequest	true	"Deposit details"
//	@Success		200	{object}	types.Response
//	@Failure		400	{object}	types.Response	"Invalid amount"
//	@Router			/admin/transactions/{id}/confirm-deposit [post]
func (c *AdminController) ConfirmDeposit(ctx *fiber.Ctx) error {
	transactionID := ctx.Params("id")
	adminID, _ := ctx.Locals("user_id").(string)

	var req ConfirmDepositRequest
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() || amount.IsZero() {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   "Invalid deposit amount",
		})
	}

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	confirmedAt := time.Now().UTC().Format(time.RFC3339)
	metadata := mergeMetadata(tx.Metadata, map[string]interface{}{
		"depositConfirmed":   true,
		"depositConfirmedAt": confirmedAt,
		"depositConfirmedBy": adminID,
	})
	if err := c.Marketplace.UpdateTransactionMetadata(transactionID, metadata); err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to update transaction metadata: " + err.Error(),
		})
	}

	record := types.DepositRecord{
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      req.Currency,
		ConfirmedBy:   adminID,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		// Metadata write already happened; the ledger entry is reporting-only
		log.Printf("Failed to store deposit record for %s: %v", transactionID, err)
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Deposit confirmed",
	})
}

// ClearWorkHold godoc
//
//	@Summary		Clear the work hold on a transaction
//	@Description	Unlocks customer access to confidential content and messaging. Logs a warning when the deposit was never confirmed, but does not refuse.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	string	true	"Marketplace transaction ID"
//	@Success		200	{object}	types.Response
//	@Router			/admin/transactions/{id}/clear-work-hold [post]
func (c *AdminController) ClearWorkHold(ctx *fiber.Ctx) error {
	return c.setWorkHold(ctx, true)
}

// ReinstateWorkHold godoc
//
//	@Summary		Reinstate the work hold on a transaction
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	string	true	"Marketplace transaction ID"
//	@Success		200	{object}	types.Response
//	@Router			/admin/transactions/{id}/reinstate-work-hold [post]
func (c *AdminController) ReinstateWorkHold(ctx *fiber.Ctx) error {
	return c.setWorkHold(ctx, false)
}

func (c *AdminController) setWorkHold(ctx *fiber.Ctx, cleared bool) error {
	transactionID := ctx.Params("id")

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	meta := marketplace.ParseWorkspaceMetadata(tx.Metadata)
	if cleared && !meta.DepositConfirmed {
		log.Printf("Clearing work hold on %s without a confirmed deposit", transactionID)
	}

	metadata := mergeMetadata(tx.Metadata, map[string]interface{}{
		"workHoldCleared": cleared,
	})
	if err := c.Marketplace.UpdateTransactionMetadata(transactionID, metadata); err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to update transaction metadata: " + err.Error(),
		})
	}

	state := "reinstated"
	if cleared {
		state = "cleared"
	}
	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Work hold " + state,
	})
}

// ListDeposits godoc
//
//	@Summary		List confirmed deposits
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	types.Response{data=[]types.DepositRecord}
//	@Router			/admin/deposits [get]
func (c *AdminController) ListDeposits(ctx *fiber.Ctx) error {
	var records []types.DepositRecord
	if err := db.DB.Order("created_at desc").Find(&records).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch deposits: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    records,
	})
}

func InitAdminRoutes(app *fiber.App, adminController *AdminController) {
	admin := app.Group("/admin", middlewares.Auth, middlewares.AdminCheck)

	admin.Post("/transactions/:id/confirm-deposit", adminController.ConfirmDeposit)
	admin.Post("/transactions/:id/clear-work-hold", adminController.ClearWorkHold)
	admin.Post("/transactions/:id/reinstate-work-hold", adminController.ReinstateWorkHold)
	admin.Get("/deposits", adminController.ListDeposits)
}
