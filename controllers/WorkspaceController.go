package controllers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"talentbridge.com/broker"
	"talentbridge.com/controllers/access"
	"talentbridge.com/db"
	"talentbridge.com/dto"
	"talentbridge.com/marketplace"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

const maxMessageLength = 5000

type WorkspaceController struct {
	validator   *validator.Validate
	Marketplace marketplace.API
}

func NewWorkspaceController(api marketplace.API) *WorkspaceController {
	return &WorkspaceController{
		validator:   validator.New(),
		Marketplace: api,
	}
}

type SendMessageRequest struct {
	Content     string             `json:"content" validate:"required"`
	Attachments []types.Attachment `json:"attachments"`
}

type MarkReadRequest struct {
	MessageIDs []string `json:"messageIds" validate:"required,min=1"`
}

// txLocks serializes message writes per transaction so two concurrent appends
// both survive. Flag writes to the marketplace metadata stay last-writer-wins.
var txLocks sync.Map

func lockTransaction(id string) func() {
	mu, _ := txLocks.LoadOrStore(id, &sync.Mutex{})
	mutex := mu.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

func callerIdentity(ctx *fiber.Ctx) (string, string, bool) {
	userID, ok := ctx.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", "", false
	}
	displayName, _ := ctx.Locals("display_name").(string)
	return userID, displayName, true
}

func deniedResponse(ctx *fiber.Ctx, decision access.Decision) error {
	return ctx.Status(fiber.StatusForbidden).JSON(types.Response{
		Success: false,
		Data: dto.WorkspaceResponse{
			AccessGranted:      false,
			AccessDeniedReason: string(decision),
		},
		Error: "Access denied",
	})
}

func (c *WorkspaceController) isBlocked(userID string) bool {
	var blocked types.BlockedStudent
	return db.DB.Where("user_id = ?", userID).First(&blocked).Error == nil
}

// GetWorkspace godoc
//
//	@Summary		Fetch the project workspace for a transaction
//	@Description	Returns the transaction, listing, participants and message log when access is granted, or a denial reason code consumed by the frontend.
//	@Tags			Workspace
//	@Produce		json
//	@Param			transactionId	path		string	true	"Marketplace transaction ID"
//	@Success		200	{object}	types.Response{data=dto.WorkspaceResponse}
//	@Failure		401	{object}	types.Response	"No authenticated user"
//	@Failure		403	{object}	types.Response	"unauthorized | not_accepted | deposit_pending"
//	@Router			/project-workspace/{transactionId} [get]
func (c *WorkspaceController) GetWorkspace(ctx *fiber.Ctx) error {
	userID, _, ok := callerIdentity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(types.Response{
			Success: false,
			Error:   "No authenticated user",
		})
	}
	transactionID := ctx.Params("transactionId")

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	if access.Role(tx, userID) == "customer" && c.isBlocked(userID) {
		return deniedResponse(ctx, access.DeniedUnauthorized)
	}

	decision := access.Evaluate(tx, userID)
	if decision != access.Granted {
		return deniedResponse(ctx, decision)
	}

	listing, err := c.Marketplace.ShowListing(tx.ListingID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch listing: " + err.Error(),
		})
	}
	provider, err := c.Marketplace.ShowUser(tx.ProviderID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch provider: " + err.Error(),
		})
	}
	customer, err := c.Marketplace.ShowUser(tx.CustomerID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch customer: " + err.Error(),
		})
	}

	var messages []types.ProjectMessage
	if err := db.DB.
		Where("transaction_id = ?", transactionID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch messages: " + err.Error(),
		})
	}

	meta := marketplace.ParseWorkspaceMetadata(tx.Metadata)

	return ctx.JSON(types.Response{
		Success: true,
		Data: dto.WorkspaceResponse{
			AccessGranted: true,
			Transaction:   tx,
			Listing:       listing,
			Provider:      provider,
			Customer:      customer,
			Messages:      messages,
			NdaRequired:   listing.RequiresNDA,
			NdaAccepted:   meta.NdaAccepted,
		},
	})
}

// SendMessage godoc
//
//	@Summary		Append a message to the project workspace
//	@Tags			Workspace
//	@Accept			json
//	@Produce		json
//	@Param			transactionId	path	string				true	"Marketplace transaction ID"
//	@Param			body			body	SendMessageRequest	true	"Message payload"
//	@Success		201	{object}	types.Response{data=dto.SendMessageResponse}
//	@Failure		400	{object}	types.Response	"Missing or oversized content"
//	@Failure		403	{object}	types.Response	"Caller may not post to this workspace"
//	@Router			/project-workspace/{transactionId}/messages [post]
func (c *WorkspaceController) SendMessage(ctx *fiber.Ctx) error {
	userID, displayName, ok := callerIdentity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(types.Response{
			Success: false,
			Error:   "No authenticated user",
		})
	}
	transactionID := ctx.Params("transactionId")

	var req SendMessageRequest
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
	// Length check happens before any marketplace call
	if len(req.Content) > maxMessageLength {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.Response{
			Success: false,
			Error:   fmt.Sprintf("Message content exceeds %d characters", maxMessageLength),
		})
	}

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	if access.Role(tx, userID) == "customer" && c.isBlocked(userID) {
		return deniedResponse(ctx, access.DeniedUnauthorized)
	}

	decision := access.Evaluate(tx, userID)
	if decision != access.Granted {
		return deniedResponse(ctx, decision)
	}

	message := types.ProjectMessage{
		ID:            ulid.Make().String(),
		TransactionID: transactionID,
		SenderID:      userID,
		SenderName:    displayName,
		SenderType:    access.Role(tx, userID),
		Content:       req.Content,
		Attachments:   req.Attachments,
	}

	unlock := lockTransaction(transactionID)
	defer unlock()

	if err := db.DB.Create(&message).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to store message: " + err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(types.Response{
		Success: true,
		Data:    dto.SendMessageResponse{Message: message},
	})
}

// MarkRead godoc
//
//	@Summary		Mark workspace messages as read
//	@Description	Sets readAt once per message, only for messages authored by the other participant. Re-marking is a no-op.
//	@Tags			Workspace
//	@Accept			json
//	@Produce		json
//	@Param			transactionId	path	string			true	"Marketplace transaction ID"
//	@Param			body			body	MarkReadRequest	true	"Message IDs"
//	@Success		200	{object}	types.Response
//	@Router			/project-workspace/{transactionId}/mark-read [post]
func (c *WorkspaceController) MarkRead(ctx *fiber.Ctx) error {
	userID, _, ok := callerIdentity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(types.Response{
			Success: false,
			Error:   "No authenticated user",
		})
	}
	transactionID := ctx.Params("transactionId")

	var req MarkReadRequest
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

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	decision := access.Evaluate(tx, userID)
	if decision != access.Granted {
		return deniedResponse(ctx, decision)
	}

	unlock := lockTransaction(transactionID)
	defer unlock()

	now := time.Now()
	if err := db.DB.Model(&types.ProjectMessage{}).
		Where("transaction_id = ? AND id IN ? AND sender_id <> ? AND read_at IS NULL",
			transactionID, req.MessageIDs, userID).
		Update("read_at", &now).Error; err != nil {
		return ctx.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to mark messages read: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Messages marked as read",
	})
}

// AcceptNda godoc
//
//	@Summary		Accept the project NDA
//	@Description	Customer only. Writes ndaAccepted/ndaAcceptedAt/ndaAcceptedBy into the transaction metadata sidecar.
//	@Tags			Workspace
//	@Produce		json
//	@Param			transactionId	path	string	true	"Marketplace transaction ID"
//	@Success		200	{object}	types.Response{data=dto.AcceptNdaResponse}
//	@Failure		403	{object}	types.Response	"Caller is not the transaction's customer"
//	@Router			/project-workspace/{transactionId}/accept-nda [post]
func (c *WorkspaceController) AcceptNda(ctx *fiber.Ctx) error {
	userID, _, ok := callerIdentity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(types.Response{
			Success: false,
			Error:   "No authenticated user",
		})
	}
	transactionID := ctx.Params("transactionId")

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	if tx.CustomerID != userID {
		return deniedResponse(ctx, access.DeniedUnauthorized)
	}

	meta := marketplace.ParseWorkspaceMetadata(tx.Metadata)
	if meta.NdaAccepted {
		return ctx.JSON(types.Response{
			Success: true,
			Data:    dto.AcceptNdaResponse{NdaAcceptedAt: meta.NdaAcceptedAt},
		})
	}

	acceptedAt := time.Now().UTC().Format(time.RFC3339)
	metadata := mergeMetadata(tx.Metadata, map[string]interface{}{
		"ndaAccepted":   true,
		"ndaAcceptedAt": acceptedAt,
		"ndaAcceptedBy": userID,
	})

	if err := c.Marketplace.UpdateTransactionMetadata(transactionID, metadata); err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to update transaction metadata: " + err.Error(),
		})
	}

	return ctx.JSON(types.Response{
		Success: true,
		Data:    dto.AcceptNdaResponse{NdaAcceptedAt: acceptedAt},
	})
}

// MarkCompleted godoc
//
//	@Summary		Mark the project as completed
//	@Description	Runs the mark-completed transition against the marketplace, then fires a best-effort notification in the background.
//	@Tags			Workspace
//	@Produce		json
//	@Param			transactionId	path	string	true	"Marketplace transaction ID"
//	@Success		200	{object}	types.Response
//	@Failure		403	{object}	types.Response	"Caller is not the provider"
//	@Router			/project-workspace/{transactionId}/complete [post]
func (c *WorkspaceController) MarkCompleted(ctx *fiber.Ctx) error {
	userID, _, ok := callerIdentity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(types.Response{
			Success: false,
			Error:   "No authenticated user",
		})
	}
	transactionID := ctx.Params("transactionId")

	tx, err := c.Marketplace.ShowTransaction(transactionID)
	if err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to fetch transaction: " + err.Error(),
		})
	}

	isAdmin, _ := ctx.Locals("is_admin").(bool)
	if tx.ProviderID != userID && !isAdmin {
		return deniedResponse(ctx, access.DeniedUnauthorized)
	}

	if err := c.Marketplace.Transition(transactionID, "transition/mark-completed"); err != nil {
		return ctx.Status(marketplace.StatusOf(err)).JSON(types.Response{
			Success: false,
			Error:   "Failed to run transition: " + err.Error(),
		})
	}

	// The transition already succeeded; the notification must never fail the
	// request, so it runs detached and only logs.
	go c.notifyTransition(tx, "transition/mark-completed")

	return ctx.JSON(types.Response{
		Success: true,
		Data:    "Project marked as completed",
	})
}

func (c *WorkspaceController) notifyTransition(tx *marketplace.Transaction, transition string) {
	listing, err := c.Marketplace.ShowListing(tx.ListingID)
	if err != nil {
		log.Printf("Transition notification: failed to fetch listing %s: %v", tx.ListingID, err)
		return
	}
	customer, err := c.Marketplace.ShowUser(tx.CustomerID)
	if err != nil {
		log.Printf("Transition notification: failed to fetch customer %s: %v", tx.CustomerID, err)
		return
	}

	notification := dto.TransitionNotificationDTO{
		TransactionID: tx.ID,
		Transition:    transition,
		ListingTitle:  listing.Title,
		CustomerName:  customer.DisplayName,
		ProviderID:    tx.ProviderID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := broker.SendTransitionNotification(&notification); err != nil {
		log.Printf("Transition notification for %s failed: %v", tx.ID, err)
	}
}

func mergeMetadata(current map[string]interface{}, patch map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(current)+len(patch))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

func InitWorkspaceRoutes(app *fiber.App, workspaceController *WorkspaceController) {
	ws := app.Group("/project-workspace", middlewares.Auth)

	ws.Get("/:transactionId", workspaceController.GetWorkspace)
	ws.Post("/:transactionId/messages", middlewares.RequirePermission("user.workspace.messaging"), workspaceController.SendMessage)
	ws.Post("/:transactionId/mark-read", middlewares.RequirePermission("user.workspace.messaging"), workspaceController.MarkRead)
	ws.Post("/:transactionId/accept-nda", workspaceController.AcceptNda)
	ws.Post("/:transactionId/complete", workspaceController.MarkCompleted)
}
