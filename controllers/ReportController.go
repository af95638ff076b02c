package controllers

import (
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron"

	"talentbridge.com/broker"
	"talentbridge.com/db"
	"talentbridge.com/dto"
	"talentbridge.com/middlewares"
	"talentbridge.com/types"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
}

func NewReportController() *ReportController {
	return &ReportController{}
}

// GetMessagingReport godoc
//
//	@Summary		Per-transaction messaging activity
//	@Description	Returns message and unread counts grouped by transaction.
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	types.Response{data=[]dto.MessagingReportRow}
//	@Failure		500	{object}	types.Response	"Database error"
//	@Router			/reports/messaging [get]
func (rc *ReportController) GetMessagingReport(c *fiber.Ctx) error {
	rows := make([]dto.MessagingReportRow, 0)

	query := `SELECT transaction_id,
       COUNT(*) AS message_count,
       SUM(CASE WHEN read_at IS NULL THEN 1 ELSE 0 END) AS unread_count
FROM project_messages
GROUP BY transaction_id`

	err := db.DB.Raw(query).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching messaging report: %v", err)
		return c.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Error fetching messaging report: " + err.Error(),
		})
	}

	return c.JSON(types.Response{
		Success: true,
		Data:    rows,
	})
}

// GetDepositReport godoc
//
//	@Summary		Confirmed deposit totals per transaction
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	types.Response{data=[]dto.DepositReportRow}
//	@Router			/reports/deposits [get]
func (rc *ReportController) GetDepositReport(c *fiber.Ctx) error {
	rows := make([]dto.DepositReportRow, 0)

	query := `SELECT transaction_id, SUM(amount) AS total, currency
FROM deposit_records
GROUP BY transaction_id, currency`

	err := db.DB.Raw(query).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching deposit report: %v", err)
		return c.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Error fetching deposit report: " + err.Error(),
		})
	}

	return c.JSON(types.Response{
		Success: true,
		Data:    rows,
	})
}

// RunMessagingDigest aggregates last month's messaging activity and ships it
// to the notification service. Used by the monthly cron job and exposed for
// manual runs.
func (rc *ReportController) RunMessagingDigest(c *fiber.Ctx) error {
	now := time.Now()
	yearMonth := now.Format("2006-01")

	query := `SELECT COUNT(DISTINCT transaction_id) AS transactions,
       COUNT(*) AS messages,
       SUM(CASE WHEN read_at IS NULL THEN 1 ELSE 0 END) AS unread
FROM project_messages`

	if os.Getenv("DB_TYPE") == "POSTGRES_DSN" {
		query += " WHERE TO_CHAR(created_at, 'YYYY-MM') = ?"
	} else {
		query += " WHERE substr(created_at, 1, 7) = ?"
	}

	var digest dto.MessagingDigestDTO
	err := db.DB.Raw(query, yearMonth).Scan(&digest).Error
	if err != nil {
		log.Printf("Error computing messaging digest: %v", err)
		if c != nil {
			return c.Status(500).JSON(types.Response{
				Success: false,
				Error:   "Error computing messaging digest: " + err.Error(),
			})
		}
		return err
	}

	digest.Month = yearMonth
	if err := broker.SendMessagingDigest(&digest); err != nil {
		log.Printf("Error sending messaging digest: %v", err)
		if c != nil {
			return c.Status(500).JSON(types.Response{
				Success: false,
				Error:   "Error sending messaging digest: " + err.Error(),
			})
		}
		return err
	}

	if c == nil {
		return nil
	}
	return c.Status(202).JSON(types.Response{
		Success: true,
		Data:    "Messaging digest sent",
	})
}

func RunDigestCronJob(reportController *ReportController) {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(1).Month(1).At("23:59").Do(func() {
		err := reportController.RunMessagingDigest(nil)
		if err != nil {
			log.Printf("Error running messaging digest: %v", err)
		} else {
			log.Println("Messaging digest completed successfully.")
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule messaging digest: %v", err)
	}

	go scheduler.StartBlocking()
}

func InitReportRoutes(app *fiber.App) {
	reportController := NewReportController()

	app.Get("/reports/messaging", middlewares.Auth, middlewares.AdminCheck, reportController.GetMessagingReport)
	app.Get("/reports/deposits", middlewares.Auth, middlewares.AdminCheck, reportController.GetDepositReport)
	app.Post("/reports/messaging/digest", middlewares.Auth, middlewares.AdminCheck, reportController.RunMessagingDigest)

	RunDigestCronJob(reportController)
}
