package controllers

import (
	"net/http"
	"testing"
	"time"

	"talentbridge.com/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB backs db.DB with sqlmock so the raw report SQL can be asserted
// without a running Postgres.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDb,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	db.DB = gormDB
	return mock
}

func reportTestApp() *fiber.App {
	controller := NewReportController()

	app := fiber.New()
	app.Get("/reports/messaging", controller.GetMessagingReport)
	app.Get("/reports/deposits", controller.GetDepositReport)
	app.Post("/reports/messaging/digest", controller.RunMessagingDigest)

	return app
}

func TestGetMessagingReport(t *testing.T) {
	mock := setupMockDB(t)
	app := reportTestApp()

	rows := sqlmock.NewRows([]string{"transaction_id", "message_count", "unread_count"}).
		AddRow("tx-1", 12, 3).
		AddRow("tx-2", 4, 0)
	mock.ExpectQuery("SELECT transaction_id").WillReturnRows(rows)

	resp, _ := app.Test(jsonRequest(http.MethodGet, "/reports/messaging", nil))
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	response := parseResponse(t, resp)
	assert.True(t, response.Success)

	data := response.Data.([]interface{})
	assert.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "tx-1", first["transactionId"])
	assert.Equal(t, float64(12), first["messageCount"])
	assert.Equal(t, float64(3), first["unreadCount"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMessagingReport_DatabaseError(t *testing.T) {
	mock := setupMockDB(t)
	app := reportTestApp()

	mock.ExpectQuery("SELECT transaction_id").WillReturnError(gorm.ErrInvalidDB)

	resp, _ := app.Test(jsonRequest(http.MethodGet, "/reports/messaging", nil))
	defer resp.Body.Close()

	assert.Equal(t, 500, resp.StatusCode)
}

func TestGetDepositReport(t *testing.T) {
	mock := setupMockDB(t)
	app := reportTestApp()

	rows := sqlmock.NewRows([]string{"transaction_id", "total", "currency"}).
		AddRow("tx-1", "750.00", "USD")
	mock.ExpectQuery("SELECT transaction_id, SUM").WillReturnRows(rows)

	resp, _ := app.Test(jsonRequest(http.MethodGet, "/reports/deposits", nil))
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	response := parseResponse(t, resp)
	data := response.Data.([]interface{})
	assert.Len(t, data, 1)

	row := data[0].(map[string]interface{})
	assert.Equal(t, "USD", row["currency"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMessagingDigest(t *testing.T) {
	mock := setupMockDB(t)
	app := reportTestApp()

	yearMonth := time.Now().Format("2006-01")
	rows := sqlmock.NewRows([]string{"transactions", "messages", "unread"}).
		AddRow(3, 42, 7)
	mock.ExpectQuery("SELECT COUNT").WithArgs(yearMonth).WillReturnRows(rows)

	// Broker is not connected in tests; the send is a no-op and the digest
	// endpoint still reports acceptance.
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/reports/messaging/digest", nil))
	defer resp.Body.Close()

	assert.Equal(t, 202, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
