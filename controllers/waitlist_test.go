package controllers

import (
	"net/http"
	"testing"

	"talentbridge.com/db"
	"talentbridge.com/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func waitlistTestApp() *fiber.App {
	controller := NewWaitlistController()

	app := fiber.New()
	app.Post("/waitlist", controller.JoinWaitlist)
	app.Get("/waitlist", controller.GetWaitlist)
	app.Delete("/waitlist/:id", controller.RemoveWaitlistEntry)

	return app
}

func TestJoinWaitlist(t *testing.T) {
	db.DB = setupTestDB()
	app := waitlistTestApp()

	payload := JoinWaitlistRequest{Email: "alice@example.com", Role: "student", TenantSlug: "acme"}
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/waitlist", payload))
	defer resp.Body.Close()

	assert.Equal(t, 201, resp.StatusCode)

	var entry types.WaitlistEntry
	assert.NoError(t, db.DB.Where("email = ?", "alice@example.com").First(&entry).Error)
	assert.False(t, entry.Welcomed)

	_, err := uuid.Parse(entry.ID)
	assert.NoError(t, err)
}

func TestJoinWaitlist_DuplicateEmail(t *testing.T) {
	db.DB = setupTestDB()
	app := waitlistTestApp()

	db.DB.Create(&types.WaitlistEntry{ID: uuid.NewString(), Email: "alice@example.com", Role: "student"})

	payload := JoinWaitlistRequest{Email: "alice@example.com", Role: "partner"}
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/waitlist", payload))
	defer resp.Body.Close()

	assert.Equal(t, 409, resp.StatusCode)
}

func TestJoinWaitlist_InvalidRole(t *testing.T) {
	db.DB = setupTestDB()
	app := waitlistTestApp()

	payload := JoinWaitlistRequest{Email: "bob@example.com", Role: "wizard"}
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/waitlist", payload))
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetWaitlist_TenantFilter(t *testing.T) {
	db.DB = setupTestDB()
	app := waitlistTestApp()

	db.DB.Create(&types.WaitlistEntry{ID: uuid.NewString(), Email: "a@example.com", Role: "student", TenantSlug: "acme"})
	db.DB.Create(&types.WaitlistEntry{ID: uuid.NewString(), Email: "b@example.com", Role: "student", TenantSlug: "other"})

	resp, _ := app.Test(jsonRequest(http.MethodGet, "/waitlist?tenant=acme", nil))
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	response := parseResponse(t, resp)
	entries := response.Data.([]interface{})
	assert.Len(t, entries, 1)
}

func TestRemoveWaitlistEntry(t *testing.T) {
	db.DB = setupTestDB()
	app := waitlistTestApp()

	entry := types.WaitlistEntry{ID: uuid.NewString(), Email: "a@example.com", Role: "student"}
	db.DB.Create(&entry)

	resp, _ := app.Test(jsonRequest(http.MethodDelete, "/waitlist/"+entry.ID, nil))
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	db.DB.Model(&types.WaitlistEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)

	resp, _ = app.Test(jsonRequest(http.MethodDelete, "/waitlist/not-a-uuid", nil))
	resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}
