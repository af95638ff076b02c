package controllers

import (
	"net/http"
	"testing"

	"talentbridge.com/db"
	"talentbridge.com/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func institutionTestApp() *fiber.App {
	controller := NewInstitutionController()

	app := fiber.New()
	app.Get("/institutions", controller.GetAllInstitutions)
	app.Get("/institutions/:id", controller.GetInstitution)
	app.Post("/institutions", controller.CreateInstitution)
	app.Put("/institutions/:id", controller.UpdateInstitution)
	app.Delete("/institutions/:id", controller.DeleteInstitution)

	return app
}

func TestCreateInstitution(t *testing.T) {
	db.DB = setupTestDB()
	app := institutionTestApp()

	payload := CreateInstitutionRequest{
		Name:         "University of Novi Sad",
		Domain:       "uns.ac.rs",
		Country:      "RS",
		ContactEmail: "office@uns.ac.rs",
	}
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/institutions", payload))
	defer resp.Body.Close()

	assert.Equal(t, 201, resp.StatusCode)

	var stored types.Institution
	assert.NoError(t, db.DB.Where("domain = ?", "uns.ac.rs").First(&stored).Error)
	assert.Equal(t, "University of Novi Sad", stored.Name)
	assert.True(t, stored.Active)
}

func TestCreateInstitution_DuplicateDomain(t *testing.T) {
	db.DB = setupTestDB()
	app := institutionTestApp()

	db.DB.Create(&types.Institution{Name: "Existing", Domain: "uns.ac.rs", Active: true})

	payload := CreateInstitutionRequest{Name: "Duplicate", Domain: "uns.ac.rs"}
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/institutions", payload))
	defer resp.Body.Close()

	assert.Equal(t, 409, resp.StatusCode)
}

func TestCreateInstitution_InvalidDomain(t *testing.T) {
	db.DB = setupTestDB()
	app := institutionTestApp()

	payload := CreateInstitutionRequest{Name: "Bad", Domain: "not a domain"}
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/institutions", payload))
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestUpdateInstitution(t *testing.T) {
	db.DB = setupTestDB()
	app := institutionTestApp()

	institution := types.Institution{Name: "Old Name", Domain: "uns.ac.rs", Active: true}
	db.DB.Create(&institution)

	inactive := false
	payload := UpdateInstitutionRequest{Name: "New Name", Active: &inactive}
	resp, _ := app.Test(jsonRequest(http.MethodPut, "/institutions/1", payload))
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var reloaded types.Institution
	db.DB.First(&reloaded, institution.ID)
	assert.Equal(t, "New Name", reloaded.Name)
	assert.False(t, reloaded.Active)
	// Domain is immutable through the update endpoint
	assert.Equal(t, "uns.ac.rs", reloaded.Domain)
}

func TestDeleteInstitution_NotFound(t *testing.T) {
	db.DB = setupTestDB()
	app := institutionTestApp()

	resp, _ := app.Test(jsonRequest(http.MethodDelete, "/institutions/42", nil))
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)
}
