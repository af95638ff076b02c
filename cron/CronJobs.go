package cron

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"talentbridge.com/db"
	"talentbridge.com/types"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/robfig/cron/v3"
)

type RegistryInstitution struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Domain       string `json:"domain"`
	Country      string `json:"country"`
	ContactEmail string `json:"contactEmail"`
	Active       bool   `json:"active"`
}

type APIResponse struct {
	Success bool                  `json:"success"`
	Data    []RegistryInstitution `json:"data"`
}

func StartScheduler() {
	SyncInstitutions()

	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 * * * *", func() {
		SyncInstitutions()
	})

	_, err = c.AddFunc("0 0 3 * * *", func() {
		purgeStaleWaitlistEntries()
	})

	if err != nil {
		log.Errorf("Failed to start cron jobs:", err)
		return
	}

	c.Start()
}

// SyncInstitutions mirrors the institution registry of the platform user
// service into the local table. Existing rows are left alone; the registry is
// append-mostly and manual edits happen through the admin API.
func SyncInstitutions() {
	log.Info("Starting institution registry sync...")

	data, err := GetRegistryInstitutions()
	if err != nil {
		return
	}

	if len(data.Data) == 0 {
		return
	}

	created := syncInstitutionsFrom(data.Data)
	log.Infof("Institution registry sync completed, %d new institutions", created)
}

func syncInstitutionsFrom(entries []RegistryInstitution) int {
	created := 0
	for _, entry := range entries {
		newInstitution := registryToInstitution(entry)

		var existing types.Institution
		err := db.DB.Where("domain = ?", newInstitution.Domain).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if result := db.DB.Create(&newInstitution); result.Error != nil {
					log.Errorf("Error creating institution %v: %v", newInstitution, result.Error)
				} else {
					created++
					log.Infof("Created new institution: %v", newInstitution.Domain)
				}
			} else {
				log.Errorf("Error checking institution existence: %v", err)
			}
		}
	}
	return created
}

func registryToInstitution(entry RegistryInstitution) types.Institution {
	institution := types.Institution{
		Name:         entry.Name,
		Domain:       entry.Domain,
		Country:      entry.Country,
		ContactEmail: entry.ContactEmail,
		Active:       entry.Active,
	}
	return institution
}

// purgeStaleWaitlistEntries drops welcomed entries older than 180 days.
func purgeStaleWaitlistEntries() {
	cutoff := time.Now().AddDate(0, 0, -180)

	result := db.DB.Where("welcomed = ? AND created_at < ?", true, cutoff).Delete(&types.WaitlistEntry{})
	if result.Error != nil {
		log.Errorf("Error purging stale waitlist entries: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Infof("Purged %d stale waitlist entries", result.RowsAffected)
	}
}

func GetRegistryInstitutions() (*APIResponse, error) {
	basePath := os.Getenv("USER_SERVICE")
	url := basePath + "/api/institutions"

	resp, err := http.Get(url)
	if err != nil {
		log.Infof("Failed to fetch %s: %v\n", url, err)
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {

		}
	}(resp.Body)

	if resp.StatusCode != 200 {
		log.Infof("Error fetching %s: HTTP %d\n", url, resp.StatusCode)
		return nil, errors.New("institution registry returned non-200")
	}

	var apiResponse *APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		log.Infof("Failed to parse JSON: %v\n", err)
		return nil, err
	}
	return apiResponse, nil
}
