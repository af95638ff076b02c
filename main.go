package main

import (
	"talentbridge.com/routes"

	fiberSwagger "github.com/swaggo/fiber-swagger"

	"fmt"
	"os"
	"time"

	"talentbridge.com/cron"

	"talentbridge.com/middlewares"

	"talentbridge.com/broker"
	"talentbridge.com/controllers"
	"talentbridge.com/db"
	"talentbridge.com/dto"
	"talentbridge.com/services"
	"talentbridge.com/types"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	_ "talentbridge.com/docs"

	"log"
)

//	@title			TalentBridge Workspace Service
//	@version		1.0
//	@description	Project workspace and marketplace integration API

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Enter the token. Example: "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
func main() {
	err := godotenv.Load()
	if err != nil {
		panic("Error loading .env file")
	}

	broker.Connect(os.Getenv("MESSAGE_BROKER_NETWORK"), os.Getenv("MESSAGE_BROKER_HOST"))
	db.Init()

	cron.StartScheduler()

	broker.StartListeners()

	services.GetMarketplaceService().Initialize()
	marketplaceClient, err := services.GetMarketplaceService().GetClient()
	if err != nil {
		panic("Marketplace client not initialized: " + err.Error())
	}

	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		return c.Next()
	})

	routes.Setup(app,
		controllers.NewWorkspaceController(marketplaceClient),
		controllers.NewAdminController(marketplaceClient),
	)

	app.Get("/", middlewares.Auth, func(c *fiber.Ctx) error {
		response := types.Response{
			Success: true,
			Data:    "Hello, World!",
			Error:   "",
		}
		return c.JSON(response)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	ticker := time.NewTicker(5000 * time.Millisecond)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				checkUnsentWelcomes()
			}
		}
	}()

	port := os.Getenv("LISTEN_PATH")
	log.Printf("Swagger UI available at http://localhost%s/swagger/index.html", port)
	log.Fatal(app.Listen(port))

	ticker.Stop()
	done <- true
}

func checkUnsentWelcomes() {
	var pending []types.WaitlistEntry

	db.DB.Where("welcomed = ?", false).Find(&pending)
	if len(pending) == 0 {
		return
	}
	fmt.Printf("Found %v waitlist entries without a welcome\n", len(pending))

	for _, entry := range pending {
		welcome := dto.WaitlistWelcomeDTO{
			Email:      entry.Email,
			Role:       entry.Role,
			TenantSlug: entry.TenantSlug,
		}
		if err := broker.SendWaitlistWelcome(&welcome); err != nil {
			fmt.Printf("Failed to send welcome for %s: %v\n", entry.Email, err)
			continue
		}

		db.DB.Model(&entry).Update("welcomed", true)
	}
}
