package routes

import (
	"talentbridge.com/controllers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, workspaceController *controllers.WorkspaceController, adminController *controllers.AdminController) {

	controllers.InitWorkspaceRoutes(app, workspaceController)
	controllers.InitAdminRoutes(app, adminController)

	controllers.InitInstitutionRoutes(app)
	controllers.InitTenantRoutes(app)
	controllers.InitWaitlistRoutes(app)
	controllers.InitBlockedStudentRoutes(app)
	controllers.InitReportRoutes(app)
}
