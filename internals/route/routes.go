package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	absenceRoute "checkkid_backend/internals/features/absences/route"
	childRoute "checkkid_backend/internals/features/children/child/route"
	permissionsRoute "checkkid_backend/internals/features/children/permissions/route"
	relationshipRoute "checkkid_backend/internals/features/children/relationship/route"
	healthRoute "checkkid_backend/internals/features/health/route"
	groupRoute "checkkid_backend/internals/features/kindergartens/group/route"
	kindergartenRoute "checkkid_backend/internals/features/kindergartens/kindergarten/route"
	noteRoute "checkkid_backend/internals/features/notes/route"
	parentRoute "checkkid_backend/internals/features/parents/route"
	presenceRoute "checkkid_backend/internals/features/presence/route"
	staffRoute "checkkid_backend/internals/features/staff/route"
	authRoute "checkkid_backend/internals/features/users/auth/route"
	authMw "checkkid_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// public: sign-in and token refresh
	public := app.Group("/api")
	authRoute.AuthRoutes(public, db)

	// everything else requires a valid session
	api := app.Group("/api", authMw.AuthMiddleware(db))
	authRoute.SecuredAuthRoutes(api, db)

	presenceRoute.PresenceRoutes(api, db)
	absenceRoute.AbsenceRoutes(api, db)

	childRoute.ChildRoutes(api, db)
	relationshipRoute.RelationshipRoutes(api, db)
	permissionsRoute.ChildPermissionsRoutes(api, db)

	parentRoute.ParentRoutes(api, db)
	staffRoute.StaffRoutes(api, db)

	kindergartenRoute.KindergartenRoutes(api, db)
	groupRoute.GroupRoutes(api, db)

	healthRoute.HealthDataRoutes(api, db)
	noteRoute.NoteRoutes(api, db)
}
