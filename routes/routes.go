package routes

import (
	"partner-portal-api/controllers"
	"partner-portal-api/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles the wired controllers plus the storage handle the auth
// middleware needs.
type API struct {
	DB             *gorm.DB
	Auth           *controllers.AuthController
	Organizations  *controllers.OrganizationController
	Projects       *controllers.ProjectController
	UpdateRequests *controllers.UpdateRequestController
	Statistics     *controllers.StatisticsController
}

func SetupRoutes(router *gin.Engine, api API) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/register", api.Auth.Register)
			public.POST("/login", api.Auth.Login)
			public.POST("/admin/login", api.Auth.AdminLogin)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Partner Portal API is running",
				})
			})
		}

		// Partner routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(api.DB))
		{
			protected.GET("/profile", api.Auth.GetProfile)
			protected.PUT("/change-password", api.Auth.ChangePassword)

			projects := protected.Group("/projects")
			{
				projects.GET("", api.Projects.List)
				projects.POST("", api.Projects.Create)
				projects.GET("/:id", api.Projects.Get)
				projects.PUT("/:id", api.Projects.Update)
				projects.DELETE("/:id", api.Projects.Delete)
				projects.GET("/:id/activities", api.Projects.ListActivities)

				// Partner-proposed edits go through the review queue.
				projects.POST("/:id/update-requests", api.UpdateRequests.Submit)
			}

			activities := protected.Group("/activities")
			{
				activities.POST("", api.Projects.CreateActivity)
				activities.DELETE("/:id", api.Projects.DeleteActivity)
			}
		}

		// Reviewer routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(api.DB), middleware.RequireAdmin())
		{
			organizations := admin.Group("/organizations")
			{
				organizations.GET("", api.Organizations.List)
				organizations.POST("", api.Organizations.CreateManaged)
				organizations.POST("/:id/activate", api.Organizations.Activate)
				organizations.POST("/:id/deactivate", api.Organizations.Deactivate)
				organizations.POST("/:id/reset-credential", api.Organizations.ResetCredential)
			}

			admin.GET("/projects", api.Projects.Search)

			updateRequests := admin.Group("/update-requests")
			{
				updateRequests.GET("", api.UpdateRequests.ListPending)
				updateRequests.POST("/:id/approve", api.UpdateRequests.Approve)
				updateRequests.POST("/:id/reject", api.UpdateRequests.Reject)
			}

			statistics := admin.Group("/statistics")
			{
				statistics.POST("/sites", api.Statistics.SaveSiteStats)
				statistics.GET("/sites", api.Statistics.ListSiteStats)
				statistics.POST("/province", api.Statistics.SaveProvinceStats)
				statistics.GET("/province", api.Statistics.ListProvinceStats)
			}
		}
	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
