package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"callcenter/internal/authz"
	"callcenter/internal/handlers"
	"callcenter/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	retailerHandler *handlers.RetailerHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// ---- protected
	p := r.Group("/", middleware.AuthMiddleware(jwtSecret))
	elevated := middleware.RequireRoles(authz.RoleSupervisor, authz.RoleAdmin)

	p.GET("/me", authHandler.Me)

	// USERS
	users := p.Group("/users")
	{
		users.POST("", middleware.RequireRoles(authz.RoleAdmin), userHandler.CreateUser)
		users.GET("", elevated, userHandler.ListUsers)
	}

	// TASKS
	tasks := p.Group("/tasks")
	{
		tasks.POST("", elevated, taskHandler.Create)
		tasks.GET("", taskHandler.GetAll)
		tasks.GET("/summary", taskHandler.Summary)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.GET("/:id/calls", taskHandler.History)
		tasks.POST("/:id/assign", elevated, taskHandler.Assign)
		tasks.DELETE("/:id", elevated, taskHandler.Delete)
		tasks.POST("/:id/called", taskHandler.MarkAsCalled)
		tasks.POST("/:id/complete", taskHandler.Complete)
	}

	// RETAILERS
	retailers := p.Group("/retailers")
	{
		retailers.GET("", retailerHandler.List)
		retailers.POST("", elevated, retailerHandler.Create)
		retailers.GET("/:retailer_id", retailerHandler.Get)
		retailers.POST("/:retailer_id/call", retailerHandler.LogCall)
	}

	// REPORTS
	reports := p.Group("/reports")
	{
		reports.GET("/summary", reportHandler.GetSummary)
		reports.GET("/tasks.csv", reportHandler.ExportCSV)
		reports.GET("/agents/:id/pdf", reportHandler.AgentPDF)
		reports.POST("/agents/:id/email", elevated, reportHandler.EmailAgentReport)
	}

	return r
}
