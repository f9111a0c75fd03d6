package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"youthcouncil/cmd/middleware"
	"youthcouncil/internal/auth"
	"youthcouncil/internal/service"
)

type Routers struct {
	Service  service.Service
	Sessions *auth.Manager
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.POST("/auth/register", r.Service.Register)
	apiGroup.POST("/auth/login", r.Service.Login)

	apiGroup.GET("/programs", r.Service.GetAllPrograms)
	apiGroup.GET("/programs/:id", r.Service.GetProgram)

	apiGroup.POST("/feedback", middleware.OptionalAuth(r.Sessions), r.Service.CreateFeedback)

	authGroup := apiGroup.Group("")
	authGroup.Use(middleware.Auth(r.Sessions))

	authGroup.GET("/profile", r.Service.GetProfile)
	authGroup.PUT("/profile", r.Service.UpdateProfile)
	authGroup.POST("/programs/:id/apply", r.Service.Apply)
	authGroup.GET("/registrations/mine", r.Service.GetMyRegistrations)

	adminGroup := authGroup.Group("")
	adminGroup.Use(middleware.AdminOnly())

	adminGroup.POST("/programs", r.Service.CreateProgram)
	adminGroup.PUT("/programs/:id", r.Service.UpdateProgram)
	adminGroup.DELETE("/programs/:id", r.Service.DeleteProgram)
	adminGroup.POST("/programs/:id/attachment", r.Service.UploadAttachment)

	adminGroup.POST("/participants", r.Service.CreateParticipant)
	adminGroup.GET("/participants", r.Service.GetAllParticipants)
	adminGroup.GET("/participants/:id", r.Service.GetParticipant)
	adminGroup.PUT("/participants/:id", r.Service.UpdateParticipant)
	adminGroup.DELETE("/participants/:id", r.Service.DeleteParticipant)

	adminGroup.POST("/programs/:id/registrations", r.Service.AdminAddRegistration)
	adminGroup.GET("/programs/:id/registrations", r.Service.GetProgramRegistrations)
	adminGroup.PUT("/registrations/status", r.Service.SetRegistrationStatus)

	adminGroup.POST("/expenses", r.Service.CreateExpense)
	adminGroup.GET("/expenses", r.Service.GetAllExpenses)
	adminGroup.PUT("/expenses/:id", r.Service.UpdateExpense)
	adminGroup.DELETE("/expenses/:id", r.Service.DeleteExpense)
	adminGroup.GET("/budget/summary", r.Service.BudgetSummary)
	adminGroup.GET("/budget/report", r.Service.BudgetReport)

	adminGroup.GET("/feedback", r.Service.GetAllFeedback)
	adminGroup.PUT("/feedback/:id/status", r.Service.SetFeedbackStatus)

	return app
}
