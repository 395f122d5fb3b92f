package httpserver

import (
	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/portfolio/pkg/middleware/auth"
)

type Deps struct {
	Health   *HealthHTTP
	Auth     *AuthHTTP
	Projects *ProjectHTTP
	Skills   *SkillHTTP
	Messages *MessageHTTP
	Ratings  *RatingHTTP
	Gate     *middleware.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)

	api := e.Group("/api")
	requireAdmin := d.Gate.RequireAdmin

	api.POST("/login", d.Auth.Login)
	api.GET("/secure-data", d.Auth.SecureData, requireAdmin)

	projects := api.Group("/projects")
	projects.GET("", d.Projects.ListProjects)
	projects.GET("/search", d.Projects.SearchProjects)
	projects.GET("/:id", d.Projects.GetProject, requireAdmin)
	projects.POST("", d.Projects.CreateProject, requireAdmin)
	projects.PUT("/:id", d.Projects.UpdateProject, requireAdmin)
	projects.DELETE("/:id", d.Projects.DeleteProject, requireAdmin)

	api.GET("/skills", d.Skills.ListSkills)
	api.POST("/skills", d.Skills.CreateSkill)
	api.GET("/about-skills", d.Skills.ListAboutSkills)

	api.POST("/messages", d.Messages.SubmitMessage)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/messages", d.Messages.ListMessages)
	admin.DELETE("/messages", d.Messages.DeleteMessages)

	api.POST("/ratings", d.Ratings.SubmitRating)
	api.GET("/ratings/:projectId", d.Ratings.GetRatings)
}
