package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/middleware"
	"atrium/models"
	"atrium/service"
)

// CreateProject creates a project with the authenticated caller as
// creator and sole administrator. Runs behind the auth middleware.
func CreateProject(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		callerID := c.GetString(middleware.ContextUserID)

		project, err := svc.CreateProject(c.Request.Context(), callerID, req.Name)
		if err != nil {
			renderError(c, err)
			return
		}

		log.Printf("Project created: %s by %s", project.ID, callerID)
		c.JSON(http.StatusCreated, project)
	}
}

// ListProjects returns the projects the caller administers, with display
// names for every referenced principal.
func ListProjects(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetString(middleware.ContextUserID)

		result, err := svc.ListProjects(c.Request.Context(), callerID)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
