package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/models"
	"atrium/service"
)

// AddAdminToProject grants administrator rights on a project to the
// account behind an email address. The bearer token travels in the
// payload, matching the original callable contract.
func AddAdminToProject(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.AddAdministrator(c.Request.Context(), req.UserToken, req.ProjectID, req.Email)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func RemoveAdminFromProject(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RemoveAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.RemoveAdministrator(c.Request.Context(), req.UserToken, req.ProjectID, req.AdminUserID)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
