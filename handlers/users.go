package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/models"
	"atrium/service"
)

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

// GetUsersInfo resolves a comma-separated list of principals to display
// names, keyed by principal.
func GetUsersInfo(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GetUsersInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		infos, err := svc.GetUsersInfo(c.Request.Context(), req.UserIDs)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, infos)
	}
}

func AddUserInfo(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddUserInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		info := models.UserInfo{FirstName: req.FirstName, LastName: req.LastName}
		if err := svc.AddUserInfo(c.Request.Context(), req.UserID, info); err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}
