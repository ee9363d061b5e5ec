package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/models"
	"atrium/service"
)

func SignUp(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.SignUp(c.Request.Context(), req)
		if err != nil {
			renderError(c, err)
			return
		}

		log.Printf("Signed up user: %s", result.UserID)
		c.JSON(http.StatusCreated, result)
	}
}

func LogIn(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LogInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.LogIn(c.Request.Context(), req)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
