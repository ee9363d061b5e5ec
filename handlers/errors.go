package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/service"
)

// renderError is the single place a service failure becomes an HTTP
// response. Unclassified faults are logged and flattened to the generic
// technical-error body; the raw error never reaches the caller.
func renderError(c *gin.Context, err error) {
	opErr := service.Classify(err)
	if opErr.Kind == service.KindTechnical {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, opErr.Unwrap())
	}
	c.JSON(statusFor(opErr.Kind), gin.H{"error": opErr.Message})
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
