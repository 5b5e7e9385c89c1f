package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/shared/server/middleware"
	"smartcv-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint the editor uses to show who is
// signed in and whether the identity is a guest.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"userId": userID,
		"guest":  strings.HasPrefix(userID, "guest:"),
	}
	if email := middleware.UserEmailFromContext(c); email != "" {
		response["email"] = email
	}
	if name := middleware.UserNameFromContext(c); name != "" {
		response["name"] = name
	}

	respond.JSON(c, http.StatusOK, response)
}
