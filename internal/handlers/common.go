// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/welolabs/welo-backend/internal/middleware"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/utils"
)

func roleHomeForResponse(role models.UserRole) string {
	return middleware.RoleHome(role)
}

// currentUserID parses the authenticated user id from the context. The
// second return reports whether a response was already written.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return userID, true
}
