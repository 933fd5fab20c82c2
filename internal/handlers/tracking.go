// internal/handlers/tracking.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/welolabs/welo-backend/internal/i18n"
	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

// TrackingHandler serves the two public endpoints hit from company
// websites: the badge beacon and the public verification page.
type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// POST /track/event
// Called by the badge script on every page view. No authentication; the
// tracking identifier is the only credential.
func (h *TrackingHandler) TrackEvent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var input services.ProcessEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&input)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if input.UserAgent == "" {
		input.UserAgent = c.Request.UserAgent()
	}
	input.IPAddress = clientIPFromRequest(c)

	result, err := h.trackingService.ProcessEvent(&input)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTrackingID) {
			utils.NotFoundResponse(c, "tracking")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyTrackingRecorded),
		"views_count": result.ViewsCount,
	})
}

// GET /badge/:trackingID
func (h *TrackingHandler) BadgePage(c *gin.Context) {
	trackingID := c.Param("trackingID")

	profile, err := h.trackingService.PublicBadge(trackingID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTrackingID) {
			utils.NotFoundResponse(c, "tracking")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, profile)
}

// clientIPFromRequest prefers the first hop in X-Forwarded-For since the
// service runs behind a proxy in production, falling back to the socket
// address.
func clientIPFromRequest(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}
