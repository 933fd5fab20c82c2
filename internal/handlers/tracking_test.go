// internal/handlers/tracking_test.go
package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

func contextWithRequest(headers map[string]string, remoteAddr string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/track/event", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

// The badge script posts camelCase field names; the endpoint must accept
// them as-is or no deployed script ever activates.
func TestTrackEventBindsBadgeScriptPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"trackingId":"welo_abc123","pageUrl":"https://example.com/pricing","referrer":"https://google.com","userAgent":"Mozilla/5.0"}`
	c.Request = httptest.NewRequest("POST", "/track/event", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var input services.ProcessEventInput
	assert.NoError(t, c.ShouldBindJSON(&input))
	assert.Equal(t, "welo_abc123", input.TrackingID)
	assert.Equal(t, "https://example.com/pricing", input.PageURL)
	assert.Equal(t, "https://google.com", input.Referrer)
	assert.Equal(t, "Mozilla/5.0", input.UserAgent)
	assert.NoError(t, utils.ValidateStruct(&input))
}

func TestTrackEventRejectsPayloadWithoutTrackingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"pageUrl":"https://example.com"}`
	c.Request = httptest.NewRequest("POST", "/track/event", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var input services.ProcessEventInput
	assert.NoError(t, c.ShouldBindJSON(&input))
	assert.Error(t, utils.ValidateStruct(&input))
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c := contextWithRequest(map[string]string{
		"X-Forwarded-For": "203.0.113.7",
	}, "10.0.0.1:54321")

	assert.Equal(t, "203.0.113.7", clientIPFromRequest(c))
}

func TestClientIPTakesFirstForwardedHop(t *testing.T) {
	c := contextWithRequest(map[string]string{
		"X-Forwarded-For": "203.0.113.7, 70.41.3.18, 150.172.238.178",
	}, "10.0.0.1:54321")

	assert.Equal(t, "203.0.113.7", clientIPFromRequest(c))
}

func TestClientIPFallsBackToSocketAddress(t *testing.T) {
	c := contextWithRequest(nil, "192.0.2.9:54321")

	assert.Equal(t, "192.0.2.9", clientIPFromRequest(c))
}
