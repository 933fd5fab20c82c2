// internal/services/tracking_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/welolabs/welo-backend/internal/models"
)

func TestInstallationStatusNeverSeen(t *testing.T) {
	status, verified := installationStatus(nil, time.Now(), 15*time.Minute)

	assert.Equal(t, models.ScriptStatusPending, status)
	assert.False(t, verified)
}

func TestInstallationStatusRecentEvent(t *testing.T) {
	now := time.Now()
	lastEvent := now.Add(-5 * time.Minute)

	status, verified := installationStatus(&lastEvent, now, 15*time.Minute)

	assert.Equal(t, models.ScriptStatusActive, status)
	assert.True(t, verified)
}

func TestInstallationStatusEventOnWindowBoundary(t *testing.T) {
	now := time.Now()
	lastEvent := now.Add(-15 * time.Minute)

	status, verified := installationStatus(&lastEvent, now, 15*time.Minute)

	assert.Equal(t, models.ScriptStatusActive, status)
	assert.True(t, verified)
}

func TestInstallationStatusStaleEvent(t *testing.T) {
	now := time.Now()
	lastEvent := now.Add(-2 * time.Hour)

	status, verified := installationStatus(&lastEvent, now, 15*time.Minute)

	assert.Equal(t, models.ScriptStatusError, status)
	assert.False(t, verified)
}

func TestBrowserFromUserAgent(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36":           "chrome",
		"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0": "edge",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15":         "safari",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0":                                    "firefox",
		"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 OPR/106.0":                     "opera",
		"curl/8.4.0": "other",
	}

	for ua, expected := range cases {
		assert.Equal(t, expected, browserFromUserAgent(ua), "ua: %s", ua)
	}
}

func TestDeviceTypeFromUserAgent(t *testing.T) {
	cases := map[string]string{
		"": "",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148":           "mobile",
		"Mozilla/5.0 (Linux; Android 14; Pixel 8) Chrome/120.0 Mobile Safari/537.36":     "mobile",
		"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15":             "tablet",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0 Safari/537.36":           "desktop",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/17.0 Safari/605.1.15":   "desktop",
	}

	for ua, expected := range cases {
		assert.Equal(t, expected, deviceTypeFromUserAgent(ua), "ua: %s", ua)
	}
}
