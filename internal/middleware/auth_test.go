// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/utils"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	suite.router = gin.New()
	suite.router.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "protected content")
	})
	suite.router.GET("/admin-only", AuthRequired(), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin content")
	})
}

func (suite *AuthMiddlewareTestSuite) tokenFor(role string) string {
	token, err := utils.GenerateJWT(uuid.New(), "user@example.com", role, 1)
	suite.Require().NoError(err)
	return token
}

func (suite *AuthMiddlewareTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "protected content")
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeaderIsUnauthorized() {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestGarbageTokenIsUnauthorized() {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestValidTokenPasses() {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+suite.tokenFor("company"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "protected content")
}

func (suite *AuthMiddlewareTestSuite) TestRoleMismatchNeverServesContent() {
	req, _ := http.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+suite.tokenFor("company"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "admin content")
	// The response points the caller at its own home.
	assert.Contains(suite.T(), w.Body.String(), "/dashboard")
}

func (suite *AuthMiddlewareTestSuite) TestAdminRolePasses() {
	req, _ := http.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+suite.tokenFor("admin"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "admin content")
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
