// internal/services/role_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
)

func newTestRoleService(lookup func(uuid.UUID) (models.UserRole, error)) *RoleService {
	cfg := &config.Config{}
	cfg.Admin.ReservedEmail = "admin@welobadge.com"
	return &RoleService{cfg: cfg, lookup: lookup}
}

func TestResolveRoleNilUserIsCompany(t *testing.T) {
	s := newTestRoleService(nil)
	assert.Equal(t, models.RoleCompany, s.ResolveRole(nil))
}

func TestResolveRoleReservedEmailIsAdmin(t *testing.T) {
	// The reserved email wins even when the stored profile says company.
	s := newTestRoleService(func(uuid.UUID) (models.UserRole, error) {
		return models.RoleCompany, nil
	})

	user := &models.User{Email: "admin@welobadge.com"}
	assert.Equal(t, models.RoleAdmin, s.ResolveRole(user))
}

func TestResolveRoleReservedEmailSkipsLookup(t *testing.T) {
	called := false
	s := newTestRoleService(func(uuid.UUID) (models.UserRole, error) {
		called = true
		return models.RoleCompany, nil
	})

	s.ResolveRole(&models.User{Email: "admin@welobadge.com"})
	assert.False(t, called)
}

func TestResolveRoleStoredAdmin(t *testing.T) {
	s := newTestRoleService(func(uuid.UUID) (models.UserRole, error) {
		return models.RoleAdmin, nil
	})

	user := &models.User{Email: "someone@example.com"}
	assert.Equal(t, models.RoleAdmin, s.ResolveRole(user))
}

func TestResolveRoleMissingProfileFailsOpenToCompany(t *testing.T) {
	s := newTestRoleService(func(uuid.UUID) (models.UserRole, error) {
		return "", gorm.ErrRecordNotFound
	})

	user := &models.User{Email: "someone@example.com"}
	assert.Equal(t, models.RoleCompany, s.ResolveRole(user))
}

func TestResolveRoleLookupErrorFailsOpenToCompany(t *testing.T) {
	s := newTestRoleService(func(uuid.UUID) (models.UserRole, error) {
		return "", errors.New("connection refused")
	})

	user := &models.User{Email: "someone@example.com"}
	assert.Equal(t, models.RoleCompany, s.ResolveRole(user))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, normalizeRole(models.RoleAdmin))
	assert.Equal(t, models.RoleCompany, normalizeRole(models.RoleCompany))
	assert.Equal(t, models.RoleCompany, normalizeRole(models.UserRole("")))
	assert.Equal(t, models.RoleCompany, normalizeRole(models.UserRole("superuser")))
}
