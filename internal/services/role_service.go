// internal/services/role_service.go
package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
)

// RoleService maps an authenticated user to its access role. Resolution is
// fail-open to the lowest privilege: any lookup failure yields the company
// role, never admin.
type RoleService struct {
	db     *gorm.DB
	cfg    *config.Config
	lookup func(userID uuid.UUID) (models.UserRole, error)
}

func NewRoleService(db *gorm.DB, cfg *config.Config) *RoleService {
	s := &RoleService{
		db:  db,
		cfg: cfg,
	}
	s.lookup = s.lookupProfileRole
	return s
}

func (s *RoleService) ResolveRole(user *models.User) models.UserRole {
	if user == nil {
		return models.RoleCompany
	}

	// The reserved administrative identity bypasses any stored profile.
	if user.Email == s.cfg.Admin.ReservedEmail {
		return models.RoleAdmin
	}

	stored, err := s.lookup(user.ID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to fetch user role, defaulting to company")
		}
		return models.RoleCompany
	}

	return normalizeRole(stored)
}

func (s *RoleService) lookupProfileRole(userID uuid.UUID) (models.UserRole, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		return "", err
	}
	return profile.Role, nil
}

// EnsureProfile creates the role record for a new user. The default role is
// company; admin profiles are provisioned out of band.
func (s *RoleService) EnsureProfile(user *models.User) error {
	profile := &models.Profile{
		ID:    user.ID,
		Email: user.Email,
		Role:  models.RoleCompany,
	}
	return s.db.Where("id = ?", user.ID).FirstOrCreate(profile).Error
}

// normalizeRole collapses anything that is not explicitly admin to company,
// so a corrupt or unexpected stored value can never grant elevated access.
func normalizeRole(stored models.UserRole) models.UserRole {
	if stored == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleCompany
}
