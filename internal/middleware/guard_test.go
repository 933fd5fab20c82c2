// internal/middleware/guard_test.go
package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/welolabs/welo-backend/internal/models"
)

func TestEvaluateGuardUnauthenticated(t *testing.T) {
	decision := EvaluateGuard(GuardInput{
		Authenticated: false,
		RequiredRole:  models.RoleCompany,
	})

	assert.Equal(t, OutcomeSignIn, decision.Outcome)
	assert.Equal(t, "/auth", decision.RedirectTo)
}

func TestEvaluateGuardUnauthenticatedBeatsEveryOtherCheck(t *testing.T) {
	// Authentication is checked before role and company state.
	decision := EvaluateGuard(GuardInput{
		Authenticated:       false,
		Role:                models.RoleAdmin,
		RequiredRole:        models.RoleCompany,
		RequireApproval:     true,
		RequireActiveScript: true,
	})

	assert.Equal(t, OutcomeSignIn, decision.Outcome)
}

func TestEvaluateGuardRoleMismatchRedirectsToOwnHome(t *testing.T) {
	// A company user hitting an admin surface goes to the company home.
	decision := EvaluateGuard(GuardInput{
		Authenticated: true,
		Role:          models.RoleCompany,
		RequiredRole:  models.RoleAdmin,
	})
	assert.Equal(t, OutcomeRoleHome, decision.Outcome)
	assert.Equal(t, "/dashboard", decision.RedirectTo)

	// An admin hitting a company surface goes to the admin home.
	decision = EvaluateGuard(GuardInput{
		Authenticated: true,
		Role:          models.RoleAdmin,
		RequiredRole:  models.RoleCompany,
	})
	assert.Equal(t, OutcomeRoleHome, decision.Outcome)
	assert.Equal(t, "/admin", decision.RedirectTo)
}

func TestEvaluateGuardRoleMismatchBeatsCompanyState(t *testing.T) {
	decision := EvaluateGuard(GuardInput{
		Authenticated:   true,
		Role:            models.RoleAdmin,
		RequiredRole:    models.RoleCompany,
		RequireApproval: true,
		Approved:        false,
	})

	assert.Equal(t, OutcomeRoleHome, decision.Outcome)
}

func TestEvaluateGuardApprovalPanel(t *testing.T) {
	decision := EvaluateGuard(GuardInput{
		Authenticated:   true,
		Role:            models.RoleCompany,
		RequiredRole:    models.RoleCompany,
		RequireApproval: true,
		Approved:        false,
	})

	assert.Equal(t, OutcomeApprovalPanel, decision.Outcome)
}

func TestEvaluateGuardScriptPanel(t *testing.T) {
	decision := EvaluateGuard(GuardInput{
		Authenticated:       true,
		Role:                models.RoleCompany,
		RequiredRole:        models.RoleCompany,
		RequireApproval:     true,
		Approved:            true,
		RequireActiveScript: true,
		ScriptActive:        false,
	})

	assert.Equal(t, OutcomeScriptPanel, decision.Outcome)
}

func TestEvaluateGuardAllowsWhenAllPredicatesHold(t *testing.T) {
	decision := EvaluateGuard(GuardInput{
		Authenticated:       true,
		Role:                models.RoleCompany,
		RequiredRole:        models.RoleCompany,
		RequireApproval:     true,
		Approved:            true,
		RequireActiveScript: true,
		ScriptActive:        true,
	})

	assert.Equal(t, OutcomeAllow, decision.Outcome)
	assert.Empty(t, decision.RedirectTo)
}

func TestEvaluateGuardNoRoleRequirement(t *testing.T) {
	decision := EvaluateGuard(GuardInput{
		Authenticated: true,
		Role:          models.RoleCompany,
	})

	assert.Equal(t, OutcomeAllow, decision.Outcome)
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, "/admin", RoleHome(models.RoleAdmin))
	assert.Equal(t, "/dashboard", RoleHome(models.RoleCompany))
	// Unknown roles land on the least privileged home.
	assert.Equal(t, "/dashboard", RoleHome(models.UserRole("other")))
}
