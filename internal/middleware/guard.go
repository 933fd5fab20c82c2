// internal/middleware/guard.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/welolabs/welo-backend/internal/i18n"
	"github.com/welolabs/welo-backend/internal/models"
	"github.com/welolabs/welo-backend/internal/services"
	"github.com/welolabs/welo-backend/internal/utils"
)

// GuardOutcome is the access-control decision for a protected surface.
type GuardOutcome string

const (
	// OutcomeAllow serves the protected content.
	OutcomeAllow GuardOutcome = "allow"
	// OutcomeSignIn redirects unauthenticated callers to authentication.
	OutcomeSignIn GuardOutcome = "sign_in"
	// OutcomeRoleHome redirects the caller to their own role's home.
	OutcomeRoleHome GuardOutcome = "role_home"
	// OutcomeApprovalPanel blocks with the pending-approval panel.
	OutcomeApprovalPanel GuardOutcome = "approval_panel"
	// OutcomeScriptPanel blocks with the script-setup panel.
	OutcomeScriptPanel GuardOutcome = "script_panel"
)

type GuardInput struct {
	Authenticated bool
	Role          models.UserRole
	RequiredRole  models.UserRole

	RequireApproval bool
	Approved        bool

	RequireActiveScript bool
	ScriptActive        bool
}

type GuardDecision struct {
	Outcome    GuardOutcome
	RedirectTo string
}

// RoleHome returns the landing path for a role.
func RoleHome(role models.UserRole) string {
	if role == models.RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}

// EvaluateGuard decides access for a protected surface. Checks are
// ordered: authentication first, then role, then the company-state
// predicates. A blocked caller never falls through to the content.
func EvaluateGuard(in GuardInput) GuardDecision {
	if !in.Authenticated {
		return GuardDecision{Outcome: OutcomeSignIn, RedirectTo: "/auth"}
	}
	if in.RequiredRole != "" && in.Role != in.RequiredRole {
		return GuardDecision{Outcome: OutcomeRoleHome, RedirectTo: RoleHome(in.Role)}
	}
	if in.RequireApproval && !in.Approved {
		return GuardDecision{Outcome: OutcomeApprovalPanel}
	}
	if in.RequireActiveScript && !in.ScriptActive {
		return GuardDecision{Outcome: OutcomeScriptPanel}
	}
	return GuardDecision{Outcome: OutcomeAllow}
}

// ApprovalRequired blocks company users whose company has not been
// approved yet. Runs after AuthRequired.
func ApprovalRequired(companyService *services.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		flags, ok := loadStatusFlags(c, companyService)
		if !ok {
			return
		}

		decision := EvaluateGuard(GuardInput{
			Authenticated:   true,
			RequireApproval: true,
			Approved:        flags.IsApproved,
		})
		if decision.Outcome != OutcomeAllow {
			lang := utils.GetLangFromContext(c)
			utils.ForbiddenResponse(c, "COMPANY_NOT_APPROVED", i18n.T(lang, i18n.KeyCompanyNotApproved), gin.H{
				"status":           flags.Status,
				"rejection_reason": flags.RejectionReason,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActiveScriptRequired blocks analytics surfaces until the tracking
// script has been verified as active. Runs after AuthRequired.
func ActiveScriptRequired(companyService *services.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		flags, ok := loadStatusFlags(c, companyService)
		if !ok {
			return
		}

		decision := EvaluateGuard(GuardInput{
			Authenticated:       true,
			RequireActiveScript: true,
			ScriptActive:        flags.ScriptStatus == models.ScriptStatusActive,
		})
		if decision.Outcome != OutcomeAllow {
			lang := utils.GetLangFromContext(c)
			utils.ForbiddenResponse(c, "SCRIPT_NOT_ACTIVE", i18n.T(lang, i18n.KeyScriptNotActive), gin.H{
				"script_status": flags.ScriptStatus,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func loadStatusFlags(c *gin.Context, companyService *services.CompanyService) (*services.CompanyStatusFlags, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		c.Abort()
		return nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		c.Abort()
		return nil, false
	}

	flags, err := companyService.StatusFlags(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		c.Abort()
		return nil, false
	}
	return flags, true
}
