// internal/services/errors.go
package services

import "errors"

var (
	// Company record gateway
	ErrCompanyNotFound = errors.New("company not found")
	ErrNoCompany       = errors.New("no company registered for this account")
	ErrCompanyExists   = errors.New("a company is already registered for this account")
	ErrProfileLocked   = errors.New("approved company profiles can no longer be edited")
	ErrNotApproved     = errors.New("company is not approved")

	// Verification workflow
	ErrReasonRequired    = errors.New("rejection reason must not be blank")
	ErrInvalidTransition = errors.New("company is not in a reviewable state")

	// Tracking pipeline
	ErrUnknownTrackingID = errors.New("unknown tracking identifier")
)
