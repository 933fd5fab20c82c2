// internal/services/verification_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/welolabs/welo-backend/internal/models"
)

func mintFixed(id string) func() (string, error) {
	return func() (string, error) { return id, nil }
}

func mintFail() (string, error) {
	return "", errors.New("entropy exhausted")
}

func TestApplyApproveFromPending(t *testing.T) {
	company := &models.Company{Status: models.CompanyStatusPending}

	err := applyApprove(company, mintFixed("welo_abc123"))

	assert.NoError(t, err)
	assert.Equal(t, models.CompanyStatusApproved, company.Status)
	assert.NotNil(t, company.TrackingID)
	assert.Equal(t, "welo_abc123", *company.TrackingID)
	assert.Nil(t, company.RejectionReason)
}

func TestApplyApproveFromUnderReview(t *testing.T) {
	company := &models.Company{Status: models.CompanyStatusUnderReview}

	err := applyApprove(company, mintFixed("welo_abc123"))

	assert.NoError(t, err)
	assert.Equal(t, models.CompanyStatusApproved, company.Status)
}

func TestApplyApproveClearsPreviousRejectionReason(t *testing.T) {
	reason := "missing terms page"
	company := &models.Company{
		Status:          models.CompanyStatusUnderReview,
		RejectionReason: &reason,
	}

	err := applyApprove(company, mintFixed("welo_abc123"))

	assert.NoError(t, err)
	assert.Nil(t, company.RejectionReason)
}

func TestApplyApproveDoesNotRegenerateTrackingID(t *testing.T) {
	existing := "welo_original000000000000"
	company := &models.Company{
		Status:     models.CompanyStatusUnderReview,
		TrackingID: &existing,
	}

	err := applyApprove(company, mintFixed("welo_replacement"))

	assert.NoError(t, err)
	assert.Equal(t, existing, *company.TrackingID)
}

func TestApplyApproveRefusesTerminalStates(t *testing.T) {
	for _, status := range []models.CompanyStatus{
		models.CompanyStatusApproved,
		models.CompanyStatusRejected,
	} {
		company := &models.Company{Status: status}

		err := applyApprove(company, mintFixed("welo_abc123"))

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, status, company.Status)
		assert.Nil(t, company.TrackingID)
	}
}

func TestApplyApproveMintFailureLeavesCompanyApprovedButErrors(t *testing.T) {
	company := &models.Company{Status: models.CompanyStatusPending}

	err := applyApprove(company, mintFail)

	assert.Error(t, err)
	assert.Nil(t, company.TrackingID)
}

func TestApplyRejectStoresTrimmedReason(t *testing.T) {
	company := &models.Company{Status: models.CompanyStatusUnderReview}

	err := applyReject(company, "  incomplete company details  ")

	assert.NoError(t, err)
	assert.Equal(t, models.CompanyStatusRejected, company.Status)
	assert.NotNil(t, company.RejectionReason)
	assert.Equal(t, "incomplete company details", *company.RejectionReason)
}

func TestApplyRejectRefusesBlankReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		company := &models.Company{Status: models.CompanyStatusPending}

		err := applyReject(company, reason)

		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Equal(t, models.CompanyStatusPending, company.Status)
		assert.Nil(t, company.RejectionReason)
	}
}

func TestApplyRejectRefusesTerminalStates(t *testing.T) {
	for _, status := range []models.CompanyStatus{
		models.CompanyStatusApproved,
		models.CompanyStatusRejected,
	} {
		company := &models.Company{Status: status}

		err := applyReject(company, "some reason")

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, status, company.Status)
	}
}

func TestIsReviewable(t *testing.T) {
	assert.True(t, models.CompanyStatusPending.IsReviewable())
	assert.True(t, models.CompanyStatusUnderReview.IsReviewable())
	assert.False(t, models.CompanyStatusApproved.IsReviewable())
	assert.False(t, models.CompanyStatusRejected.IsReviewable())
}
