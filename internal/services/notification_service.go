// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/welolabs/welo-backend/internal/config"
	"github.com/welolabs/welo-backend/internal/models"
)

// NotificationService records verification lifecycle events in the admin
// feed and emails the affected company. Email delivery is best effort; a
// failed send is logged and never propagated.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) NotifyCompanySubmitted(company *models.Company) {
	s.createFeedEntry(
		models.NotificationTypeCompanySubmitted,
		"New verification request",
		fmt.Sprintf("%s has submitted a verification request", company.CompanyName),
		company,
	)
}

func (s *NotificationService) NotifyCompanyApproved(company *models.Company) {
	s.createFeedEntry(
		models.NotificationTypeCompanyApproved,
		"Company approved",
		fmt.Sprintf("%s has been successfully approved and verified", company.CompanyName),
		company,
	)

	body, err := s.renderTemplate(approvedEmailBody, map[string]interface{}{
		"CompanyName":  company.CompanyName,
		"DashboardURL": s.config.Frontend.BaseURL + "/dashboard",
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to render approval email")
		return
	}
	s.sendEmail(company.Email, "Your company has been verified", body)
}

func (s *NotificationService) NotifyCompanyRejected(company *models.Company) {
	s.createFeedEntry(
		models.NotificationTypeCompanyRejected,
		"Company rejected",
		fmt.Sprintf("%s has been rejected", company.CompanyName),
		company,
	)

	reason := ""
	if company.RejectionReason != nil {
		reason = *company.RejectionReason
	}

	body, err := s.renderTemplate(rejectedEmailBody, map[string]interface{}{
		"CompanyName":     company.CompanyName,
		"RejectionReason": reason,
		"VerificationURL": s.config.Frontend.BaseURL + "/verification",
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to render rejection email")
		return
	}
	s.sendEmail(company.Email, "Update on your verification request", body)
}

func (s *NotificationService) NotifyScriptActivated(company *models.Company) {
	s.createFeedEntry(
		models.NotificationTypeScriptActivated,
		"Tracking script activated",
		fmt.Sprintf("%s is now reporting page views", company.CompanyName),
		company,
	)
}

func (s *NotificationService) createFeedEntry(kind models.NotificationType, title, message string, company *models.Company) {
	notification := &models.AdminNotification{
		Type:      kind,
		Title:     title,
		Message:   message,
		CompanyID: &company.ID,
	}
	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create admin notification")
	}
}

func (s *NotificationService) renderTemplate(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, body string) {
	if s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("SMTP not configured, skipping email")
		return
	}

	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body,
	))

	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
	}
}

const approvedEmailBody = `
<h2>Congratulations, {{.CompanyName}}!</h2>
<p>Your company has been verified. You can now install your badge and start
collecting page views.</p>
<p><a href="{{.DashboardURL}}">Go to your dashboard</a></p>
`

const rejectedEmailBody = `
<h2>Verification update for {{.CompanyName}}</h2>
<p>Unfortunately your verification request was not approved.</p>
<p><strong>Reason:</strong> {{.RejectionReason}}</p>
<p>You can review and resubmit your details from the
<a href="{{.VerificationURL}}">verification page</a>.</p>
`
