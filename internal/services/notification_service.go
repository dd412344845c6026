// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	template := s.getEmailTemplate("password_reset")

	data := map[string]interface{}{
		"Name":      user.Name,
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.config.Portal.BaseURL, resetToken),
		"ExpiresIn": "1 hora",
	}

	subject := "Recuperação de senha"
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// SendProposalEmail delivers the public confirmation link to the prospect
// and marks the proposal as sent.
func (s *NotificationService) SendProposalEmail(proposal *models.Proposal) error {
	if proposal.ClientEmail == "" {
		return fmt.Errorf("proposal has no client email")
	}

	template := s.getEmailTemplate("proposal_link")

	data := map[string]interface{}{
		"ClientName":      proposal.ClientName,
		"PlanName":        proposal.PlanName,
		"Total":           fmt.Sprintf("R$ %.2f", proposal.Total),
		"ValidityDays":    proposal.ValidityDays,
		"ConfirmationURL": fmt.Sprintf("%s/confirmation/%s", s.config.Portal.BaseURL, proposal.ID),
	}

	subject := "Sua proposta está pronta - " + proposal.PlanName
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	if err := s.sendEmail(proposal.ClientEmail, subject, body); err != nil {
		return err
	}

	if err := s.db.Model(&models.Proposal{}).
		Where("id = ?", proposal.ID).
		Update("mail_send", true).Error; err != nil {
		return fmt.Errorf("failed to flag proposal as sent: %w", err)
	}
	proposal.MailSent = true

	return nil
}

// SendProposalAcceptedNotification tells the proposal owner the prospect
// confirmed. Failures are logged, never surfaced to the public flow.
func (s *NotificationService) SendProposalAcceptedNotification(proposal *models.Proposal) {
	var owner models.User
	if err := s.db.First(&owner, "id = ?", proposal.UserID).Error; err != nil {
		logrus.WithError(err).Warn("Proposal owner not found for accepted notification")
		return
	}

	template := s.getEmailTemplate("proposal_accepted")

	data := map[string]interface{}{
		"OwnerName":   owner.Name,
		"ClientName":  proposal.ClientName,
		"CompanyName": proposal.CompanyName,
		"Total":       fmt.Sprintf("R$ %.2f", proposal.Total),
		"ProposalURL": fmt.Sprintf("%s/proposals/%s", s.config.Portal.BaseURL, proposal.ID),
	}

	subject := "Proposta aceita - " + proposal.ClientName
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		logrus.WithError(err).Error("Failed to render accepted notification template")
		return
	}

	if err := s.sendEmail(owner.Email, subject, body); err != nil {
		logrus.WithError(err).Error("Failed to send accepted notification")
	}
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email delivery skipped (SMTP not configured)")
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"password_reset": {
			Subject: "Recuperação de senha",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Olá {{.Name}},</h2>
	<p>Recebemos uma solicitação para redefinir sua senha. Clique no link abaixo para continuar:</p>
	<a href="{{.ResetURL}}">Redefinir senha</a>
	<p>O link expira em {{.ExpiresIn}}. Se você não solicitou a redefinição, ignore este e-mail.</p>
</body>
</html>`,
		},
		"proposal_link": {
			Subject: "Sua proposta está pronta",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Olá {{.ClientName}},</h2>
	<p>Sua proposta do plano <strong>{{.PlanName}}</strong> está pronta, no valor de <strong>{{.Total}}</strong>.</p>
	<p>Revise os dados e confirme pelo link abaixo. A proposta é válida por {{.ValidityDays}} dias.</p>
	<a href="{{.ConfirmationURL}}">Revisar e confirmar proposta</a>
</body>
</html>`,
		},
		"proposal_accepted": {
			Subject: "Proposta aceita",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Olá {{.OwnerName}},</h2>
	<p>{{.ClientName}} ({{.CompanyName}}) aceitou a proposta no valor de <strong>{{.Total}}</strong>.</p>
	<a href="{{.ProposalURL}}">Ver proposta</a>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	// Default template
	return EmailTemplate{
		Subject: "Notificação",
		Body:    "<p>{{.Message}}</p>",
	}
}
