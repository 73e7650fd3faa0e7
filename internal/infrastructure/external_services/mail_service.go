package external_services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// smtp attribute
type EmailService struct {
	Host        string
	Port        string
	Username    string
	AppPassword string
	From        string
	logger      usecasecontract.IAppLogger
}

// NewEmailService returns an SMTP mailer. With an empty host, messages are only logged.
func NewEmailService(host, port, username, appPassword, from string, logger usecasecontract.IAppLogger) *EmailService {
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
		logger:      logger,
	}
}

// make sure EmailService implements contract.IEmailService.go
var _ contract.IEmailService = (*EmailService)(nil)

func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if es.Host == "" {
		es.logger.Infof("mail disabled, would send %q to %s:\n%s", subject, to, body)
		return nil
	}
	msg := es.buildMessage(to, subject, body)
	auth := smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)
	addr := fmt.Sprintf("%s:%s", es.Host, es.Port)
	if err := smtp.SendMail(addr, auth, es.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

// buildMessage renders a plain-text RFC 5322 message with line breaks removed from headers.
func (es *EmailService) buildMessage(to, subject, body string) []byte {
	clean := strings.NewReplacer("\r", "", "\n", "")
	return []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		clean.Replace(to), clean.Replace(es.From), clean.Replace(subject), body,
	))
}
