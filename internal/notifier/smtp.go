package notifier

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"text/template"

	"api/internal/models"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var mailTemplates embed.FS

type SMTPNotifier struct {
	config    models.MailerConfiguration
	templates *template.Template
}

func NewSMTPNotifier(config models.MailerConfiguration) *SMTPNotifier {
	templates, err := template.ParseFS(mailTemplates, "templates/*.tmpl")
	if err != nil {
		zap.L().Fatal("Failed to parse mail templates", zap.Error(err))
	}
	return &SMTPNotifier{config: config, templates: templates}
}

func (s *SMTPNotifier) NotifyFromTemplate(
	to string,
	subject string,
	templateName string,
	data any,
) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName+".tmpl", data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", templateName, err)
	}

	message := mail.NewMsg()
	if err := message.From(s.config.Sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body.String())

	options := []mail.Option{
		mail.WithPort(s.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.Username),
		mail.WithPassword(s.config.Password),
	}

	if s.config.EnableTLS {
		options = append(options, mail.WithSSLPort(false))
	} else {
		options = append(options, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.config.SkipVerifyTLS {
		options = append(options, mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true})) //nolint:gosec // opt-in for dev setups
	}

	client, err := mail.NewClient(s.config.Host, options...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err = client.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	zap.L().Info("Notification sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("template", templateName),
	)

	return nil
}
