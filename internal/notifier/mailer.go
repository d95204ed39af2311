package notifier

import (
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/azurvoyages/tours-api/internal/config"
)

// Mailer sends transactional mail over SMTP. Synchronous,
// at-most-once: any transport failure is returned to the caller,
// nothing is queued or retried.
type Mailer struct {
	client   *mail.Client
	from     string
	fromName string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host not configured")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Mailer{
		client:   client,
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
	}, nil
}

func (m *Mailer) SendEmail(to, subject, body string, isHTML bool, cc, bcc string) error {
	msg := mail.NewMsg()

	if m.fromName != "" {
		if err := msg.FromFormat(m.fromName, m.from); err != nil {
			return err
		}
	} else {
		if err := msg.From(m.from); err != nil {
			return err
		}
	}
	if err := msg.To(to); err != nil {
		return err
	}
	if cc != "" {
		if err := msg.Cc(cc); err != nil {
			return err
		}
	}
	if bcc != "" {
		if err := msg.Bcc(bcc); err != nil {
			return err
		}
	}

	msg.Subject(subject)
	if isHTML {
		msg.SetBodyString(mail.TypeTextHTML, body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, body)
	}

	return m.client.DialAndSend(msg)
}
