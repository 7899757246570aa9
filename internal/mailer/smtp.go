package mailer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/wneessen/go-mail"

	"github.com/bengalspicy/rms/pkg/event"
)

// SMTPSender delivers mail requests over SMTP.
type SMTPSender struct {
	client  *mail.Client
	from    string
	adminTo string
	logger  apt.Logger
}

func NewSMTPSender(config *apt.Config, logger apt.Logger) (*SMTPSender, error) {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	host, _ := config.GetString("mail.host")
	if host == "" {
		return nil, fmt.Errorf("mail.host is not configured")
	}
	port, err := strconv.Atoi(config.GetStringOrDef("mail.port", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid mail.port: %w", err)
	}
	username, _ := config.GetString("mail.username")
	password, _ := config.GetString("mail.password")

	from := config.GetStringOrDef("mail.from", username)
	adminTo, _ := config.GetString("mail.admin_to")

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SMTP client: %w", err)
	}

	return &SMTPSender{
		client:  client,
		from:    from,
		adminTo: adminTo,
		logger:  logger,
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, evt event.MailRequestEvent) error {
	to, subject, body, err := buildMail(evt, s.adminTo)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(senderName, s.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("cannot send %s mail: %w", evt.Kind, err)
	}

	s.logger.Info("mail sent", "kind", evt.Kind, "to", to)
	return nil
}
