package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/bengalspicy/rms/pkg/event"
)

const senderName = "Bengal Spicy Food"

// Sender delivers one mail request. Implementations are best-effort; the
// request path never waits on them.
type Sender interface {
	Send(ctx context.Context, evt event.MailRequestEvent) error
}

// buildMail renders the subject, recipient and HTML body for a mail request.
// adminTo receives the admin notification kind; everything else goes to the
// customer address on the event.
func buildMail(evt event.MailRequestEvent, adminTo string) (to, subject, body string, err error) {
	first := html.EscapeString(evt.FirstName)
	last := html.EscapeString(evt.LastName)
	msg := html.EscapeString(evt.Message)

	switch evt.Kind {
	case event.MailKindAdminContact:
		to = adminTo
		subject = "New Contact Request"
		body = fmt.Sprintf(
			"<h2>New Contact Request</h2><p><strong>Name:</strong> %s %s</p><p><strong>Email:</strong> %s</p><p>%s</p>",
			first, last, html.EscapeString(evt.Email), msg)
	case event.MailKindCustomerAck:
		to = evt.Email
		subject = "We received your message"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Thank you for contacting us. We have received your message and will get back to you shortly.</p><p>— Team Bengal Spicy Food</p>",
			first)
	case event.MailKindCustomerReply:
		to = evt.Email
		subject = "Reply to your message"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>%s</p><p>— Team Bengal Spicy Food</p>",
			first, msg)
	default:
		return "", "", "", fmt.Errorf("unknown mail kind: %s", evt.Kind)
	}

	if to == "" {
		return "", "", "", fmt.Errorf("mail kind %s has no recipient", evt.Kind)
	}
	return to, subject, body, nil
}
