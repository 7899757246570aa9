package event

import "time"

const (
	MailRequestsTopic = "mail.requests"

	MailKindAdminContact  = "admin_contact"
	MailKindCustomerAck   = "customer_ack"
	MailKindCustomerReply = "customer_reply"
)

// MailRequestEvent asks the mailer worker to deliver one email. Published by the
// contact handlers after the primary write committed; delivery is best-effort and
// never reported back to the original request.
type MailRequestEvent struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message,omitempty"`
}
