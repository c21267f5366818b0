package email

import "context"

// Message is a fully rendered outbound email.
type Message struct {
	ToName   string
	ToEmail  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers rendered messages through some transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
