package services

import (
	"context"

	"github.com/victor-romero-martinez/api-agendapp/internal/logs"
)

// Mailer delivers account emails.
type Mailer interface {
	SendVerification(ctx context.Context, email, link string) error
}

// LogMailer writes verification links to the application log instead of sending them.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendVerification(_ context.Context, email, link string) error {
	logs.Logger.WithField("email", email).Infof("Verification link: %s", link)
	return nil
}
