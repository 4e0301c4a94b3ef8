// File: internal/mail/mailer.go
// Package mail delivers transactional email through Resend.
package mail

import "context"

// Mailer is the outbound email surface the handlers depend on.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, verificationURL string) error
	SendResourceEmail(ctx context.Context, toEmail, name, title, downloadURL string) error
}

// FakeMailer substitutes Resend in tests.
type FakeMailer struct {
	SendVerificationEmailFn func(ctx context.Context, toEmail, verificationURL string) error
	SendResourceEmailFn     func(ctx context.Context, toEmail, name, title, downloadURL string) error
}

var _ Mailer = (*FakeMailer)(nil)

func (f *FakeMailer) SendVerificationEmail(ctx context.Context, toEmail, verificationURL string) error {
	if f.SendVerificationEmailFn != nil {
		return f.SendVerificationEmailFn(ctx, toEmail, verificationURL)
	}
	panic("unexpected SendVerificationEmail")
}

func (f *FakeMailer) SendResourceEmail(ctx context.Context, toEmail, name, title, downloadURL string) error {
	if f.SendResourceEmailFn != nil {
		return f.SendResourceEmailFn(ctx, toEmail, name, title, downloadURL)
	}
	panic("unexpected SendResourceEmail")
}
