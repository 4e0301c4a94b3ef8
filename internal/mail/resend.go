// File: internal/mail/resend.go
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const defaultFrom = "QuantEdgeB <noreply@quantedgeb.co>"

// resendEmails narrows the Resend SDK surface for tests.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Resend sends through the Resend HTTP API.
type Resend struct {
	emails resendEmails
	from   string
}

var _ Mailer = (*Resend)(nil)

func NewResend(apiKey, from string) *Resend {
	if from == "" {
		from = defaultFrom
	}
	client := resend.NewClient(apiKey)
	return &Resend{emails: client.Emails, from: from}
}

func (r *Resend) send(ctx context.Context, to, subject, tmpl string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}
	_, err := r.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		Html:    buf.String(),
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", tmpl, err)
	}
	return nil
}

// SendVerificationEmail mails the signed verification link. The link expires
// after 24 hours.
func (r *Resend) SendVerificationEmail(ctx context.Context, toEmail, verificationURL string) error {
	return r.send(ctx, toEmail, "Verify Your QuantEdgeB Account", "verification.html", struct {
		VerificationURL string
	}{verificationURL})
}

// SendResourceEmail mails a free-resource download link.
func (r *Resend) SendResourceEmail(ctx context.Context, toEmail, name, title, downloadURL string) error {
	if downloadURL == "" {
		downloadURL = "https://quantedgeb.com"
	}
	return r.send(ctx, toEmail, "Your Free Download: "+title, "resource.html", struct {
		Name        string
		Title       string
		DownloadURL string
	}{name, title, downloadURL})
}
