package ses

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"stayos/internal/config"
	"stayos/internal/port"
)

var reminderText = texttemplate.Must(texttemplate.New("reminder.txt").Parse(
	`Hi {{.Name}},

This is a reminder that your invoice of {{.Amount}} is due on {{.DueDate}}.

View it here: {{.Link}}

If you have already paid, please ignore this email.

{{.Sender}}
`))

var reminderHTML = htmltemplate.Must(htmltemplate.New("reminder.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Payment reminder</h2>
  <p>Hi {{.Name}},</p>
  <p>Your invoice of <strong>{{.Amount}}</strong> is due on <strong>{{.DueDate}}</strong>.</p>
  <p><a href="{{.Link}}" style="color: #2563eb;">View invoice</a></p>
  <p style="color: #999; font-size: 12px;">If you have already paid, please ignore this email.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">{{.Sender}}</p>
</body>
</html>`))

type reminderView struct {
	Name    string
	Amount  string
	DueDate string
	Link    string
	Sender  string
}

type sesSender struct {
	client *sesv2.Client
	cfg    config.EmailConfig
}

// NewSESSender creates an SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{client: sesv2.NewFromConfig(awsCfg), cfg: cfg}, nil
}

func (s *sesSender) SendInvoiceReminder(ctx context.Context, r port.InvoiceReminder) error {
	view := reminderView{
		Name:    r.ToName,
		Amount:  fmt.Sprintf("%s %s", r.Amount.StringFixed(2), r.Currency),
		DueDate: r.DueDate,
		Link:    invoiceLink(s.cfg.FrontendURL, r.InvoiceID.String()),
		Sender:  s.cfg.FromName,
	}
	text, html, err := renderReminder(view)
	if err != nil {
		return err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(formatAddress(s.cfg.FromName, s.cfg.FromAddress)),
		Destination: &types.Destination{
			ToAddresses: []string{formatAddress(r.ToName, r.ToEmail)},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(fmt.Sprintf("Payment reminder: %s due %s", view.Amount, view.DueDate))},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html)},
					Text: &types.Content{Data: aws.String(text)},
				},
			},
		},
	}
	if s.cfg.ReplyTo != "" {
		input.ReplyToAddresses = []string{s.cfg.ReplyTo}
	}
	if s.cfg.ConfigurationSet != "" {
		input.ConfigurationSetName = aws.String(s.cfg.ConfigurationSet)
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func renderReminder(view reminderView) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := reminderText.Execute(&tb, view); err != nil {
		return "", "", fmt.Errorf("rendering reminder text: %w", err)
	}
	if err := reminderHTML.Execute(&hb, view); err != nil {
		return "", "", fmt.Errorf("rendering reminder html: %w", err)
	}
	return tb.String(), hb.String(), nil
}

// formatAddress renders "Name <addr>", quoting or encoding the name as needed.
func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return (&mail.Address{Name: name, Address: addr}).String()
}

func invoiceLink(frontendURL, invoiceID string) string {
	return strings.TrimRight(frontendURL, "/") + "/invoices/" + invoiceID
}
