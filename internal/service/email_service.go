package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Message is one outgoing email
type Message struct {
	To      []string
	Cc      []string
	Subject string
	HTML    string
	Text    string
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	frontendURL string
	enabled     bool
	debug       bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, frontendURL string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:      client,
		fromEmail:   fromEmail,
		fromName:    fromName,
		frontendURL: frontendURL,
		enabled:     true,
		debug:       debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// Send delivers a message via SES. When the service is disabled the
// message is logged and dropped.
func (s *EmailService) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients for email %q", msg.Subject)
	}

	if !s.enabled {
		log.Printf("Skipping email send (service disabled): to=%s, subject=%s",
			strings.Join(msg.To, ","), msg.Subject)
		return nil
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: to=%s, cc=%s, subject=%s, html=%d bytes",
			strings.Join(msg.To, ","), strings.Join(msg.Cc, ","), msg.Subject, len(msg.HTML))
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	body := &types.Body{
		Html: &types.Content{
			Data:    aws.String(msg.HTML),
			Charset: aws.String("UTF-8"),
		},
	}
	if msg.Text != "" {
		body.Text = &types.Content{
			Data:    aws.String(msg.Text),
			Charset: aws.String("UTF-8"),
		}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: msg.To,
			CcAddresses: msg.Cc,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", strings.Join(msg.To, ","), err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", strings.Join(msg.To, ","), msg.Subject)
	return nil
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #667eea; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #667eea; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Password Reset Request</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>We received a request to reset the password for your Gyan Ghar account.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Reset Password</a>
			</p>
			<p>Or copy and paste this link into your browser:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p><strong>This link will expire in 30 minutes.</strong></p>
			<p>If you didn't request a password reset, you can safely ignore this email.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from Gyan Ghar. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, resetLink, resetLink)

	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset the password for your Gyan Ghar account.

Click the link below to reset your password:
%s

This link will expire in 30 minutes.

If you didn't request a password reset, you can safely ignore this email.

---
This is an automated email from Gyan Ghar. Please do not reply.
`, toName, resetLink)

	return s.Send(ctx, Message{
		To:      []string{toEmail},
		Subject: "Reset Your Gyan Ghar Password",
		HTML:    htmlBody,
		Text:    textBody,
	})
}

// SendPasswordChangeConfirmation notifies a user that their password changed.
// Failures are logged and swallowed so a mail outage never blocks the change.
func (s *EmailService) SendPasswordChangeConfirmation(ctx context.Context, toEmail, toName string) {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #667eea; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Password Changed</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>The password for your Gyan Ghar account was changed just now.</p>
			<p>If this was you, no further action is needed.</p>
			<p>If you did not make this change, contact an administrator immediately.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from Gyan Ghar. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName)

	textBody := fmt.Sprintf(`Hi %s,

The password for your Gyan Ghar account was changed just now.

If this was you, no further action is needed. If you did not make this
change, contact an administrator immediately.

---
This is an automated email from Gyan Ghar. Please do not reply.
`, toName)

	err := s.Send(ctx, Message{
		To:      []string{toEmail},
		Subject: "Your Gyan Ghar Password Was Changed",
		HTML:    htmlBody,
		Text:    textBody,
	})
	if err != nil {
		log.Printf("Failed to send password change confirmation to %s: %v", toEmail, err)
	}
}

// SendTestEmail sends a minimal message to verify SES configuration
func (s *EmailService) SendTestEmail(ctx context.Context, toEmail string) error {
	return s.Send(ctx, Message{
		To:      []string{toEmail},
		Subject: "Gyan Ghar Email Test",
		HTML:    "<p>This is a test email from the Gyan Ghar accountability system. Delivery is working.</p>",
		Text:    "This is a test email from the Gyan Ghar accountability system. Delivery is working.",
	})
}
