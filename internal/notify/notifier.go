// Package notify sends quote-ready notifications over email (SES) and
// SMS (SNS).
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
)

// EmailSender is the SES surface the notifier uses.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SMSSender is the SNS surface the notifier uses.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier delivers quote-ready messages on the configured channels.
// Disabled channels are skipped silently.
type Notifier struct {
	cfg    config.NotificationConfig
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

// New builds a notifier with real AWS clients.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, err
	}
	return &Notifier{
		cfg:    cfg,
		email:  ses.NewFromConfig(awsCfg),
		sms:    sns.NewFromConfig(awsCfg),
		logger: log,
	}, nil
}

// NewWithClients builds a notifier over injected senders.
func NewWithClients(cfg config.NotificationConfig, email EmailSender, sms SMSSender, log logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, email: email, sms: sms, logger: log}
}

// QuoteReady tells the customer their quote is available. Channels without
// a destination are skipped; a failure on any attempted channel is reported.
func (n *Notifier) QuoteReady(ctx context.Context, email, phone, reference string, finalInvestmentCents int64) error {
	if n.cfg.Email.Enabled && email != "" {
		if err := n.sendEmail(ctx, email, reference, finalInvestmentCents); err != nil {
			return err
		}
	}
	if n.cfg.SMS.Enabled && phone != "" {
		if err := n.sendSMS(ctx, phone, reference); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) sendEmail(ctx context.Context, to, reference string, finalInvestmentCents int64) error {
	subject := fmt.Sprintf("Your solar quote %s is ready", reference)
	body := fmt.Sprintf(
		"Your solar and battery quote %s is ready.\n\nEstimated investment: $%.2f\n",
		reference, float64(finalInvestmentCents)/100,
	)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		n.logger.WithError(err).Error("Quote email failed", map[string]interface{}{
			"reference": reference,
		})
		return errors.NewNotificationSendFailedError("email", err)
	}

	n.logger.Info("Quote email sent", map[string]interface{}{
		"reference": reference,
	})
	return nil
}

func (n *Notifier) sendSMS(ctx context.Context, phone, reference string) error {
	message := fmt.Sprintf("Your solar quote %s is ready. Check your email for the details.", reference)

	_, err := n.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	if err != nil {
		n.logger.WithError(err).Error("Quote SMS failed", map[string]interface{}{
			"reference": reference,
		})
		return errors.NewNotificationSendFailedError("sms", err)
	}

	n.logger.Info("Quote SMS sent", map[string]interface{}{
		"reference": reference,
	})
	return nil
}
