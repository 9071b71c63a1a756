package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
)

type fakeEmailSender struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, input *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, input)
	return &ses.SendEmailOutput{}, f.err
}

type fakeSMSSender struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSMSSender) Publish(_ context.Context, input *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	return &sns.PublishOutput{}, f.err
}

func createTestConfig() config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.Email.Enabled = true
	cfg.Email.FromEmail = "quotes@example.com"
	cfg.SMS.Enabled = true
	cfg.AWS.Region = "ap-southeast-2"
	return cfg
}

func TestQuoteReady_BothChannels(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	n := NewWithClients(createTestConfig(), email, sms, logger.NewNoOpLogger())

	err := n.QuoteReady(context.Background(), "jo@example.com", "+61400000000", "SQ-AB12CD34", 650000)

	require.NoError(t, err)
	require.Len(t, email.inputs, 1)
	assert.Equal(t, "quotes@example.com", *email.inputs[0].Source)
	assert.Contains(t, email.inputs[0].Destination.ToAddresses, "jo@example.com")
	assert.Contains(t, *email.inputs[0].Message.Body.Text.Data, "6500.00")

	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+61400000000", *sms.inputs[0].PhoneNumber)
	assert.Contains(t, *sms.inputs[0].Message, "SQ-AB12CD34")
}

func TestQuoteReady_SkipsMissingDestinations(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	n := NewWithClients(createTestConfig(), email, sms, logger.NewNoOpLogger())

	err := n.QuoteReady(context.Background(), "", "", "SQ-AB12CD34", 650000)

	require.NoError(t, err)
	assert.Empty(t, email.inputs)
	assert.Empty(t, sms.inputs)
}

func TestQuoteReady_DisabledChannelsNeverSend(t *testing.T) {
	cfg := createTestConfig()
	cfg.Email.Enabled = false
	cfg.SMS.Enabled = false

	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	n := NewWithClients(cfg, email, sms, logger.NewNoOpLogger())

	err := n.QuoteReady(context.Background(), "jo@example.com", "+61400000000", "SQ-AB12CD34", 650000)

	require.NoError(t, err)
	assert.Empty(t, email.inputs)
	assert.Empty(t, sms.inputs)
}

func TestQuoteReady_EmailFailure(t *testing.T) {
	email := &fakeEmailSender{err: assert.AnError}
	sms := &fakeSMSSender{}
	n := NewWithClients(createTestConfig(), email, sms, logger.NewNoOpLogger())

	err := n.QuoteReady(context.Background(), "jo@example.com", "+61400000000", "SQ-AB12CD34", 650000)

	require.Error(t, err)
	stdErr, ok := errors.AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	// email failed before the SMS attempt
	assert.Empty(t, sms.inputs)
}
