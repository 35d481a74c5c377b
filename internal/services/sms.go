package services

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/config"
)

// SMSGateway delivers a text message to an E.164 phone number and returns
// the gateway's message ID.
type SMSGateway interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioGateway sends SMS via the Twilio REST API.
type TwilioGateway struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

// NewTwilioGateway creates a Twilio-backed SMS gateway.
func NewTwilioGateway(cfg config.TwilioConfig, log *zap.Logger) (*TwilioGateway, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioGateway{
		client: client,
		from:   cfg.From,
		log:    log,
	}, nil
}

// Send delivers an SMS. The Twilio SDK manages its own HTTP timeouts; ctx is
// accepted for interface parity with other gateway implementations.
func (t *TwilioGateway) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return "", fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	t.log.Debug("SMS delivered", zap.String("to", to), zap.String("sid", sid))
	return sid, nil
}

// UnconfiguredGateway stands in when no SMS credentials are present. Every
// delivery attempt fails, which surfaces upstream as a DeliveryError.
type UnconfiguredGateway struct{}

func (UnconfiguredGateway) Send(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("SMS gateway is not configured")
}
