package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// SMSSender delivers a short text message to a phone number. The production
// implementation sits behind the operator's SMS gateway; the service only
// depends on this interface.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// LogSMSSender writes outgoing messages to the log instead of delivering
// them. Used in development and in environments without an SMS gateway.
type LogSMSSender struct {
	logger *zerolog.Logger
}

func NewLogSMSSender(logger *zerolog.Logger) *LogSMSSender {
	return &LogSMSSender{logger: logger}
}

func (s *LogSMSSender) SendSMS(_ context.Context, phone, message string) error {
	s.logger.Info().Str("phone", phone).Str("message", message).Msg("sms delivery (log only)")
	return nil
}
