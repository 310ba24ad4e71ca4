package service

import (
	"context"

	"github.com/rs/zerolog"
)

// logNotifier is the default Notifier: it records the event in the
// application log. Real delivery channels (in-app, email) plug in behind the
// same interface.
type logNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a Notifier that writes events to the log.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *logNotifier) Notify(_ context.Context, event Notification) {
	roles := make([]string, len(event.Roles))
	for i, r := range event.Roles {
		roles[i] = string(r)
	}

	n.logger.Info().
		Str("type", event.Type).
		Strs("roles", roles).
		Str("message", event.Message).
		Msg("notification dispatched")
}
