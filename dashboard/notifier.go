package dashboard

import "github.com/rs/zerolog/log"

// Notifier shows transient feedback for finished actions.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the global logger.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Info().Msg(message)
}

func (LogNotifier) Error(message string) {
	log.Error().Msg(message)
}
