package roast

// Notifier shows blocking messages to the user.
type Notifier interface {
	// Alert displays msg.
	Alert(msg string)

	// Confirm asks a yes/no question and reports the answer.
	Confirm(msg string) bool
}

// logNotifier logs alerts and declines every confirmation, so nothing
// destructive happens without a real user.
type logNotifier struct{}

func (logNotifier) Alert(msg string) {
	Logger().Warn("roast: alert", "msg", msg)
}

func (logNotifier) Confirm(msg string) bool {
	Logger().Warn("roast: confirmation declined", "msg", msg)
	return false
}
