package scenario

import "logging"

func run(l logging.Logger) {
	l.Info("no id") // want `logger method 'Info': missing event id`
	l.Info(123, "a")
	l.Error(123, "b") // want `logger method 'Error': duplicate event id 123`
}
