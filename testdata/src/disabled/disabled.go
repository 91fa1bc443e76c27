package disabled

import "logging"

func run(l logging.Logger) {
	l.Info("no id")
	l.Warn(1, "one")
	l.Warn(1, "one again") // want `logger method 'Warn': duplicate event id 1`
}
