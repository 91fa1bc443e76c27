package generated

import "logging"

func manual(l logging.Logger) {
	l.Warn(1, "manual")
	l.Warn("manual") // want `logger method 'Warn': missing event id`
}
