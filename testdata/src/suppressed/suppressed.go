package suppressed

import "logging"

//eventid:ignore
func legacy(l logging.Logger) {
	l.Info("no id")
	l.Info(5, "first")
}

func mixed(l logging.Logger) {
	//eventid:ignore missing-event-id
	l.Info("skipped")
	l.Warn(5, "kept")
	l.Warn(5, "dup ignored") //eventid:ignore duplicate-event-id
	l.Warn(5, "dup")         // want `logger method 'Warn': duplicate event id 5`
	l.Info("reported")       // want `logger method 'Info': missing event id`
	//eventid:ignore EVT999 // want `malformed suppression directive`
	l.Info(6)
}
