package multifile

import "logging"

func second(l logging.Logger) {
	l.Info(10, "second") // want `logger method 'Info': duplicate event id 10`
}
