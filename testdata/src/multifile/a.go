package multifile

import "logging"

func first(l logging.Logger) {
	l.Info(10, "first")
}
