package unita

import "logging"

func a(l logging.Logger) {
	l.Info(42, "unit a")
}
