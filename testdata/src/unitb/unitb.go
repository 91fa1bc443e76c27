package unitb

import "logging"

func b(l logging.Logger) {
	l.Info(42, "unit b")
}
