package shapes

import (
	"strings"

	"logging"
)

const Boot logging.EventID = 7

type counter struct{ n int }

func (c *counter) Inc(n int) { c.n += n }

func shapes(l logging.Logger, nop logging.Nop, id logging.EventID, n int) {
	l.Info(Boot, "boot")
	l.Warn(logging.EventID(8), "converted")
	l.Warn(id, "dynamic id")
	l.Warn(n, "dynamic int")
	l.Info(int64(9), "int64") // want `logger method 'Info': missing event id`
	l.Error(7, "again")       // want `logger method 'Error': duplicate event id 7`
	l.Info()                  // want `logger method 'Info': missing event id`
	args := []any{1, "spread"}
	l.Info(args...)
	l.Info(1.5) // want `logger method 'Info': missing event id`
	nop.Warn(8, "concrete") // want `logger method 'Warn': duplicate event id 8`

	var c counter
	c.Inc(1)
	var b strings.Builder
	b.WriteString("x")
}
