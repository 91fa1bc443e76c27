package logging

type EventID int32

type Logger interface {
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type Nop struct{}

func (Nop) Info(args ...any)  {}
func (Nop) Warn(args ...any)  {}
func (Nop) Error(args ...any) {}
