package heuristic

type AuditLogger struct{}

func (AuditLogger) Record(args ...any) {}

func audit(a AuditLogger) {
	a.Record("login") // want `logger method 'Record': missing event id`
	a.Record(3, "logout")
	a.Record(3, "again") // want `logger method 'Record': duplicate event id 3`
}
