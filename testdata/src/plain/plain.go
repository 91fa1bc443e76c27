package plain

type AuditLogger struct{}

func (AuditLogger) Record(args ...any) {}

func audit(a AuditLogger) {
	a.Record("login")
	a.Record(3, "logout")
	a.Record(3, "again")
}
