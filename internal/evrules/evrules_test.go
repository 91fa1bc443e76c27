package evrules

import (
	"fmt"
	"testing"
)

func TestRule_Text(t *testing.T) {
	tests := []struct {
		rule Rule
		id   string
		code string
	}{
		{rule: MissingEventID(), id: "missing-event-id", code: "EVT001"},
		{rule: DuplicateEventID(), id: "duplicate-event-id", code: "EVT002"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := tt.rule.String(); got != tt.id {
				t.Errorf("String() = %q, want %q", got, tt.id)
			}
			if got := tt.rule.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if tt.rule.Severity() != SeverityWarning {
				t.Errorf("severity = %s, want warning", tt.rule.Severity())
			}

			for _, text := range []string{tt.id, tt.code} {
				var r Rule
				if err := r.UnmarshalText([]byte(text)); err != nil {
					t.Fatalf("unmarshal %q: %s", text, err)
				}
				if r != tt.rule {
					t.Errorf("unmarshal %q = %v, want %v", text, r, tt.rule)
				}
			}

			raw, err := tt.rule.MarshalText()
			if err != nil {
				t.Fatalf("marshal: %s", err)
			}
			if string(raw) != tt.id {
				t.Errorf("MarshalText() = %q, want %q", raw, tt.id)
			}
		})
	}
}

func TestRule_UnmarshalUnknown(t *testing.T) {
	var r Rule
	if err := r.UnmarshalText([]byte("no-such-rule")); err == nil {
		t.Fatal("error was expected for unknown rule")
	}
	if _, err := ruleInvalid.MarshalText(); err == nil {
		t.Fatal("error was expected for invalid rule")
	}
}

func TestRule_Template(t *testing.T) {
	if got := fmt.Sprintf(MissingEventID().Template(), "Info"); got != "logger method 'Info': missing event id" {
		t.Errorf("unexpected missing message %q", got)
	}
	if got := fmt.Sprintf(DuplicateEventID().Template(), "Error", 123); got != "logger method 'Error': duplicate event id 123" {
		t.Errorf("unexpected duplicate message %q", got)
	}
}
