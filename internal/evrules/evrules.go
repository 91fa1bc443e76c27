package evrules

import "fmt"

// Rule represents an eventid rule code.
type Rule int

const (
	ruleInvalid Rule = iota

	EVT001MissingEventID
	EVT002DuplicateEventID
)

// Rules lists every rule in code order.
func Rules() []Rule {
	return []Rule{EVT001MissingEventID, EVT002DuplicateEventID}
}

// String returns the stable identifier of the rule.
// Example: "missing-event-id"
func (r Rule) String() string {
	switch r {
	case EVT001MissingEventID:
		return "missing-event-id"
	case EVT002DuplicateEventID:
		return "duplicate-event-id"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// Code returns the short numbered code of the rule.
func (r Rule) Code() string {
	switch r {
	case EVT001MissingEventID:
		return "EVT001"
	case EVT002DuplicateEventID:
		return "EVT002"
	default:
		return fmt.Sprintf("EVT%03d?", int(r))
	}
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case EVT001MissingEventID:
		return "Logging call must pass an event id as its first argument."
	case EVT002DuplicateEventID:
		return "Event id must be unique across logging calls of a package."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// Template returns the message template. Arguments are the method name and,
// for duplicates, the event code.
func (r Rule) Template() string {
	switch r {
	case EVT001MissingEventID:
		return "logger method '%s': missing event id"
	case EVT002DuplicateEventID:
		return "logger method '%s': duplicate event id %d"
	default:
		return "%v"
	}
}

// Severity of the rule. Both rules are advisory.
func (r Rule) Severity() Severity {
	return SeverityWarning
}

// UnmarshalText accepts either the identifier or the numbered code.
func (r *Rule) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for _, rule := range Rules() {
		if text == rule.String() || text == rule.Code() {
			*r = rule
			return nil
		}
	}

	return fmt.Errorf("unknown rule %q", text)
}

func (r Rule) MarshalText() ([]byte, error) {
	if r <= ruleInvalid || r > EVT002DuplicateEventID {
		return nil, fmt.Errorf("cannot marshal invalid Rule(%d)", r)
	}

	return []byte(r.String()), nil
}

// Canonical constructors.

func MissingEventID() Rule   { return EVT001MissingEventID }
func DuplicateEventID() Rule { return EVT002DuplicateEventID }

// Severity of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity-unknown(%d)", s)
	}
}
