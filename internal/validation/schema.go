// Package validation implements the declarative per-entity field schemas
// that gate wizard step transitions. Validation never throws: a schema
// produces a per-field result the form renders inline, and the wizard
// orchestrator refuses to advance while the result is invalid.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKind selects the format check applied after the required check.
type FieldKind int

const (
	Text FieldKind = iota
	Email
	Phone
	OneOf
)

// Rule describes the constraints on a single form field.
type Rule struct {
	Field    string
	Label    string
	Kind     FieldKind
	Required bool
	MinLen   int
	MaxLen   int
	Choices  []string // for OneOf
}

// Schema is an ordered rule set for one entity's sub-form.
type Schema struct {
	Entity string
	Rules  []Rule
}

// Result maps field names to their first violation message. An empty
// result means the form passed.
type Result map[string]string

// Valid reports whether no field was rejected.
func (r Result) Valid() bool { return len(r) == 0 }

// Error summarises the result as a single error for callers that need
// one, listing the offending fields.
func (r Result) Error() error {
	if r.Valid() {
		return nil
	}
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	return fmt.Errorf("validation failed for %s", strings.Join(fields, ", "))
}

// Deliberately permissive: local@domain.tld with no whitespace. The
// backend remains the authority on deliverability.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Digits, spaces and a few separators; 6 digits minimum.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{4,}[0-9]$`)

// ValidEmail re-checks an address against the RFC-lite pattern. Exposed
// separately because the user dialog re-validates email independently of
// its schema.
func ValidEmail(addr string) bool {
	return emailRe.MatchString(strings.TrimSpace(addr))
}

// Validate runs every rule against the values and collects the first
// violation per field.
func (s Schema) Validate(values map[string]string) Result {
	res := Result{}
	for _, rule := range s.Rules {
		value := strings.TrimSpace(values[rule.Field])

		if value == "" {
			if rule.Required {
				res[rule.Field] = rule.Label + " is required"
			}
			continue
		}

		if rule.MinLen > 0 && len(value) < rule.MinLen {
			res[rule.Field] = fmt.Sprintf("%s must be at least %d characters", rule.Label, rule.MinLen)
			continue
		}
		if rule.MaxLen > 0 && len(value) > rule.MaxLen {
			res[rule.Field] = fmt.Sprintf("%s must be at most %d characters", rule.Label, rule.MaxLen)
			continue
		}

		switch rule.Kind {
		case Email:
			if !emailRe.MatchString(value) {
				res[rule.Field] = rule.Label + " must be a valid email address"
			}
		case Phone:
			if !phoneRe.MatchString(value) {
				res[rule.Field] = rule.Label + " must be a valid phone number"
			}
		case OneOf:
			ok := false
			for _, c := range rule.Choices {
				if c == value {
					ok = true
					break
				}
			}
			if !ok {
				res[rule.Field] = rule.Label + " has an unsupported value"
			}
		}
	}
	return res
}

// RuleFor returns the rule registered for a field, if any. The TUI uses
// it to label inputs and pick placeholders.
func (s Schema) RuleFor(field string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}
