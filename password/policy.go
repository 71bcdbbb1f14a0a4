package password

import (
	"strings"
	"unicode"
)

// Violation names a single policy rule a candidate password failed.
// Rules are reported individually so callers can surface actionable
// messages instead of a bare "invalid password".
type Violation string

// The creation-time policy rules.
const (
	ViolationTooShort  Violation = "must be at least 8 characters"
	ViolationNoLower   Violation = "must contain a lowercase letter"
	ViolationNoUpper   Violation = "must contain an uppercase letter"
	ViolationNoDigit   Violation = "must contain a digit"
	ViolationNoSpecial Violation = "must contain a character that is not a letter or digit"
)

const minPolicyLength = 8

// PolicyError carries every rule the candidate password violated.
type PolicyError struct {
	Violations []Violation
}

func (e *PolicyError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = string(v)
	}
	return "password policy violation: " + strings.Join(msgs, "; ")
}

// CheckPolicy validates a candidate password against the creation-time
// policy. It returns nil on success, or a *PolicyError listing every
// violated rule. Verification of existing credentials never consults
// the policy; it only applies when a credential is created or changed.
func CheckPolicy(password string) error {
	var violations []Violation

	if len(password) < minPolicyLength {
		violations = append(violations, ViolationTooShort)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasLower {
		violations = append(violations, ViolationNoLower)
	}
	if !hasUpper {
		violations = append(violations, ViolationNoUpper)
	}
	if !hasDigit {
		violations = append(violations, ViolationNoDigit)
	}
	if !hasSpecial {
		violations = append(violations, ViolationNoSpecial)
	}

	if len(violations) > 0 {
		return &PolicyError{Violations: violations}
	}

	return nil
}
