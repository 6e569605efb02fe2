// Package validate holds the client-side form checks run before anything is
// sent to the forum.
package validate

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Minimum lengths enforced by the forum's forms.
const (
	MinPassword = 6
	MinUsername = 3
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
	symbolRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Errors maps a field name to its message. A nil or empty Errors means the
// form is valid.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message for field.
func (e Errors) Get(field string) string {
	return e[field]
}

// Err returns e as an error, or nil when it is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Email reports whether s looks like an address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Username reports whether s is long enough and uses only letters, digits
// and underscores.
func Username(s string) bool {
	return utf8.RuneCountInString(s) >= MinUsername && usernameRe.MatchString(s)
}

// Password reports whether s meets the minimum length.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPassword
}

// PasswordStrength scores s from 0 to 5, one point each for length >= 6,
// length >= 8, an uppercase letter, a digit and a symbol.
func PasswordStrength(s string) int {
	score := 0
	n := utf8.RuneCountInString(s)
	if n >= 6 {
		score++
	}
	if n >= 8 {
		score++
	}
	if upperRe.MatchString(s) {
		score++
	}
	if digitRe.MatchString(s) {
		score++
	}
	if symbolRe.MatchString(s) {
		score++
	}
	return score
}

// StrengthLabel describes a PasswordStrength score.
func StrengthLabel(score int) string {
	switch {
	case score <= 1:
		return "weak"
	case score <= 3:
		return "medium"
	default:
		return "strong"
	}
}
