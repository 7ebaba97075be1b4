// Package validate holds the request-side field checks shared by the payload
// builder: address syntax, display names, subjects and scalar maps.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
)

// Size limits enforced on outbound payloads.
const (
	MaxSubjectLength  = 255
	MaxScalarKeyLen   = 128
	MaxScalarValueLen = 768
)

// Address checks that value is a bare local-part@domain address. Display
// names, angle brackets and surrounding whitespace are rejected.
func Address(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apierrors.Invalid(field, "email address must not be empty")
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return apierrors.Invalid(field, "%q is not a valid email address: %v", value, err)
	}
	if addr.Name != "" || addr.Address != value {
		return apierrors.Invalid(field, "%q is not a bare email address", value)
	}
	return nil
}

// DisplayName rejects a provided name that is empty or whitespace only.
func DisplayName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return apierrors.Invalid(field, "display name must not be blank when provided")
	}
	return nil
}

// Subject requires a non-blank subject of at most MaxSubjectLength characters.
func Subject(field, subject string) error {
	if strings.TrimSpace(subject) == "" {
		return apierrors.Invalid(field, "subject is required")
	}
	if n := utf8.RuneCountInString(subject); n > MaxSubjectLength {
		return apierrors.Invalid(field, "subject must not exceed %d characters, got %d", MaxSubjectLength, n)
	}
	return nil
}

// ScalarMap validates a tags or headers map. Keys must be non-empty and at
// most MaxScalarKeyLen characters; values must be nil, a string, a bool or a
// number whose string form is at most MaxScalarValueLen characters.
func ScalarMap(label string, m map[string]any) error {
	for key, value := range m {
		if key == "" {
			return apierrors.Invalid(label, "keys must not be empty")
		}
		if n := utf8.RuneCountInString(key); n > MaxScalarKeyLen {
			return apierrors.Invalid(label, "key %q exceeds %d characters", truncate(key), MaxScalarKeyLen)
		}

		str, ok := ScalarString(value)
		if !ok {
			return apierrors.Invalid(label, "value for key %q is not a supported scalar (%T)", key, value)
		}
		if n := utf8.RuneCountInString(str); n > MaxScalarValueLen {
			return apierrors.Invalid(label, "value for key %q exceeds %d characters", key, MaxScalarValueLen)
		}
	}
	return nil
}

// TemplateData checks that every value of a template_data map can be encoded
// as JSON. NaN, infinities, channels and functions are rejected.
func TemplateData(field string, data map[string]any) error {
	for key, value := range data {
		if _, err := json.Marshal(value); err != nil {
			return apierrors.Invalid(field, "value for key %q cannot be encoded as JSON: %v", key, err)
		}
	}
	return nil
}

// ScalarString returns the string form of a scalar map value and whether the
// value is allowed. Non-finite floats are not.
func ScalarString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case float32:
		if !finite(float64(v)) {
			return "", false
		}
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case float64:
		if !finite(v) {
			return "", false
		}
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case json.Number:
		if _, err := v.Float64(); err != nil || !json.Valid([]byte(v)) {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func truncate(s string) string {
	const keep = 32
	if utf8.RuneCountInString(s) <= keep {
		return s
	}
	return string([]rune(s)[:keep]) + "..."
}
