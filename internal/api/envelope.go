package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
)

// unknownMessage replaces an absent or null envelope message.
const unknownMessage = "Unknown"

// Outcome is a decoded response envelope: either *Success or *Failure.
type Outcome interface {
	outcome()
}

// Success is an envelope with "success": true.
type Success struct {
	Message string
	// Data is the raw "data" member, nil when absent or null.
	Data json.RawMessage
}

// Failure is an envelope with "success": false.
type Failure struct {
	Message string
}

func (*Success) outcome() {}
func (*Failure) outcome() {}

// DecodeEnvelope parses a raw response body into an Outcome. It fails with
// a *apierrors.StateError when the body is not a JSON object or when
// "success" is missing or not a boolean.
func DecodeEnvelope(body []byte) (Outcome, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &apierrors.StateError{Message: "malformed response", Err: err}
	}
	if raw == nil {
		return nil, &apierrors.StateError{Message: "malformed response: not a JSON object"}
	}

	rawSuccess, ok := raw["success"]
	if !ok {
		return nil, &apierrors.StateError{Message: `missing "success" field`}
	}
	var success bool
	switch string(bytes.TrimSpace(rawSuccess)) {
	case "true":
		success = true
	case "false":
	default:
		return nil, &apierrors.StateError{Message: `"success" field is not a boolean`}
	}

	message := unknownMessage
	if rawMessage, ok := raw["message"]; ok && !isNull(rawMessage) {
		if err := json.Unmarshal(rawMessage, &message); err != nil {
			return nil, &apierrors.StateError{Message: `"message" field is not a string`, Err: err}
		}
	}

	if !success {
		return &Failure{Message: message}, nil
	}

	s := &Success{Message: message}
	if data, ok := raw["data"]; ok && !isNull(data) {
		s.Data = data
	}
	return s, nil
}

// String extracts the string at a dotted path inside Data.
func (s *Success) String(path string) (string, error) {
	raw, err := s.lookup(path)
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", shapeError(path, "a string", err)
	}
	return v, nil
}

// Strings extracts the list of strings at a dotted path inside Data.
func (s *Success) Strings(path string) ([]string, error) {
	raw, err := s.lookup(path)
	if err != nil {
		return nil, err
	}
	var elems []*string
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, shapeError(path, "a list of strings", err)
	}
	v := make([]string, len(elems))
	for i, e := range elems {
		if e == nil {
			return nil, shapeError(fmt.Sprintf("%s[%d]", path, i), "a string", nil)
		}
		v[i] = *e
	}
	return v, nil
}

// Object decodes the object at a dotted path inside Data into v. An empty
// path addresses Data itself.
func (s *Success) Object(path string, v any) error {
	raw, err := s.lookup(path)
	if err != nil {
		return err
	}
	if !isObject(raw) {
		return shapeError(path, "an object", nil)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return shapeError(path, "an object", err)
	}
	return nil
}

// Require fails unless every dotted path is present inside Data.
func (s *Success) Require(paths ...string) error {
	for _, p := range paths {
		if _, err := s.lookup(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Success) lookup(path string) (json.RawMessage, error) {
	if s.Data == nil {
		return nil, &apierrors.StateError{Message: `response has no "data" member`}
	}
	current := s.Data
	if path == "" {
		return current, nil
	}
	for _, key := range strings.Split(path, ".") {
		var obj map[string]json.RawMessage
		if !isObject(current) || json.Unmarshal(current, &obj) != nil {
			return nil, missingField(path)
		}
		next, ok := obj[key]
		if !ok || isNull(next) {
			return nil, missingField(path)
		}
		current = next
	}
	return current, nil
}

func missingField(path string) error {
	return &apierrors.StateError{Message: fmt.Sprintf("response data is missing %q", path)}
}

func shapeError(path, want string, err error) error {
	if path == "" {
		path = "data"
	}
	return &apierrors.StateError{Message: fmt.Sprintf("response field %q is not %s", path, want), Err: err}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
