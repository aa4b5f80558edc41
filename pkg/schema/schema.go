// Package schema validates payloads exchanged with the RSVP API before they
// reach the UI. A payload either conforms completely or is rejected with the
// first structural mismatch, in declared field order.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"invite.link/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError identifies the first mismatch between a payload and its shape.
type ValidationError struct {
	Path   string // "$" for the root, e.g. "wedding_guests[1].name"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema: %s %s", e.Path, e.Reason)
}

// field describes one key of an object shape.
type field struct {
	key      string
	optional bool // absent or null is accepted
	rules    []validation.Rule
	object   []field // set for nested objects
	elem     *field  // set for arrays
}

var guestShape = []field{
	{key: "id", rules: []validation.Rule{isInteger}},
	{key: "group_id", rules: []validation.Rule{isInteger}},
	{key: "name", rules: []validation.Rule{isString}},
	{key: "created_at", rules: []validation.Rule{isString}},
}

var guestElem = field{rules: []validation.Rule{isObject}, object: guestShape}

var groupShape = []field{
	{key: "id", rules: []validation.Rule{isInteger}},
	{key: "name", rules: []validation.Rule{isString}},
	{key: "invited_to_nikkah", rules: []validation.Rule{isBool}},
	{key: "invited_to_wedding", rules: []validation.Rule{isBool}},
	{key: "invited_to_henna", rules: []validation.Rule{isBool}},
	{key: "max_guests_wedding", rules: []validation.Rule{isInteger}},
	{key: "max_guests_henna", rules: []validation.Rule{isInteger}},
	{key: "has_accepted_wedding", rules: []validation.Rule{isBool}},
	{key: "has_accepted_henna", rules: []validation.Rule{isBool}},
	{key: "has_rsvped_wedding", rules: []validation.Rule{isBool}},
	{key: "has_rsvped_henna", rules: []validation.Rule{isBool}},
	{key: "wedding_guests", rules: []validation.Rule{isArray}, elem: &guestElem},
	{key: "henna_guests", rules: []validation.Rule{isArray}, elem: &guestElem},
}

var rsvpResponseShape = []field{
	{key: "success", rules: []validation.Rule{isBool}},
	{key: "message", rules: []validation.Rule{isString}},
	{key: "group", optional: true, rules: []validation.Rule{isObject}, object: groupShape},
}

const eventEnumReason = `must be one of "wedding", "henna"`

var rsvpRequestShape = []field{
	{key: "event", rules: []validation.Rule{
		isString,
		validation.Required.Error(eventEnumReason), // In skips empty strings
		validation.In(string(models.EventWedding), string(models.EventHenna)).Error(eventEnumReason),
	}},
	{key: "accept", rules: []validation.Rule{isBool}},
	{key: "guests", rules: []validation.Rule{isArray}, elem: &field{rules: []validation.Rule{isString}}},
}

// checkObject walks the shape in order and stops at the first mismatch.
func checkObject(path string, value interface{}, shape []field) error {
	if err := validation.Validate(value, notNull, isObject); err != nil {
		return mismatch(path, err)
	}
	obj := value.(map[string]interface{})
	for _, f := range shape {
		p := f.key
		if path != "$" {
			p = path + "." + f.key
		}
		v, present := obj[f.key]
		if f.optional && (!present || v == nil) {
			continue
		}
		if !present {
			return &ValidationError{Path: p, Reason: "is required"}
		}
		if err := checkValue(p, v, f); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(path string, value interface{}, f field) error {
	rules := append([]validation.Rule{notNull}, f.rules...)
	if err := validation.Validate(value, rules...); err != nil {
		return mismatch(path, err)
	}
	if f.object != nil {
		return checkObject(path, value, f.object)
	}
	if f.elem != nil {
		for i, item := range value.([]interface{}) {
			if err := checkValue(path+"["+strconv.Itoa(i)+"]", item, *f.elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func mismatch(path string, err error) *ValidationError {
	return &ValidationError{Path: path, Reason: err.Error()}
}

// decode reads exactly one JSON value, keeping numbers as json.Number so
// integers can be told apart from fractions.
func decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, &ValidationError{Path: "$", Reason: "is not valid JSON: " + err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ValidationError{Path: "$", Reason: "has trailing data after the JSON value"}
	}
	return v, nil
}

// convert fills a typed value from an already validated decoded value.
func convert(value interface{}, out interface{}) error {
	raw, err := json.Marshal(canonicalNumbers(value))
	if err != nil {
		return &ValidationError{Path: "$", Reason: "cannot be re-encoded: " + err.Error()}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ValidationError{Path: "$", Reason: "does not fit the target type: " + err.Error()}
	}
	return nil
}

// canonicalNumbers rewrites integral numbers as int64 so that 1.0 or 1e3
// decode into int fields.
func canonicalNumbers(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = canonicalNumbers(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = canonicalNumbers(item)
		}
		return out
	case json.Number, float64:
		if n, ok := asInteger(v); ok {
			return n
		}
	}
	return value
}
