package domain

import "fmt"

// MalformedRecordError reports a structural failure during extraction or
// normalization: a bad field count, a numeric field that does not parse, an
// observation with no preceding header, or a header whose declared point
// count does not match the observations that follow. It fails the whole file;
// skipping a row would silently corrupt the storm's path geometry.
type MalformedRecordError struct {
	Line   int
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q, value %q)", e.Field, e.Value)
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// TimestampError reports an observation whose date/time components do not
// compose into a valid UTC instant.
type TimestampError struct {
	EventID string
	Line    int
	Value   string
	Err     error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q for storm %s at line %d", e.Value, e.EventID, e.Line)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// UnknownCodeError reports an identifier or status code outside the fixed
// table that is not a documented missing sentinel.
type UnknownCodeError struct {
	EventID string
	Line    int
	Kind    string // "identifier" or "status"
	Code    string
}

func (e *UnknownCodeError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("unknown %s code %q", e.Kind, e.Code)
	}
	return fmt.Sprintf("unknown %s code %q for storm %s at line %d", e.Kind, e.Code, e.EventID, e.Line)
}
