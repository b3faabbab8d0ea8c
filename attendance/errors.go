package attendance

import (
	"fmt"

	"github.com/warp/attendance-payroll/generic"
)

// ParseErrorKind classifies why a report could not be parsed.
type ParseErrorKind string

const (
	MissingName ParseErrorKind = "missing_name"
)

// ParseError is returned by ParseReport. Only a missing name is fatal;
// malformed day lines are skipped.
type ParseError struct {
	Kind ParseErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse report: %s", e.Kind)
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case MissingName:
		return generic.ErrMissingName
	}
	return nil
}
