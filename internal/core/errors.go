package core

import (
	"errors"
	"fmt"
	"strings"
)

// Pipeline failures. Every one except ErrRowTooShort aborts the whole
// paste or process attempt; ErrRowTooShort only drops the offending row.
var (
	ErrEmptyInput          = errors.New("empty input")
	ErrPlaceholderRejected = errors.New("placeholder text rejected")
	ErrMissingColumns      = errors.New("missing required columns")
	ErrRowTooShort         = errors.New("row too short")
	ErrNoEmailsFound       = errors.New("no emails found")
	ErrMissingParameters   = errors.New("missing parameters")
	ErrTooManyRows         = errors.New("too many rows")
	ErrParseInProgress     = errors.New("parse already in progress")
	ErrNothingGenerated    = errors.New("nothing generated")
	ErrPartNotFound        = errors.New("file part not found")
	ErrUnknownTemplate     = errors.New("unknown template")
)

// MissingColumnsError lists every required role that found no header match.
type MissingColumnsError struct {
	Roles  []string // Role labels in template order: "Epic", "Task"
	Header []string // Header cells that were searched
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s (found headers: %s)",
		strings.Join(e.Roles, ", "), strings.Join(e.Header, ", "))
}

// Is reports ErrMissingColumns so callers can match the category.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// MissingParameterError names the first parameter that failed validation.
type MissingParameterError struct {
	Param  Param
	Reason string
}

func (e *MissingParameterError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing parameters: %s is required", e.Param)
	}
	return fmt.Sprintf("missing parameters: %s %s", e.Param, e.Reason)
}

// Is reports ErrMissingParameters so callers can match the category.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameters
}

// MissingParam reports that p was not supplied.
func MissingParam(p Param) error {
	return &MissingParameterError{Param: p}
}

// InvalidParam reports that p was supplied but unusable.
func InvalidParam(p Param, reason string) error {
	return &MissingParameterError{Param: p, Reason: reason}
}
