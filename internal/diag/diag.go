// Package diag collects compiler diagnostics: fatal errors that abort a
// compilation and warnings that leave the output usable.
package diag

import (
	"errors"
	"fmt"
)

// Class groups errors by origin. It is used internally for logging; callers of
// the compiler only ever see the rendered message.
type Class int

const (
	// Structural errors concern the shape of the graph.
	Structural Class = iota
	// Validation errors concern a missing or out-of-range block parameter.
	Validation
	// Capability errors concern a feature the compiler cannot express.
	Capability
)

func (c Class) String() string {
	switch c {
	case Structural:
		return "structural"
	case Validation:
		return "validation"
	case Capability:
		return "capability"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Error is a single fatal diagnostic.
type Error struct {
	Class Class
	// Block is the display label of the offending block, empty for graph-wide errors.
	Block string
	Msg   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Block == "" {
		return e.Msg
	}
	return e.Block + ": " + e.Msg
}

// Structuralf builds a graph-shape error.
func Structuralf(format string, args ...any) *Error {
	return &Error{Class: Structural, Msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a per-block parameter error.
func Validationf(block, format string, args ...any) *Error {
	return &Error{Class: Validation, Block: block, Msg: fmt.Sprintf(format, args...)}
}

// Capabilityf builds an error for a request the compiler cannot express.
func Capabilityf(block, format string, args ...any) *Error {
	return &Error{Class: Capability, Block: block, Msg: fmt.Sprintf(format, args...)}
}

// ClassOf reports the class of err. Errors not produced by this package are
// treated as structural.
func ClassOf(err error) Class {
	var de *Error
	if errors.As(err, &de) {
		return de.Class
	}
	return Structural
}

// Collector accumulates the diagnostics of one compilation. Only the first
// error is kept: compilation stops at it.
type Collector struct {
	errors   []string
	warnings []string
}

// Fail records err as the fatal error of the compilation. Later calls are ignored.
func (c *Collector) Fail(err error) {
	if err == nil || c.Failed() {
		return
	}
	c.errors = append(c.errors, err.Error())
}

// Warn records a non-fatal diagnostic.
func (c *Collector) Warn(msg string) {
	c.warnings = append(c.warnings, msg)
}

// Failed reports whether a fatal error has been recorded.
func (c *Collector) Failed() bool {
	return len(c.errors) > 0
}

// Errors returns the recorded errors, never nil.
func (c *Collector) Errors() []string {
	return append([]string{}, c.errors...)
}

// Warnings returns the recorded warnings, never nil.
func (c *Collector) Warnings() []string {
	return append([]string{}, c.warnings...)
}
