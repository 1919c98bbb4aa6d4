package diagnostics

import (
	"fmt"

	"github.com/funvibe/gwn/internal/token"
)

// Error codes, stable across releases. The letter marks the phase:
// P = parse, T = type, R = runtime.
const (
	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // unterminated string literal
	ErrP003 = "P003" // expected expression
	ErrP004 = "P004" // illegal character

	ErrT001 = "T001" // type mismatch
	ErrT002 = "T002" // infinite type (occurs check)
	ErrT003 = "T003" // unbound identifier

	ErrR001 = "R001" // unmatched guard
	ErrR002 = "R002" // primitive error
)

// DiagnosticError is a positioned, coded error produced by any pipeline stage.
type DiagnosticError struct {
	Code    string
	Message string
	Line    int
	Column  int
	File    string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: error [%s]: %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: error [%s]: %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("error [%s]: %s", e.Code, e.Message)
}

// NewError builds a DiagnosticError positioned at tok.
func NewError(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
