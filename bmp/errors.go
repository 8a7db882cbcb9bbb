package bmp

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes the failures the codecs and processing
// functions can report.
type ErrorCode int

const (
	CodeIOOpen ErrorCode = iota + 1
	CodeIORead
	CodeIOWrite
	CodeBadSignature
	CodeUnsupportedDepth
	CodeUnsupportedCompression
	CodeInvalidDimensions
	CodeInvalidKernel
	CodeAllocationFailure
	CodeInvalidState
)

func (c ErrorCode) String() string {
	switch c {
	case CodeIOOpen:
		return "IOOpen"
	case CodeIORead:
		return "IORead"
	case CodeIOWrite:
		return "IOWrite"
	case CodeBadSignature:
		return "BadSignature"
	case CodeUnsupportedDepth:
		return "UnsupportedDepth"
	case CodeUnsupportedCompression:
		return "UnsupportedCompression"
	case CodeInvalidDimensions:
		return "InvalidDimensions"
	case CodeInvalidKernel:
		return "InvalidKernel"
	case CodeAllocationFailure:
		return "AllocationFailure"
	case CodeInvalidState:
		return "InvalidState"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error is a categorized codec/processing error.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates an Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates an Error with a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError checks whether err is (or wraps) an *Error and returns it.
func AsError(err error) (*Error, bool) {
	var bmpErr *Error
	if errors.As(err, &bmpErr) {
		return bmpErr, true
	}
	return nil, false
}

// Common errors
var (
	ErrNilImage  = &Error{Code: CodeInvalidState, Message: "image has no pixel buffer"}
	ErrShortRead = &Error{Code: CodeIORead, Message: "short read"}
)
