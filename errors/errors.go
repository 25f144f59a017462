// Package errors defines the coded errors returned by the echo processor,
// the token program and the ledger that hosts them. An invocation either
// succeeds or fails with exactly one CodedError; its message is advisory,
// the code is the contract.
package errors

import (
	stdErrors "errors"
	"fmt"
)

type CodedError interface {
	error
	Code() ErrorCode
	Unwrap() error
}

type codedError struct {
	code ErrorCode
	err  error
}

var _ CodedError = codedError{}

// NewCodedError constructs a CodedError whose message is built from format
// and args. A %w verb in format keeps the wrapped error reachable.
func NewCodedError(code ErrorCode, format string, args ...interface{}) CodedError {
	return codedError{
		code: code,
		err:  fmt.Errorf(format, args...),
	}
}

// WrapCodedError attaches code to err.
func WrapCodedError(code ErrorCode, err error, prefix string) CodedError {
	if prefix != "" {
		err = fmt.Errorf("%s: %w", prefix, err)
	}
	return codedError{code: code, err: err}
}

func (err codedError) Error() string {
	return fmt.Sprintf("%v %v", err.code, err.err)
}

func (err codedError) Code() ErrorCode {
	return err.code
}

func (err codedError) Unwrap() error {
	return err.err
}

// Is matches any CodedError carrying the same code, so
// errors.Is(err, NewCodedError(code, "")) works as a code check.
func (err codedError) Is(target error) bool {
	coded, ok := target.(CodedError)
	return ok && coded.Code() == err.code
}

// Find returns the outermost CodedError in err's chain.
func Find(err error) (CodedError, bool) {
	var coded CodedError
	if stdErrors.As(err, &coded) {
		return coded, true
	}
	return nil, false
}

// Code returns the code of the outermost CodedError in err's chain.
func Code(err error) (ErrorCode, bool) {
	coded, ok := Find(err)
	if !ok {
		return 0, false
	}
	return coded.Code(), true
}

// HasErrorCode reports whether any CodedError in err's chain carries code.
// A collaborator failure therefore still matches the collaborator's own code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		coded, ok := Find(err)
		if !ok {
			return false
		}
		if coded.Code() == code {
			return true
		}
		err = coded.Unwrap()
	}
	return false
}
