package cerr

import (
	"errors"
	"fmt"
)

type Error struct {
	Code Code
	Msg  string // shown to the user
	Err  error  // kept for the logs
}

func NewError(code Code, msg string, underlying error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  underlying,
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code.String(), e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code.String(), e.Msg, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsCode(err error, code Code) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, Unknown for foreign errors and OK
// for nil.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return Unknown
}

// Message returns the user facing message of err.
func Message(err error) string {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Msg
	}
	return err.Error()
}

func Usage(msg string) *Error {
	return NewError(InvalidArgument, msg, nil)
}
