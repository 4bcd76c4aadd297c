package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// located is an error stamped with the place it was created or wrapped at.
type located struct {
	msg    string
	at     string
	cause  error
	inline bool // msg already carries the cause text
}

func (e *located) Error() string {
	if e.cause == nil || e.inline {
		return fmt.Sprintf("%s: %s", e.msg, e.at)
	}
	return fmt.Sprintf("%s %s \ncaused by: %v", e.msg, e.at, e.cause)
}

func (e *located) Unwrap() error {
	return e.cause
}

// New creates a new instance of the base error
func New(msg string) error {
	return &located{msg: msg, at: filePath()}
}

// Wrap creates a new error of the wrapped error
func Wrap(err error, msg string) error {
	return &located{msg: msg, at: filePath(), cause: err}
}

// Errorf formats like fmt.Errorf, so %w keeps the wrapped error reachable.
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	return &located{msg: err.Error(), at: filePath(), cause: errors.Unwrap(err), inline: true}
}

// Cause peels off every located layer and returns the first foreign error,
// i.e. the text a transport or parser actually reported.
func Cause(err error) error {
	for {
		l, ok := err.(*located)
		if !ok || l.cause == nil {
			if ok {
				return errors.New(l.msg)
			}
			return err
		}
		err = l.cause
	}
}

// Is checks if the error is equal to the target
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As returns the wrapped error
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func filePath() string {
	pc, f, l, ok := runtime.Caller(2)
	fn := `unknown`
	if ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	return fmt.Sprintf("at %s\n\t%s:%d", fn, f, l)
}
