package multierr

import (
	"bytes"
	"fmt"
)

// Error collects several errors. Use [Error.ErrOrNil] when returning it as an `error`.
type Error []error

func (e Error) Error() string {
	switch len(e) {
	case 0:
		return "<nil>"

	case 1:
		return e[0].Error()

	default:
		buf := new(bytes.Buffer)
		fmt.Fprintf(buf, "%d errors occurred:", len(e))
		for _, err := range e {
			fmt.Fprintf(buf, "\n\t* %v", err)
		}
		return buf.String()
	}
}

// Append appends err to e, doing nothing if `err == nil`. Appending another [Error] flattens it.
//
//	var e Error
//	e.Append(err)
func (e *Error) Append(err error) {
	if e == nil || err == nil {
		return
	}
	if merr, ok := err.(Error); ok {
		*e = append(*e, merr...)
		return
	}
	*e = append(*e, err)
}

// Append returns the combination of err1 and err2 without modifying either.
func Append(err1, err2 error) Error {
	var merr Error
	merr.Append(err1)
	merr.Append(err2)
	return merr
}

// ErrOrNil converts e into an `error`: nil when empty (a nil Error is a non-nil error value), the
// sole error when there is one, and e otherwise.
func (e Error) ErrOrNil() error {
	switch len(e) {
	case 0:
		return nil

	case 1:
		return e[0]

	default:
		return e
	}
}

// Unwrap lets [errors.Is] and [errors.As] match any of the errors.
func (e Error) Unwrap() []error {
	return e
}
