package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err, so that a caller can tell which
// attribute of a message or model is invalid. A nil err gives nil.
//
// Name fields the Go way, Recipient or Signers. Nested fields use a dot,
// elements of a list their index: Signers.0
func Field(name string, err error, desc string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	// The stack is recorded once, at the innermost wrap.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		desc = fmt.Sprintf(desc, args...)
	}
	return &fieldError{parent: err, field: name, desc: desc}
}

// AppendField adds the error of a field to errs. Nothing is added for a nil
// fieldErr.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors returns all errors of the field name found in err, including
// those collected with Append.
func FieldErrors(err error, name string) []error {
	var found []error
	for !errIsNil(err) {
		if f, ok := err.(interface{ Field() string }); ok && f.Field() == name {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			// Unpack covers every child, there is no cause to follow.
			for _, child := range u.Unpack() {
				found = append(found, FieldErrors(child, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
