package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. When
// there is no error to club, nil is returned. A single error is returned
// as it is.
//
// Use it to collect all validation failures instead of returning on the
// first one.
func Append(errs ...error) error {
	var me multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if u, ok := e.(multiErr); ok {
			me = append(me, u...)
			continue
		}
		me = append(me, e)
	}
	switch len(me) {
	case 0:
		return nil
	case 1:
		return me[0]
	default:
		return me
	}
}

// multiErr is a flat collection of errors. It is never empty and never
// contains another multiErr.
type multiErr []error

var (
	_ unpacker = multiErr(nil)
	_ coder    = multiErr(nil)
)

func (me multiErr) Error() string {
	points := make([]string, len(me))
	for i, err := range me {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(me), strings.Join(points, "\n\t"))
}

// Unpack returns all clubbed errors.
func (me multiErr) Unpack() []error {
	return []error(me)
}

// Code returns the code of the first error, consistent with the fail fast
// approach of the handlers.
func (me multiErr) Code() uint32 {
	if len(me) == 0 {
		return SuccessCode
	}
	return code(me[0])
}
