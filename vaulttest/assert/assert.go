// Package assert provides the few test assertions used across the vault
// packages. Every failure stops the test.
package assert

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// Tester is the part of testing.TB used by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil, including a typed nil pointer.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack of a vault error.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails unless want and got are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// True fails unless value is true. msgAndArgs are printed on failure.
func True(t Tester, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !value {
		t.Fatal(append([]interface{}{"want true"}, msgAndArgs...)...)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("want a panic")
		}
	}()
	fn()
}

// IsErr fails unless got is of the want kind. A nil want accepts only a nil
// got.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}

// FieldError fails unless err carries exactly one error for the field and
// that error is of the want kind. A nil want means no error for the field.
func FieldError(t Tester, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	switch {
	case want == nil && len(errs) != 0:
		t.Fatalf("want no %q error, got %q", field, errs)
	case want == nil:
	case len(errs) == 0:
		t.Fatalf("want %q error for %q, got none", want, field)
	case len(errs) > 1:
		t.Fatalf("want one %q error, got %d: %q", field, len(errs), errs)
	case !want.Is(errs[0]):
		t.Fatalf("want %q error for %q, got %q", want, field, errs[0])
	}
}
