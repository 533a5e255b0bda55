package assert

import (
	"testing"

	"github.com/iov-one/vault/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"other kind": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrNotFound,
			WantFail: true,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &failCounter{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Name     string
		WantErr  *errors.Error
		WantFail bool
	}{
		"ensure a single error exists and is found": {
			Err:      errors.Field("name", errors.ErrHuman, "invalid human name"),
			Name:     "name",
			WantErr:  errors.ErrHuman,
			WantFail: false,
		},
		"use nil to ensure no error was found": {
			Err:      errors.Field("name", errors.ErrHuman, "invalid human name"),
			Name:     "unknown-name",
			WantErr:  nil,
			WantFail: false,
		},
		"use nil to fail when an error was found but was not expected": {
			Err:      errors.Field("name", errors.ErrHuman, "invalid human"),
			Name:     "name",
			WantErr:  nil,
			WantFail: true,
		},
		"more than one error for a single field is not allowed, even if it is the same error type": {
			Err: errors.Append(
				errors.Field("name", errors.ErrHuman, "first"),
				errors.Field("name", errors.ErrHuman, "second"),
			),
			Name:     "name",
			WantErr:  errors.ErrHuman,
			WantFail: true, // Only one error per name is allowed when testing.
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &failCounter{TB: t}
			FieldError(mock, tc.Err, tc.Name, tc.WantErr)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

// failCounter stands in for testing.TB and counts the failures instead of
// stopping the test.
type failCounter struct {
	testing.TB
	failcalls int
}

func (t *failCounter) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *failCounter) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"nil":          {Value: nil},
		"typed nil":    {Value: nilErr},
		"nil slice":    {Value: []byte(nil)},
		"error":        {Value: errors.ErrEmpty, WantFail: true},
		"not nillable": {Value: 0, WantFail: true},
		"empty string": {Value: "", WantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &failCounter{TB: t}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}
