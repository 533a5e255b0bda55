package errors

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapRecordsCallSite(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantMsg string
	}{
		"registered kind": {
			err:     Wrap(ErrNotFound, "event 7"),
			wantMsg: "event 7: not found",
		},
		"formatted": {
			err:     Wrapf(ErrInput, "signer #%d", 2),
			wantMsg: "signer #2: invalid input",
		},
		"stdlib error": {
			err:     Wrap(io.ErrUnexpectedEOF, "read key file"),
			wantMsg: "read key file: unexpected EOF",
		},
		"wrapped twice": {
			err:     Wrap(Wrap(ErrDatabase, "get"), "load registry"),
			wantMsg: "load registry: get: database",
		},
	}

	const here = "errors/stacktrace_test.go"

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantMsg, tc.err.Error())
			assert.NotNil(t, stackTrace(tc.err))

			full := fmt.Sprintf("%+v", tc.err)
			assert.Contains(t, full, here)
			assert.Contains(t, full, tc.wantMsg)
			// The wrapping helpers are not part of the trace.
			assert.NotContains(t, full, "github.com/iov-one/vault/errors.Wrap\n")

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.wantMsg))
			assert.NotContains(t, short, "\n")
			assert.Contains(t, short, here+":")
		})
	}
}
