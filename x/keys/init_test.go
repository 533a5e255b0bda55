package keys

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		Genesis        string
		WantErr        *errors.Error
		WantMaxSigners uint32
	}{
		"configuration is loaded": {
			Genesis:        `{"conf": {"keys": {"max_signers": 5}}}`,
			WantMaxSigners: 5,
		},
		"missing configuration uses defaults": {
			Genesis:        `{"keys": {}}`,
			WantMaxSigners: DefaultMaxSigners,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"keys": {"max_signers": 0}}}`,
			WantErr: errors.ErrModel,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			var ini Initializer
			err := ini.FromGenesis(opts, db)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}

			max, err := NewRegistry().MaxSigners(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantMaxSigners, max)
		})
	}
}
