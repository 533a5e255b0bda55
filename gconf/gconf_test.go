package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

type MyConfig struct {
	Number int64  `protobuf:"varint,1,opt,name=number,proto3" json:"number,omitempty"`
	Text   string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *MyConfig) Reset()         { *m = MyConfig{} }
func (m *MyConfig) String() string { return proto.CompactTextString(m) }
func (*MyConfig) ProtoMessage()    {}

func (m *MyConfig) Validate() error {
	if m.Number < 0 {
		return errors.Field("Number", errors.ErrInput, "must not be negative")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *MyConfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &MyConfig{Number: 852151421, Text: "foobar"},
		},
		"zero configuration": {
			Conf: &MyConfig{},
		},
		"invalid configuration cannot be saved": {
			Conf:        &MyConfig{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				err := Load(db, "mypkg", &MyConfig{})
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}

			var got MyConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	err := Load(db, "other", &MyConfig{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		Want    *MyConfig
		WantErr *errors.Error
	}{
		"configuration is loaded": {
			Genesis: `{"conf": {"mypkg": {"number": 7, "text": "seven"}}}`,
			Want:    &MyConfig{Number: 7, Text: "seven"},
		},
		"missing package section": {
			Genesis: `{"conf": {"otherpkg": {"number": 1}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"number": -4}}}`,
			WantErr: errors.ErrInput,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": {"number": "seven"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "mypkg", &MyConfig{})
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}

			var got MyConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, &got)
		})
	}
}
