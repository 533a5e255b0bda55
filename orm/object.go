package orm

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// SimpleObj is the Object used by all vault buckets: a key and the model
// stored under it.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns an object holding value under key. A nil key is set
// when the object is loaded.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte        { return o.key }
func (o SimpleObj) Value() Model       { return o.value }
func (o *SimpleObj) SetKey(key []byte) { o.key = key }

// Validate requires both the key and the value. The value must pass its
// own validation.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	default:
		return errors.Field("Value", o.value.Validate(), "invalid value")
	}
}

// Clone returns an object with an empty value of the same model type, to
// load data into. The key is copied.
func (o *SimpleObj) Clone() Object {
	empty := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: empty}
}
