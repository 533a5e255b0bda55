package orm

import (
	"github.com/gogo/protobuf/proto"
)

// Model is the value stored in a bucket. It is a protobuf message that can
// verify its own state before being persisted.
type Model interface {
	proto.Message
	// Validate returns error if the model is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Object is what is stored in the bucket
// Key is joined with the prefix to set the full key
// Value is the data stored
//
// this can be light wrapper around a protobuf-defined type
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() Model
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new, empty object that can be loaded into
type Cloneable interface {
	Clone() Object
}
