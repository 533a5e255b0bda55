package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault/errors"
)

// Counter is a minimal model used to exercise buckets in tests.
type Counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
	Owner string `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

// Label is a model that shares no wire compatibility with Counter.
type Label struct {
	Names []string `protobuf:"bytes,1,rep,name=names,proto3" json:"names,omitempty"`
}

func (m *Label) Reset()         { *m = Label{} }
func (m *Label) String() string { return proto.CompactTextString(m) }
func (*Label) ProtoMessage()    {}

func (m *Label) Validate() error {
	if len(m.Names) == 0 {
		return errors.Wrap(errors.ErrEmpty, "names")
	}
	return nil
}

func counterObj(key string, count int64, owner string) *SimpleObj {
	return NewSimpleObj([]byte(key), &Counter{Count: count, Owner: owner})
}
