package history

import (
	"encoding/json"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const (
	// BucketName is where events are stored.
	BucketName = "events"
	// SequenceName is the counter handing out event ids.
	SequenceName = "next_id"
	// TxIndexName indexes events by the transaction they name.
	TxIndexName = "tx"
)

// EventRecord is the persisted form of an event payload. Exactly one of the
// variants is set.
type EventRecord struct {
	Proposal        *Proposal        `protobuf:"bytes,1,opt,name=proposal,proto3" json:"proposal,omitempty"`
	Execution       *Execution       `protobuf:"bytes,2,opt,name=execution,proto3" json:"execution,omitempty"`
	Signature       *Signature       `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
	KeyAddition     *KeyAddition     `protobuf:"bytes,4,opt,name=key_addition,json=keyAddition,proto3" json:"key_addition,omitempty"`
	KeyRemoval      *KeyRemoval      `protobuf:"bytes,5,opt,name=key_removal,json=keyRemoval,proto3" json:"key_removal,omitempty"`
	ThresholdChange *ThresholdChange `protobuf:"bytes,6,opt,name=threshold_change,json=thresholdChange,proto3" json:"threshold_change,omitempty"`
}

func (m *EventRecord) Reset()         { *m = EventRecord{} }
func (m *EventRecord) String() string { return proto.CompactTextString(m) }
func (*EventRecord) ProtoMessage()    {}

var _ orm.Model = (*EventRecord)(nil)

// NewEventRecord wraps a payload into its persisted form.
func NewEventRecord(p Payload) (*EventRecord, error) {
	var r EventRecord
	switch p := p.(type) {
	case *Proposal:
		r.Proposal = p
	case *Execution:
		r.Execution = p
	case *Signature:
		r.Signature = p
	case *KeyAddition:
		r.KeyAddition = p
	case *KeyRemoval:
		r.KeyRemoval = p
	case *ThresholdChange:
		r.ThresholdChange = p
	case nil:
		return nil, errors.Wrap(errors.ErrEmpty, "payload")
	default:
		return nil, errors.WithType(errors.ErrType, p)
	}
	return &r, nil
}

// Payload returns the only variant set. ErrState is returned if none or
// more than one variant is set.
func (m *EventRecord) Payload() (Payload, error) {
	var found []Payload
	if m.Proposal != nil {
		found = append(found, m.Proposal)
	}
	if m.Execution != nil {
		found = append(found, m.Execution)
	}
	if m.Signature != nil {
		found = append(found, m.Signature)
	}
	if m.KeyAddition != nil {
		found = append(found, m.KeyAddition)
	}
	if m.KeyRemoval != nil {
		found = append(found, m.KeyRemoval)
	}
	if m.ThresholdChange != nil {
		found = append(found, m.ThresholdChange)
	}
	if len(found) != 1 {
		return nil, errors.Wrapf(errors.ErrState, "event record with %d payloads", len(found))
	}
	return found[0], nil
}

// Validate ensures a single, valid payload is set.
func (m *EventRecord) Validate() error {
	p, err := m.Payload()
	if err != nil {
		return err
	}
	return p.Validate()
}

// Event is a logged payload together with its id.
type Event struct {
	ID      uint64
	Payload Payload
}

// Kind returns the kind of the event payload.
func (e *Event) Kind() EventKind {
	return e.Payload.Kind()
}

// MarshalJSON renders the event with its kind and human readable
// addresses.
func (e *Event) MarshalJSON() ([]byte, error) {
	type addr = vault.Address
	var payload interface{}
	switch p := e.Payload.(type) {
	case *Proposal:
		payload = struct {
			TxID      uint64 `json:"tx_id"`
			Recipient addr   `json:"recipient"`
			Amount    uint64 `json:"amount"`
		}{p.TxID, p.Recipient, p.Amount}
	case *Signature:
		payload = struct {
			TxID   uint64 `json:"tx_id"`
			Signer addr   `json:"signer"`
		}{p.TxID, p.Signer}
	case *KeyAddition:
		payload = struct {
			Signer addr `json:"signer"`
		}{p.Signer}
	case *KeyRemoval:
		payload = struct {
			Signer addr `json:"signer"`
		}{p.Signer}
	default:
		payload = p
	}
	return json.Marshal(struct {
		ID      uint64      `json:"id"`
		Kind    EventKind   `json:"kind"`
		Payload interface{} `json:"payload"`
	}{e.ID, e.Kind(), payload})
}

// EventBucket is a type-safe wrapper around orm.Bucket. Events are stored
// under their 8 byte big endian id, so that the key order is the log order.
type EventBucket struct {
	orm.Bucket
	ids orm.Sequence
}

// NewEventBucket initializes an EventBucket with default name and the
// transaction index.
func NewEventBucket() EventBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(EventRecord))).
		WithIndex(TxIndexName, txIndexer, false)
	return EventBucket{
		Bucket: b,
		ids:    b.Sequence(SequenceName),
	}
}

// txIndexer indexes events that name a transaction by the encoded
// transaction id.
func txIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	rec, ok := obj.Value().(*EventRecord)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	p, err := rec.Payload()
	if err != nil {
		return nil, err
	}
	if tx, ok := p.(txPayload); ok {
		return orm.EncodeSequence(tx.Transaction()), nil
	}
	return nil, nil
}

func toEvent(obj orm.Object) (*Event, error) {
	rec, ok := obj.Value().(*EventRecord)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	p, err := rec.Payload()
	if err != nil {
		return nil, err
	}
	id, err := orm.DecodeSequence(obj.Key())
	if err != nil {
		return nil, errors.Wrap(err, "event id")
	}
	return &Event{ID: id, Payload: p}, nil
}

func toEvents(objs []orm.Object) ([]*Event, error) {
	events := make([]*Event, 0, len(objs))
	for _, obj := range objs {
		e, err := toEvent(obj)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
