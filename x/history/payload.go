package history

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// EventKind names the payload variant of an event.
type EventKind string

const (
	KindProposal        EventKind = "proposal"
	KindExecution       EventKind = "execution"
	KindSignature       EventKind = "signature"
	KindKeyAddition     EventKind = "key-addition"
	KindKeyRemoval      EventKind = "key-removal"
	KindThresholdChange EventKind = "threshold-change"
)

// Payload is the closed set of event variants. Only types declared in this
// package implement it.
type Payload interface {
	proto.Message
	Kind() EventKind
	Validate() error
	isPayload()
}

// txPayload is implemented by variants that name a transaction.
type txPayload interface {
	Payload
	Transaction() uint64
}

var (
	_ txPayload = (*Proposal)(nil)
	_ txPayload = (*Execution)(nil)
	_ txPayload = (*Signature)(nil)
	_ Payload   = (*KeyAddition)(nil)
	_ Payload   = (*KeyRemoval)(nil)
	_ Payload   = (*ThresholdChange)(nil)
)

// Proposal records the intent to transfer Amount to Recipient.
type Proposal struct {
	TxID      uint64 `protobuf:"varint,1,opt,name=tx_id,json=txId,proto3" json:"tx_id"`
	Recipient []byte `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Amount    uint64 `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}
func (*Proposal) isPayload()       {}

func (*Proposal) Kind() EventKind       { return KindProposal }
func (m *Proposal) Transaction() uint64 { return m.TxID }

func (m *Proposal) Validate() error {
	return errors.Field("Recipient", vault.Address(m.Recipient).Validate(), "invalid recipient")
}

// Execution records that a transaction was executed.
type Execution struct {
	TxID uint64 `protobuf:"varint,1,opt,name=tx_id,json=txId,proto3" json:"tx_id"`
}

func (m *Execution) Reset()         { *m = Execution{} }
func (m *Execution) String() string { return proto.CompactTextString(m) }
func (*Execution) ProtoMessage()    {}
func (*Execution) isPayload()       {}

func (*Execution) Kind() EventKind       { return KindExecution }
func (m *Execution) Transaction() uint64 { return m.TxID }
func (*Execution) Validate() error       { return nil }

// Signature records the approval of a transaction by Signer.
type Signature struct {
	TxID   uint64 `protobuf:"varint,1,opt,name=tx_id,json=txId,proto3" json:"tx_id"`
	Signer []byte `protobuf:"bytes,2,opt,name=signer,proto3" json:"signer"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}
func (*Signature) isPayload()       {}

func (*Signature) Kind() EventKind       { return KindSignature }
func (m *Signature) Transaction() uint64 { return m.TxID }

func (m *Signature) Validate() error {
	return errors.Field("Signer", vault.Address(m.Signer).Validate(), "invalid signer")
}

// KeyAddition records that Signer joined the signer set.
type KeyAddition struct {
	Signer []byte `protobuf:"bytes,1,opt,name=signer,proto3" json:"signer"`
}

func (m *KeyAddition) Reset()         { *m = KeyAddition{} }
func (m *KeyAddition) String() string { return proto.CompactTextString(m) }
func (*KeyAddition) ProtoMessage()    {}
func (*KeyAddition) isPayload()       {}
func (*KeyAddition) Kind() EventKind  { return KindKeyAddition }

func (m *KeyAddition) Validate() error {
	return errors.Field("Signer", vault.Address(m.Signer).Validate(), "invalid signer")
}

// KeyRemoval records that Signer left the signer set.
type KeyRemoval struct {
	Signer []byte `protobuf:"bytes,1,opt,name=signer,proto3" json:"signer"`
}

func (m *KeyRemoval) Reset()         { *m = KeyRemoval{} }
func (m *KeyRemoval) String() string { return proto.CompactTextString(m) }
func (*KeyRemoval) ProtoMessage()    {}
func (*KeyRemoval) isPayload()       {}
func (*KeyRemoval) Kind() EventKind  { return KindKeyRemoval }

func (m *KeyRemoval) Validate() error {
	return errors.Field("Signer", vault.Address(m.Signer).Validate(), "invalid signer")
}

// ThresholdChange records a new number of required signatures.
type ThresholdChange struct {
	NewRequired uint32 `protobuf:"varint,1,opt,name=new_required,json=newRequired,proto3" json:"new_required"`
}

func (m *ThresholdChange) Reset()         { *m = ThresholdChange{} }
func (m *ThresholdChange) String() string { return proto.CompactTextString(m) }
func (*ThresholdChange) ProtoMessage()    {}
func (*ThresholdChange) isPayload()       {}
func (*ThresholdChange) Kind() EventKind  { return KindThresholdChange }

func (m *ThresholdChange) Validate() error {
	if m.NewRequired < 1 {
		return errors.Field("NewRequired", errors.ErrInput, "must be at least 1")
	}
	return nil
}
