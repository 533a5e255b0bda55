package keys

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const (
	// BucketName is where the authority record is stored.
	BucketName = "authority"

	// DefaultMaxSigners is used when no configuration was stored.
	DefaultMaxSigners = 100
)

// authorityKey is the key of the only record in the authority bucket.
var authorityKey = []byte("registry")

// Authority is the sole mutable authority record. Signers are kept in
// insertion order.
type Authority struct {
	Signers            [][]byte `protobuf:"bytes,1,rep,name=signers,proto3" json:"signers,omitempty"`
	RequiredSignatures uint32   `protobuf:"varint,2,opt,name=required_signatures,json=requiredSignatures,proto3" json:"required_signatures,omitempty"`
}

func (m *Authority) Reset()         { *m = Authority{} }
func (m *Authority) String() string { return proto.CompactTextString(m) }
func (*Authority) ProtoMessage()    {}

var _ orm.Model = (*Authority)(nil)

// Validate ensures the record is well formed and that the threshold is
// satisfiable by the signer set.
func (m *Authority) Validate() error {
	var errs error
	if len(m.Signers) == 0 {
		errs = errors.AppendField(errs, "Signers", errors.ErrEmpty)
	}
	for i, s := range m.Signers {
		if err := vault.Address(s).Validate(); err != nil {
			errs = errors.AppendField(errs, "Signers", errors.Wrapf(err, "signer #%d", i))
			continue
		}
		for _, prev := range m.Signers[:i] {
			if bytes.Equal(prev, s) {
				errs = errors.AppendField(errs, "Signers", errors.Wrapf(errors.ErrDuplicate, "signer #%d", i))
				break
			}
		}
	}
	if m.RequiredSignatures < 1 || int(m.RequiredSignatures) > len(m.Signers) {
		errs = errors.AppendField(errs, "RequiredSignatures",
			errors.Wrapf(ErrInvalidThreshold, "%d of %d", m.RequiredSignatures, len(m.Signers)))
	}
	return errs
}

// Has returns true if given address is a signer.
func (m *Authority) Has(addr vault.Address) bool {
	return m.indexOf(addr) >= 0
}

func (m *Authority) indexOf(addr vault.Address) int {
	for i, s := range m.Signers {
		if addr.Equals(s) {
			return i
		}
	}
	return -1
}

// Addresses returns a copy of the signer set.
func (m *Authority) Addresses() []vault.Address {
	out := make([]vault.Address, len(m.Signers))
	for i, s := range m.Signers {
		out[i] = vault.Address(s).Clone()
	}
	return out
}

// Copy returns a deep copy of the record.
func (m *Authority) Copy() *Authority {
	signers := make([][]byte, len(m.Signers))
	for i, s := range m.Signers {
		signers[i] = append([]byte(nil), s...)
	}
	return &Authority{
		Signers:            signers,
		RequiredSignatures: m.RequiredSignatures,
	}
}

// Configuration is stored in gconf under the "keys" package name.
type Configuration struct {
	MaxSigners uint32 `protobuf:"varint,1,opt,name=max_signers,json=maxSigners,proto3" json:"max_signers,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Validate() error {
	if m.MaxSigners < 1 {
		return errors.Field("MaxSigners", errors.ErrModel, "must be at least 1")
	}
	return nil
}

// AuthorityBucket is a type-safe wrapper around orm.Bucket
type AuthorityBucket struct {
	orm.Bucket
}

// NewAuthorityBucket initializes an AuthorityBucket with default name.
func NewAuthorityBucket() AuthorityBucket {
	return AuthorityBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Authority))),
	}
}

// GetAuthority returns the stored authority record or nil if the registry
// was not initialized yet.
func (b AuthorityBucket) GetAuthority(db vault.ReadOnlyKVStore) (*Authority, error) {
	obj, err := b.Get(db, authorityKey)
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	a, ok := obj.Value().(*Authority)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return a, nil
}

// SaveAuthority validates and writes the authority record.
func (b AuthorityBucket) SaveAuthority(db vault.KVStore, a *Authority) error {
	return b.Save(db, orm.NewSimpleObj(authorityKey, a))
}
