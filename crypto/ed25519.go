package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a vault condition
func (p *PublicKey) Condition() vault.Condition {
	return vault.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the principal represented by this key.
func (p *PublicKey) Address() vault.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key. It is serialized using protobuf so
// it can be stored in a key file.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return "PrivateKey{...}" }
func (*PrivateKey) ProtoMessage()    {}

// Validate returns an error if the key material is malformed.
func (p *PrivateKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PrivateKeySize {
		return errors.Wrap(errors.ErrModel, "invalid ed25519 private key")
	}
	return nil
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// MarshalPrivateKey serializes the key so that it can be written to a file.
func MarshalPrivateKey(key *PrivateKey) ([]byte, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return proto.Marshal(key)
}

// UnmarshalPrivateKey loads a key serialized with MarshalPrivateKey.
func UnmarshalPrivateKey(raw []byte) (*PrivateKey, error) {
	var key PrivateKey
	if err := proto.Unmarshal(raw, &key); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return &key, nil
}
