package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestEd25519PrivateKeySign(t *testing.T) {
	pk := PrivKeyEd25519FromSeed(make([]byte, 32))
	sig, err := pk.Sign([]byte("foo bar"))
	assert.Nil(t, err)

	pub := pk.PublicKey()
	if !pub.Verify([]byte("foo bar"), sig) {
		t.Fatal("signature must verify")
	}
	if pub.Verify([]byte("foo baz"), sig) {
		t.Fatal("signature must not verify a different message")
	}

	// deterministic keys produce deterministic signatures
	again, err := PrivKeyEd25519FromSeed(make([]byte, 32)).Sign([]byte("foo bar"))
	assert.Nil(t, err)
	if !bytes.Equal(sig, again) {
		t.Fatal("seeded key signatures differ")
	}
}

func TestEmptyPrivateKeySign(t *testing.T) {
	emptyKey := &PrivateKey{}
	if sig, err := emptyKey.Sign([]byte("foo bar")); err == nil {
		t.Fatalf("want an error, got %q", sig)
	}
}

func TestEmptyPublicKeyVerify(t *testing.T) {
	var empty PublicKey
	if empty.Verify([]byte("foo"), []byte("sig 5")) {
		t.Fatal("empty public key must not pass verification")
	}
}

func TestPublicKeyAddress(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey()
	b := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, a.Address().Validate())
	if a.Address().Equals(b.Address()) {
		t.Fatal("two random keys must not share an address")
	}
	assert.Equal(t, a.Condition().Address(), a.Address())
}

func TestPrivateKeySerialization(t *testing.T) {
	key := GenPrivKeyEd25519()
	raw, err := MarshalPrivateKey(key)
	assert.Nil(t, err)

	got, err := UnmarshalPrivateKey(raw)
	assert.Nil(t, err)
	assert.Equal(t, key.Ed25519, got.Ed25519)

	_, err = MarshalPrivateKey(&PrivateKey{Ed25519: []byte("short")})
	assert.IsErr(t, errors.ErrModel, err)

	_, err = UnmarshalPrivateKey([]byte{0x0a, 0x02, 0x01, 0x02})
	assert.IsErr(t, errors.ErrModel, err)
}
