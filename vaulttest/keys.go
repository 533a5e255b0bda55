package vaulttest

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a fresh key.
func NewCondition() vault.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a fresh key.
func NewAddress() vault.Address {
	return NewCondition().Address()
}
