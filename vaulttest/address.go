package vaulttest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/iov-one/vault"
)

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) vault.Address {
	raw := make([]byte, vault.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := vault.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not a valid address: %s", err)
	}
	return a
}

// DecodeAddr takes a hex encoded address string and returns it's raw
// representation as an address. This function ensures that returned value
// is a valid address.
func DecodeAddr(t testing.TB, encoded string) vault.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := vault.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// vault.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) vault.Address {
	t.Helper()

	addr, err := vault.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
