// Package bech32 converts raw bytes, most often addresses, to and from the
// bech32 text form. A malformed input is reported as errors.ErrInput.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/vault/errors"
)

// Encode returns payload encoded under the hrp prefix.
func Encode(hrp string, payload []byte) (string, error) {
	groups, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "regroup payload: %s", err)
	}
	s, err := bech32.Encode(hrp, groups)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "encode: %s", err)
	}
	return s, nil
}

// Decode returns the prefix and the payload of s.
func Decode(s string) (hrp string, payload []byte, err error) {
	hrp, groups, err := bech32.Decode(s)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	payload, err = bech32.ConvertBits(groups, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "regroup payload: %s", err)
	}
	return hrp, payload, nil
}

// DecodePrefixed is Decode that accepts only strings with the want prefix.
func DecodePrefixed(s, want string) ([]byte, error) {
	hrp, payload, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if hrp != want {
		return nil, errors.Wrapf(errors.ErrInput, "prefix %q, want %q", hrp, want)
	}
	return payload, nil
}
