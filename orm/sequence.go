package orm

import (
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Sequence maintains a counter that hands out a gap free series of values
// starting at zero. Each value is greater than the last, both as an integer
// as well as bytes.Compare() on the encoded form.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// Next returns the value that was not given out yet and advances the
// sequence. The first returned value is zero.
func (s Sequence) Next(db vault.KVStore) (uint64, error) {
	val, err := s.Peek(db)
	if err != nil {
		return 0, err
	}
	if val+1 == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, errors.Wrap(err, "cannot store sequence")
	}
	return val, nil
}

// Peek returns the value that the next call to Next would return. This
// method does not modify the sequence state.
func (s Sequence) Peek(db vault.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw)
}

// DecodeSequence reads a sequence value. A missing value is zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if err := ValidateSequence(bz); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence encodes a sequence value as 8 bytes big endian, so that the
// byte order matches the numeric order.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// ValidateSequence returns an error if this is not an 8-byte
// as expected for an encoded sequence value
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}
