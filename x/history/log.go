package history

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Log is the append-only event log. It holds no state, everything is read
// from and written to the store passed to each call.
type Log struct {
	bucket EventBucket
}

// NewLog returns a log using the default bucket.
func NewLog() Log {
	return Log{bucket: NewEventBucket()}
}

// Append validates the payload, assigns it the next event id and stores it.
// An invalid payload does not consume an id.
func (l Log) Append(db vault.KVStore, p Payload) (uint64, error) {
	rec, err := NewEventRecord(p)
	if err != nil {
		return 0, err
	}
	if err := rec.Validate(); err != nil {
		return 0, errors.Wrapf(err, "%s event", p.Kind())
	}
	id, err := l.bucket.ids.Next(db)
	if err != nil {
		return 0, errors.Wrap(err, "event id")
	}
	if err := l.bucket.Save(db, orm.NewSimpleObj(orm.EncodeSequence(id), rec)); err != nil {
		return 0, errors.Wrapf(err, "save event %d", id)
	}
	return id, nil
}

// LogProposal appends a proposal event.
func (l Log) LogProposal(db vault.KVStore, txID uint64, recipient vault.Address, amount uint64) (uint64, error) {
	return l.Append(db, &Proposal{TxID: txID, Recipient: recipient, Amount: amount})
}

// LogExecution appends an execution event.
func (l Log) LogExecution(db vault.KVStore, txID uint64) (uint64, error) {
	return l.Append(db, &Execution{TxID: txID})
}

// LogSignature appends a signature event.
func (l Log) LogSignature(db vault.KVStore, txID uint64, signer vault.Address) (uint64, error) {
	return l.Append(db, &Signature{TxID: txID, Signer: signer})
}

// LogKeyAddition appends a key addition event.
func (l Log) LogKeyAddition(db vault.KVStore, signer vault.Address) (uint64, error) {
	return l.Append(db, &KeyAddition{Signer: signer})
}

// LogKeyRemoval appends a key removal event.
func (l Log) LogKeyRemoval(db vault.KVStore, signer vault.Address) (uint64, error) {
	return l.Append(db, &KeyRemoval{Signer: signer})
}

// LogRequiredSignaturesChange appends a threshold change event.
func (l Log) LogRequiredSignaturesChange(db vault.KVStore, n uint32) (uint64, error) {
	return l.Append(db, &ThresholdChange{NewRequired: n})
}

// NextEventID returns the id that will be assigned to the next event. It is
// also the number of logged events.
func (l Log) NextEventID(db vault.ReadOnlyKVStore) (uint64, error) {
	return l.bucket.ids.Peek(db)
}

// GetEvent returns the event with given id. ErrNotFound is returned for ids
// that were not assigned yet.
func (l Log) GetEvent(db vault.ReadOnlyKVStore, id uint64) (*Event, error) {
	next, err := l.NextEventID(db)
	if err != nil {
		return nil, err
	}
	if id >= next {
		return nil, errors.Wrapf(errors.ErrNotFound, "event %d", id)
	}
	obj, err := l.bucket.Get(db, orm.EncodeSequence(id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrState, "event %d missing from the log", id)
	}
	return toEvent(obj)
}

// Events returns up to limit events, starting with the event of id from,
// in log order. A limit of zero or less returns all remaining events.
func (l Log) Events(db vault.ReadOnlyKVStore, from uint64, limit int) ([]*Event, error) {
	objs, err := l.bucket.Range(db, orm.EncodeSequence(from), nil, limit)
	if err != nil {
		return nil, err
	}
	return toEvents(objs)
}

// TxEvents returns all events naming given transaction, in log order.
func (l Log) TxEvents(db vault.ReadOnlyKVStore, txID uint64) ([]*Event, error) {
	objs, err := l.bucket.GetIndexed(db, TxIndexName, orm.EncodeSequence(txID))
	if err != nil {
		return nil, err
	}
	return toEvents(objs)
}
