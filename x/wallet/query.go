package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Query is the closed set of read only requests. Only queries declared in
// this package implement it.
type Query interface {
	Path() string
	isQuery()
}

var (
	_ Query = IsAuthorizedQuery{}
	_ Query = RequiredSignaturesQuery{}
	_ Query = SignersQuery{}
	_ Query = EventQuery{}
	_ Query = EventsQuery{}
	_ Query = TransactionQuery{}
)

// IsAuthorizedQuery is answered with a bool.
type IsAuthorizedQuery struct {
	Signer vault.Address
}

func (IsAuthorizedQuery) isQuery()     {}
func (IsAuthorizedQuery) Path() string { return "wallet/is_authorized" }

// RequiredSignaturesQuery is answered with an uint32.
type RequiredSignaturesQuery struct{}

func (RequiredSignaturesQuery) isQuery()     {}
func (RequiredSignaturesQuery) Path() string { return "wallet/required_signatures" }

// SignersQuery is answered with a []vault.Address.
type SignersQuery struct{}

func (SignersQuery) isQuery()     {}
func (SignersQuery) Path() string { return "wallet/signers" }

// EventQuery is answered with a *history.Event.
type EventQuery struct {
	ID uint64
}

func (EventQuery) isQuery()     {}
func (EventQuery) Path() string { return "wallet/event" }

// EventsQuery is answered with a []*history.Event.
type EventsQuery struct {
	From  uint64
	Limit int
}

func (EventsQuery) isQuery()     {}
func (EventsQuery) Path() string { return "wallet/events" }

// TransactionQuery is answered with a *TxStatus.
type TransactionQuery struct {
	TxID uint64
}

func (TransactionQuery) isQuery()     {}
func (TransactionQuery) Path() string { return "wallet/transaction" }

// Query answers a read only request. The type of the result depends on the
// query and is documented on each query type.
func (w Wallet) Query(db vault.ReadOnlyKVStore, q Query) (interface{}, error) {
	switch q := q.(type) {
	case IsAuthorizedQuery:
		return w.IsAuthorized(db, q.Signer)
	case RequiredSignaturesQuery:
		return w.RequiredSignatures(db)
	case SignersQuery:
		return w.Signers(db)
	case EventQuery:
		return w.GetEvent(db, q.ID)
	case EventsQuery:
		return w.Events(db, q.From, q.Limit)
	case TransactionQuery:
		return w.TxStatus(db, q.TxID)
	default:
		return nil, errors.WithType(errors.ErrType, q)
	}
}
