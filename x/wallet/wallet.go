package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/history"
	"github.com/iov-one/vault/x/keys"
)

// Wallet exposes every call and query of the vault as a typed method. Each
// mutating method applies the registry operation and appends exactly one
// event to the log, returning the id of that event.
//
// Wallet does not isolate writes. Run it on a cache wrap that is discarded
// on failure to make a call atomic.
type Wallet struct {
	registry keys.Registry
	log      history.Log
}

// NewWallet returns a wallet using the default buckets.
func NewWallet() Wallet {
	return Wallet{
		registry: keys.NewRegistry(),
		log:      history.NewLog(),
	}
}

// Initialize sets up the registry with a single signer. A nil error is the
// success of the call, the returned value is the id of the logged key
// addition.
func (w Wallet) Initialize(db vault.KVStore, signer vault.Address, required uint32) (uint64, error) {
	if err := w.registry.Initialize(db, signer, required); err != nil {
		return 0, err
	}
	return w.log.LogKeyAddition(db, signer)
}

// AddSigner adds newSigner to the registry on behalf of caller. A nil error
// is the success of the call, the returned value is the id of the logged
// key addition.
func (w Wallet) AddSigner(db vault.KVStore, caller, newSigner vault.Address) (uint64, error) {
	if err := w.registry.AddSigner(db, caller, newSigner); err != nil {
		return 0, err
	}
	return w.log.LogKeyAddition(db, newSigner)
}

// RemoveSigner removes signer from the registry on behalf of caller. A nil
// error is the success of the call, the returned value is the id of the
// logged key removal.
func (w Wallet) RemoveSigner(db vault.KVStore, caller, signer vault.Address) (uint64, error) {
	if err := w.registry.RemoveSigner(db, caller, signer); err != nil {
		return 0, err
	}
	return w.log.LogKeyRemoval(db, signer)
}

// ChangeRequiredSignatures sets the threshold on behalf of caller. A nil
// error is the success of the call, the returned value is the id of the
// logged threshold change.
func (w Wallet) ChangeRequiredSignatures(db vault.KVStore, caller vault.Address, n uint32) (uint64, error) {
	if err := w.registry.ChangeRequiredSignatures(db, caller, n); err != nil {
		return 0, err
	}
	return w.log.LogRequiredSignaturesChange(db, n)
}

// ProposeTransaction records the intent to transfer amount to recipient.
// Anyone can propose, the signature threshold guards the execution. A
// transaction id can be proposed once.
func (w Wallet) ProposeTransaction(db vault.KVStore, txID uint64, recipient vault.Address, amount uint64) (uint64, error) {
	status, err := w.txState(db, txID)
	if err != nil {
		return 0, err
	}
	if status.Proposed {
		return 0, errors.Wrapf(errors.ErrDuplicate, "transaction %d already proposed", txID)
	}
	return w.log.LogProposal(db, txID, recipient, amount)
}

// SignTransaction records the approval of a transaction by signer, that
// must be a current signer. Repeated signatures are logged but count once.
// An executed transaction cannot be signed anymore.
func (w Wallet) SignTransaction(db vault.KVStore, txID uint64, signer vault.Address) (uint64, error) {
	if len(signer) == 0 {
		return 0, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	ok, err := w.registry.IsAuthorized(db, signer)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not a signer", signer)
	}
	status, err := w.txState(db, txID)
	if err != nil {
		return 0, err
	}
	if status.Executed {
		return 0, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", txID)
	}
	return w.log.LogSignature(db, txID, signer)
}

// ExecuteTransaction executes a transaction that was signed by at least
// the required number of distinct, currently authorized signers. A
// transaction without signatures, including one that was never proposed,
// fails the threshold check.
func (w Wallet) ExecuteTransaction(db vault.KVStore, txID uint64) (uint64, error) {
	status, err := w.txState(db, txID)
	if err != nil {
		return 0, err
	}
	if status.Executed {
		return 0, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", txID)
	}
	required, err := w.registry.RequiredSignatures(db)
	if err != nil {
		return 0, err
	}
	// An uninitialized registry requires nothing, yet nobody can sign.
	if required == 0 {
		return 0, errors.Wrap(ErrInsufficientSignatures, "registry not initialized")
	}
	if status.ValidSignatures < required {
		return 0, errors.Wrapf(ErrInsufficientSignatures, "%d of %d", status.ValidSignatures, required)
	}
	return w.log.LogExecution(db, txID)
}

// IsAuthorized returns true if signer is a member of the signer set.
func (w Wallet) IsAuthorized(db vault.ReadOnlyKVStore, signer vault.Address) (bool, error) {
	return w.registry.IsAuthorized(db, signer)
}

// RequiredSignatures returns the current threshold.
func (w Wallet) RequiredSignatures(db vault.ReadOnlyKVStore) (uint32, error) {
	return w.registry.RequiredSignatures(db)
}

// Signers returns the signer set in the order signers were added.
func (w Wallet) Signers(db vault.ReadOnlyKVStore) ([]vault.Address, error) {
	return w.registry.Signers(db)
}

// GetEvent returns a logged event.
func (w Wallet) GetEvent(db vault.ReadOnlyKVStore, id uint64) (*history.Event, error) {
	return w.log.GetEvent(db, id)
}

// Events returns up to limit logged events starting at id from.
func (w Wallet) Events(db vault.ReadOnlyKVStore, from uint64, limit int) ([]*history.Event, error) {
	return w.log.Events(db, from, limit)
}

// NextEventID returns the id of the next logged event.
func (w Wallet) NextEventID(db vault.ReadOnlyKVStore) (uint64, error) {
	return w.log.NextEventID(db)
}

// TxStatus derives the state of a transaction from the log. ErrNotFound is
// returned if nothing was logged for the transaction.
func (w Wallet) TxStatus(db vault.ReadOnlyKVStore, txID uint64) (*TxStatus, error) {
	status, err := w.txState(db, txID)
	if err != nil {
		return nil, err
	}
	if !status.Proposed && len(status.Signers) == 0 && !status.Executed {
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", txID)
	}
	return status, nil
}

// txState folds all events of a transaction. An unknown transaction has
// a zero state.
func (w Wallet) txState(db vault.ReadOnlyKVStore, txID uint64) (*TxStatus, error) {
	events, err := w.log.TxEvents(db, txID)
	if err != nil {
		return nil, err
	}
	status := TxStatus{TxID: txID}
	for _, e := range events {
		switch p := e.Payload.(type) {
		case *history.Proposal:
			if !status.Proposed {
				status.Proposed = true
				status.Recipient = p.Recipient
				status.Amount = p.Amount
				status.ProposalEventID = e.ID
			}
		case *history.Signature:
			status.addSigner(p.Signer)
		case *history.Execution:
			status.Executed = true
			id := e.ID
			status.ExecutionEventID = &id
		}
	}
	valid, err := w.validSigners(db, status.Signers)
	if err != nil {
		return nil, err
	}
	status.ValidSignatures = uint32(len(valid))
	return &status, nil
}

// validSigners filters signers that are still authorized.
func (w Wallet) validSigners(db vault.ReadOnlyKVStore, signers []vault.Address) ([]vault.Address, error) {
	var valid []vault.Address
	for _, s := range signers {
		ok, err := w.registry.IsAuthorized(db, s)
		if err != nil {
			return nil, err
		}
		if ok {
			valid = append(valid, s)
		}
	}
	return valid, nil
}

// TxStatus is the state of a transaction as recorded by the log.
type TxStatus struct {
	TxID uint64 `json:"tx_id"`
	// Proposed is false if only signatures were logged so far.
	Proposed        bool          `json:"proposed"`
	Recipient       vault.Address `json:"recipient"`
	Amount          uint64        `json:"amount"`
	ProposalEventID uint64        `json:"proposal_event_id"`
	// Signers lists distinct signers in the order of their first
	// signature, including signers that were removed since.
	Signers []vault.Address `json:"signers"`
	// ValidSignatures counts the signers that are still authorized.
	ValidSignatures  uint32  `json:"valid_signatures"`
	Executed         bool    `json:"executed"`
	ExecutionEventID *uint64 `json:"execution_event_id,omitempty"`
}

func (s *TxStatus) addSigner(signer vault.Address) {
	for _, have := range s.Signers {
		if have.Equals(signer) {
			return
		}
	}
	s.Signers = append(s.Signers, signer.Clone())
}
